package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// Transaction date window relative to today.
const (
	MaxFutureDays = 1
	MaxPastYears  = 2
)

// TransactionInput is the transaction form. Amount is the unsigned value the
// user typed; the sign is applied by Request.
type TransactionInput struct {
	AccountID       uuid.UUID
	CategoryID      uuid.UUID
	Description     string
	Type            models.TransactionType
	Amount          string
	Date            models.Date
	Note            string
	ReferenceNumber string
	IsRecurring     bool
}

// NewTransactionInput returns the blank form: an expense dated today.
func NewTransactionInput(now time.Time) TransactionInput {
	return TransactionInput{Type: models.TransactionTypeExpense, Date: models.DateOf(now)}
}

// TransactionInputFrom prefills the form from an existing transaction,
// showing the amount unsigned.
func TransactionInputFrom(tx models.Transaction) TransactionInput {
	in := TransactionInput{
		AccountID:   tx.AccountID,
		Description: tx.Description,
		Type:        tx.Type,
		Amount:      tx.Amount.Abs().String(),
		Date:        tx.Date,
		IsRecurring: tx.IsRecurring,
	}
	if tx.CategoryID != nil {
		in.CategoryID = *tx.CategoryID
	}
	if tx.Note != nil {
		in.Note = *tx.Note
	}
	if tx.ReferenceNumber != nil {
		in.ReferenceNumber = *tx.ReferenceNumber
	}
	return in
}

// Validate checks the form. account is the selected account, or nil when
// none is loaded; categories are used to check the type match.
func (in TransactionInput) Validate(now time.Time, account *models.Account, categories []models.Category) FieldErrors {
	errs := FieldErrors{}

	if in.AccountID == uuid.Nil {
		errs.Add("bank_account", "Account is required")
	}
	if in.CategoryID == uuid.Nil {
		errs.Add("category", "Category is required")
	} else {
		for _, c := range categories {
			if c.ID == in.CategoryID && !CategoryAllowed(c, in.Type) {
				errs.Add("category", "Category type must match transaction type")
				break
			}
		}
	}

	if !in.Type.Valid() {
		errs.Add("transaction_type", "Invalid transaction type")
	}

	desc := strings.TrimSpace(in.Description)
	switch {
	case desc == "":
		errs.Add("transaction_description", "Description is required")
	case utf8.RuneCountInString(desc) < models.MinNameLength:
		errs.Add("transaction_description", "Description must be at least 2 characters")
	case utf8.RuneCountInString(in.Description) > models.MaxDescriptionLength:
		errs.Add("transaction_description", "Description cannot exceed 255 characters")
	}

	amount, msg := parseAmount(in.Amount, amountMessages{
		required: "Amount is required",
		positive: "Amount must be a positive number",
		tooLarge: "Amount exceeds maximum allowed value",
	})
	if msg != "" {
		errs.Add("transaction_amount", msg)
	}

	if in.Date.IsZero() {
		errs.Add("transaction_date", "Date is required")
	} else {
		today := models.DateOf(now)
		switch {
		case in.Date.After(today.AddDays(MaxFutureDays)):
			errs.Add("transaction_date", "Date cannot be more than one day in the future")
		case in.Date.Before(today.AddDate(-MaxPastYears, 0, 0)):
			errs.Add("transaction_date", "Date cannot be more than 2 years in the past")
		}
	}

	if utf8.RuneCountInString(in.ReferenceNumber) > models.MaxReferenceNumberLength {
		errs.Add("reference_number", "Reference number cannot exceed 100 characters")
	}
	if utf8.RuneCountInString(in.Note) > models.MaxNoteLength {
		errs.Add("transaction_note", "Note cannot exceed 500 characters")
	}

	if account != nil && amount.IsPositive() {
		if ProjectTransactionImpact(*account, in.Type, amount).Err() != nil {
			errs.Add("transaction_amount", "Insufficient funds. This would result in a negative balance.")
		}
	}
	return errs
}

// Impact projects the form's effect on account for the advisory line.
func (in TransactionInput) Impact(account models.Account) Impact {
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return Impact{}
	}
	return ProjectTransactionImpact(account, in.Type, amount)
}

// Request returns the API payload. Expenses are sent negative, income
// positive and transfers as entered. Blank note and reference become null.
func (in TransactionInput) Request() (models.TransactionRequest, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return models.TransactionRequest{}, fmt.Errorf("failed to parse amount: %w", err)
	}
	return models.TransactionRequest{
		AccountID:       in.AccountID,
		CategoryID:      in.CategoryID,
		Description:     strings.TrimSpace(in.Description),
		Type:            in.Type,
		Amount:          SignedAmount(amount, in.Type),
		Date:            in.Date,
		Note:            nullable(in.Note),
		ReferenceNumber: nullable(in.ReferenceNumber),
		IsRecurring:     in.IsRecurring,
	}, nil
}

// SignedAmount applies the API's sign convention for txType.
func SignedAmount(amount decimal.Decimal, txType models.TransactionType) decimal.Decimal {
	switch txType {
	case models.TransactionTypeExpense:
		return amount.Abs().Neg()
	case models.TransactionTypeIncome:
		return amount.Abs()
	}
	return amount
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
