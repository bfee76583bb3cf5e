package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// AccountInput is the account form. Balance holds the raw text typed by the
// user; MaskedNumber is the output of EncodeMaskedNumber.
type AccountInput struct {
	Name         string
	BankName     string
	Type         models.AccountType
	MaskedNumber string
	Currency     models.Currency
	Balance      string
}

// NewAccountInput returns the blank form used when adding an account.
func NewAccountInput() AccountInput {
	return AccountInput{Type: models.AccountTypeCurrent, Currency: models.DefaultCurrency}
}

// AccountInputFrom prefills the form from an existing account.
func AccountInputFrom(a models.Account) AccountInput {
	return AccountInput{
		Name:         a.Name,
		BankName:     a.BankName,
		Type:         a.Type,
		MaskedNumber: a.MaskedNumber,
		Currency:     a.Currency,
		Balance:      a.CurrentBalance.String(),
	}
}

// Validate returns the per-field problems with the form.
func (in AccountInput) Validate() FieldErrors {
	errs := FieldErrors{}

	requireName(errs, "account_name", "Account name", in.Name)
	requireName(errs, "bank_name", "Bank name", in.BankName)

	var fe *FieldError
	if err := ValidateMaskedNumber(in.MaskedNumber); errors.As(err, &fe) {
		errs.Add(fe.Field, fe.Message)
	}

	if !in.Type.Valid() {
		errs.Add("account_type", "Invalid account type")
	}
	if !in.Currency.Valid() {
		errs.Add("currency", "Invalid currency")
	}

	raw := strings.TrimSpace(in.Balance)
	if raw == "" {
		errs.Add("current_balance", "Current balance is required")
		return errs
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		errs.Add("current_balance", "Must be a valid number")
		return errs
	}
	if err := ValidateBalance(balance, in.Type); err != nil {
		errs.Add("current_balance", BalanceMessage(err))
	}
	return errs
}

// Request returns the API payload with names trimmed and the balance parsed.
func (in AccountInput) Request() (models.AccountRequest, error) {
	balance, err := decimal.NewFromString(strings.TrimSpace(in.Balance))
	if err != nil {
		return models.AccountRequest{}, fmt.Errorf("failed to parse balance: %w", err)
	}
	return models.AccountRequest{
		Name:           strings.TrimSpace(in.Name),
		BankName:       strings.TrimSpace(in.BankName),
		Type:           in.Type,
		MaskedNumber:   in.MaskedNumber,
		Currency:       in.Currency,
		CurrentBalance: balance,
	}, nil
}

// requireName applies the shared required / minimum length rule.
func requireName(errs FieldErrors, field, label, value string) {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		errs.Add(field, label+" is required")
	case utf8.RuneCountInString(trimmed) < models.MinNameLength:
		errs.Add(field, label+" must be at least 2 characters")
	}
}
