package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRequest is the create/update payload for an account.
type AccountRequest struct {
	Name           string          `json:"account_name"`
	BankName       string          `json:"bank_name"`
	Type           AccountType     `json:"account_type"`
	MaskedNumber   string          `json:"account_number_masked"`
	Currency       Currency        `json:"currency"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// CategoryRequest is the create/update payload for a category.
type CategoryRequest struct {
	Name string       `json:"category_name"`
	Type CategoryType `json:"category_type"`
}

// BudgetRequest is the create/update payload for a budget.
type BudgetRequest struct {
	CategoryID uuid.UUID       `json:"category"`
	Name       string          `json:"budget_name"`
	Amount     decimal.Decimal `json:"budget_amount"`
	BudgetType PeriodType      `json:"budget_type"`
	PeriodType PeriodType      `json:"period_type"`
	StartDate  Date            `json:"start_date"`
	EndDate    Date            `json:"end_date"`
}

// TransactionRequest is the create/update payload for a transaction.
// Amount carries the sign the API expects: negative for expenses.
type TransactionRequest struct {
	AccountID       uuid.UUID       `json:"bank_account"`
	CategoryID      uuid.UUID       `json:"category"`
	Description     string          `json:"transaction_description"`
	Type            TransactionType `json:"transaction_type"`
	Amount          decimal.Decimal `json:"transaction_amount"`
	Date            Date            `json:"transaction_date"`
	Note            *string         `json:"transaction_note"`
	ReferenceNumber *string         `json:"reference_number"`
	IsRecurring     bool            `json:"is_recurring"`
}

// TransferRequest moves money from one account to another.
type TransferRequest struct {
	TargetAccountID uuid.UUID       `json:"target_account_id"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the sign-up payload.
type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
}

// ProfileUpdate is a partial profile update; nil fields are left unchanged.
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// PasswordChange is the change-password payload.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
