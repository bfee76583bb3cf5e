// Package models defines the view models exchanged with the BudgetBox API.
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency preselected for new accounts.
const DefaultCurrency = CurrencyGBP

// Field length limits shared by the form validators.
const (
	MinNameLength              = 2
	MaxCategoryNameLength      = 50
	MaxBudgetNameLength        = 100
	MaxDescriptionLength       = 255
	MaxNoteLength              = 500
	MaxReferenceNumberLength   = 100
	MinPasswordLength          = 8
	MaskedAccountNumberLength  = 8
	MaskedAccountNumberVisible = 4
)

// AccountType is the kind of bank account.
type AccountType string

// Supported account types.
const (
	AccountTypeCurrent AccountType = "current"
	AccountTypeSavings AccountType = "savings"
	AccountTypeISA     AccountType = "isa"
	AccountTypeCredit  AccountType = "credit"
)

// AccountTypes lists account types in display order.
var AccountTypes = []AccountType{AccountTypeCurrent, AccountTypeSavings, AccountTypeISA, AccountTypeCredit}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCurrent, AccountTypeSavings, AccountTypeISA, AccountTypeCredit:
		return true
	}
	return false
}

// Currency is an ISO 4217 code accepted by the API.
type Currency string

// Supported currencies.
const (
	CurrencyGBP Currency = "GBP"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// CurrencySymbols maps supported currency codes to display symbols.
var CurrencySymbols = map[Currency]string{
	CurrencyGBP: "£",
	CurrencyUSD: "$",
	CurrencyEUR: "€",
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	_, ok := CurrencySymbols[c]
	return ok
}

// CategoryType separates income categories from expense categories.
type CategoryType string

// Category types.
const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether t is income or expense.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// TransactionType is the direction of a transaction.
type TransactionType string

// Transaction types.
const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// PeriodType is the recurrence granularity of a budget.
type PeriodType string

// Budget period types.
const (
	PeriodWeekly    PeriodType = "weekly"
	PeriodMonthly   PeriodType = "monthly"
	PeriodQuarterly PeriodType = "quarterly"
	PeriodYearly    PeriodType = "yearly"
)

// Valid reports whether p is a known period type.
func (p PeriodType) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// User is the authenticated BudgetBox user.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName returns the first name, falling back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return "User"
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "User"
}

// Account is a bank account as returned by the API.
type Account struct {
	ID               uuid.UUID       `json:"bank_account_id"`
	Name             string          `json:"account_name"`
	BankName         string          `json:"bank_name"`
	Type             AccountType     `json:"account_type"`
	MaskedNumber     string          `json:"account_number_masked"`
	Currency         Currency        `json:"currency"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	IsActive         bool            `json:"is_active"`
	TransactionCount int             `json:"transaction_count"`
}

// Category is an income or expense category.
type Category struct {
	ID               uuid.UUID    `json:"category_id"`
	Name             string       `json:"category_name"`
	Type             CategoryType `json:"category_type"`
	IsDefault        bool         `json:"is_default"`
	IsActive         bool         `json:"is_active"`
	TransactionCount int          `json:"transaction_count"`
}

// Budget is a spending limit for one category over a date range.
// SpentAmount, RemainingAmount and PercentageUsed are computed by the API.
type Budget struct {
	ID              uuid.UUID       `json:"budget_id"`
	CategoryID      uuid.UUID       `json:"category"`
	CategoryName    string          `json:"category_name"`
	Name            string          `json:"budget_name"`
	Amount          decimal.Decimal `json:"budget_amount"`
	BudgetType      PeriodType      `json:"budget_type"`
	PeriodType      PeriodType      `json:"period_type"`
	StartDate       Date            `json:"start_date"`
	EndDate         Date            `json:"end_date"`
	IsActive        bool            `json:"is_active"`
	SpentAmount     decimal.Decimal `json:"spent_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PercentageUsed  decimal.Decimal `json:"percentage_used"`
}

// Transaction is a posted transaction. Amount is signed: negative for expenses.
type Transaction struct {
	ID              uuid.UUID       `json:"transaction_id"`
	AccountID       uuid.UUID       `json:"bank_account"`
	AccountName     string          `json:"account_name"`
	CategoryID      *uuid.UUID      `json:"category"`
	CategoryName    string          `json:"category_name"`
	Description     string          `json:"transaction_description"`
	Type            TransactionType `json:"transaction_type"`
	Amount          decimal.Decimal `json:"transaction_amount"`
	Date            Date            `json:"transaction_date"`
	Note            *string         `json:"transaction_note"`
	ReferenceNumber *string         `json:"reference_number"`
	IsRecurring     bool            `json:"is_recurring"`
}
