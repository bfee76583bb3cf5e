package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/formatters"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

var (
	// OverdraftLimit is the lowest balance any account may hold.
	OverdraftLimit = decimal.NewFromInt(-10000)
	// MaxBalance is the highest balance any account may hold.
	MaxBalance = decimal.RequireFromString("9999999.99")
	// MaxAmount caps budget and transaction amounts.
	MaxAmount = decimal.RequireFromString("999999.99")
	// LowBalanceThreshold is where a projected balance starts to warn.
	LowBalanceThreshold = decimal.NewFromInt(100)
)

var balanceMessages = map[error]string{
	ErrNegativeBalanceNotAllowed: "Only credit accounts can have negative balance",
	ErrPositiveCreditBalance:     "Credit accounts should have zero or negative balance",
	ErrOverdraftLimitExceeded:    "Overdraft limit cannot exceed £10,000",
	ErrBalanceTooLarge:           "Balance exceeds maximum allowed value",
}

// ValidateBalance checks an account balance against its type. Rules are
// applied in order and the first failure is returned.
func ValidateBalance(balance decimal.Decimal, accountType models.AccountType) error {
	credit := accountType == models.AccountTypeCredit
	switch {
	case !credit && balance.IsNegative():
		return ErrNegativeBalanceNotAllowed
	case credit && balance.IsPositive():
		return ErrPositiveCreditBalance
	case balance.LessThan(OverdraftLimit):
		return ErrOverdraftLimitExceeded
	case balance.GreaterThan(MaxBalance):
		return ErrBalanceTooLarge
	}
	return nil
}

// BalanceMessage returns the form message for a ValidateBalance error.
func BalanceMessage(err error) string {
	if msg, ok := balanceMessages[err]; ok {
		return msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// CleanBalanceInput keeps only digits, '.' and '-'.
func CleanBalanceInput(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
}

// Severity grades a projected balance.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityBlocking
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityBlocking:
		return "blocking"
	}
	return "ok"
}

// Impact is the projected effect of an expense on an account balance.
type Impact struct {
	Applicable     bool
	CurrentBalance decimal.Decimal
	NewBalance     decimal.Decimal
	Currency       models.Currency
	Severity       Severity
}

// ProjectTransactionImpact projects the balance after spending amount from
// account. Only expenses against non-credit accounts are projected.
func ProjectTransactionImpact(account models.Account, txType models.TransactionType, amount decimal.Decimal) Impact {
	if txType != models.TransactionTypeExpense || account.Type == models.AccountTypeCredit {
		return Impact{}
	}

	impact := Impact{
		Applicable:     true,
		CurrentBalance: account.CurrentBalance,
		NewBalance:     account.CurrentBalance.Sub(amount),
		Currency:       account.Currency,
	}
	switch {
	case impact.NewBalance.IsNegative():
		impact.Severity = SeverityBlocking
	case impact.NewBalance.LessThan(LowBalanceThreshold):
		impact.Severity = SeverityWarning
	}
	return impact
}

// Message returns the advisory shown under the amount field, or "".
func (i Impact) Message() string {
	if !i.Applicable {
		return ""
	}
	switch i.Severity {
	case SeverityBlocking:
		return "Warning: This transaction will result in a negative balance of " +
			formatters.FormatCurrency(i.NewBalance, i.Currency) +
			". Current balance: " + formatters.FormatCurrency(i.CurrentBalance, i.Currency)
	case SeverityWarning:
		return "Note: This will leave a low balance of " + formatters.FormatCurrency(i.NewBalance, i.Currency)
	}
	return ""
}

// Err returns ErrInsufficientFunds for a blocking impact.
func (i Impact) Err() error {
	if i.Applicable && i.Severity == SeverityBlocking {
		return ErrInsufficientFunds
	}
	return nil
}
