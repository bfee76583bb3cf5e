// Package summary reduces fetched API lists into the filtered views and
// totals shown on each page.
package summary

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/exchange"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// Filter values shared by the account and category lists.
const (
	FilterAll      = "all"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

func statusMatches(status string, active bool) bool {
	switch status {
	case StatusActive:
		return active
	case StatusInactive:
		return !active
	}
	return true
}

// FilterAccounts keeps accounts of accType ("all" for any) whose status
// matches status ("all", "active" or "inactive").
func FilterAccounts(accounts []models.Account, accType, status string) []models.Account {
	out := make([]models.Account, 0, len(accounts))
	for _, a := range accounts {
		if accType != FilterAll && accType != "" && string(a.Type) != accType {
			continue
		}
		if !statusMatches(status, a.IsActive) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// TypeTotal is the count and summed balance of one account type.
type TypeTotal struct {
	Type    models.AccountType
	Count   int
	Balance decimal.Decimal
}

// AccountTotals rolls balances up per account type in Currency.
type AccountTotals struct {
	Currency models.Currency
	ByType   []TypeTotal
	Total    decimal.Decimal
}

// Get returns the totals for t, or a zero TypeTotal.
func (a AccountTotals) Get(t models.AccountType) TypeTotal {
	for _, tt := range a.ByType {
		if tt.Type == t {
			return tt
		}
	}
	return TypeTotal{Type: t}
}

// TotalAccounts sums balances per type, in models.AccountTypes order with
// empty types omitted. When conv is non-nil every balance is converted into
// base first; otherwise balances are summed as they are.
func TotalAccounts(ctx context.Context, accounts []models.Account, base models.Currency, conv exchange.Service) (AccountTotals, error) {
	sums := make(map[models.AccountType]*TypeTotal)
	totals := AccountTotals{Currency: base}

	for _, a := range accounts {
		balance := a.CurrentBalance
		if conv != nil && a.Currency != "" && a.Currency != base {
			res, err := conv.Convert(ctx, balance, a.Currency, base)
			if err != nil {
				return AccountTotals{}, fmt.Errorf("failed to convert %s balance of %s: %w", a.Currency, a.Name, err)
			}
			balance = res.Amount
		}

		tt, ok := sums[a.Type]
		if !ok {
			tt = &TypeTotal{Type: a.Type}
			sums[a.Type] = tt
		}
		tt.Count++
		tt.Balance = tt.Balance.Add(balance)
		totals.Total = totals.Total.Add(balance)
	}

	for _, t := range models.AccountTypes {
		if tt, ok := sums[t]; ok {
			totals.ByType = append(totals.ByType, *tt)
			delete(sums, t)
		}
	}
	// Unknown types from the API go last.
	for _, a := range accounts {
		if tt, ok := sums[a.Type]; ok {
			totals.ByType = append(totals.ByType, *tt)
			delete(sums, a.Type)
		}
	}
	return totals, nil
}

// CanDeactivate reports whether an account may be deactivated: it must be
// active and hold a zero balance.
func CanDeactivate(a models.Account) bool {
	return a.IsActive && a.CurrentBalance.IsZero()
}

// CanDelete reports whether an account may be deleted: it must have no
// transactions.
func CanDelete(a models.Account) bool {
	return a.TransactionCount == 0
}

// CanEdit reports whether an account may be edited.
func CanEdit(a models.Account) bool {
	return a.IsActive
}
