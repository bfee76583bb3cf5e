package summary

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/exchange"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testAccounts() []models.Account {
	return []models.Account{
		{ID: uuid.New(), Name: "Everyday", Type: models.AccountTypeCurrent, Currency: models.CurrencyGBP, CurrentBalance: dec("1200.50"), IsActive: true},
		{ID: uuid.New(), Name: "Rainy day", Type: models.AccountTypeSavings, Currency: models.CurrencyGBP, CurrentBalance: dec("5000"), IsActive: true},
		{ID: uuid.New(), Name: "Travel", Type: models.AccountTypeCurrent, Currency: models.CurrencyEUR, CurrentBalance: dec("100"), IsActive: true, TransactionCount: 3},
		{ID: uuid.New(), Name: "Old card", Type: models.AccountTypeCredit, Currency: models.CurrencyGBP, CurrentBalance: decimal.Zero, IsActive: false},
	}
}

func TestFilterAccounts(t *testing.T) {
	t.Parallel()

	accounts := testAccounts()

	tests := []struct {
		name    string
		accType string
		status  string
		want    []string
	}{
		{name: "active of any type", accType: FilterAll, status: StatusActive, want: []string{"Everyday", "Rainy day", "Travel"}},
		{name: "inactive", accType: FilterAll, status: StatusInactive, want: []string{"Old card"}},
		{name: "current accounts of any status", accType: "current", status: FilterAll, want: []string{"Everyday", "Travel"}},
		{name: "no match", accType: "isa", status: StatusActive, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FilterAccounts(accounts, tt.accType, tt.status)
			names := make([]string, 0, len(got))
			for _, a := range got {
				names = append(names, a.Name)
			}
			require.Equal(t, tt.want, names)
		})
	}
}

type fixedRates map[models.Currency]decimal.Decimal

func (f fixedRates) Convert(_ context.Context, amount decimal.Decimal, from, _ models.Currency) (exchange.ConversionResult, error) {
	rate, ok := f[from]
	if !ok {
		return exchange.ConversionResult{}, errors.New("no rate")
	}
	return exchange.ConversionResult{Amount: amount.Mul(rate).Round(2), Rate: rate}, nil
}

func TestTotalAccounts(t *testing.T) {
	t.Parallel()

	accounts := testAccounts()

	t.Run("raw sums without conversion", func(t *testing.T) {
		t.Parallel()
		totals, err := TotalAccounts(context.Background(), accounts, models.CurrencyGBP, nil)
		require.NoError(t, err)

		require.Len(t, totals.ByType, 3)
		require.Equal(t, models.AccountTypeCurrent, totals.ByType[0].Type)
		require.Equal(t, 2, totals.Get(models.AccountTypeCurrent).Count)
		require.True(t, dec("1300.50").Equal(totals.Get(models.AccountTypeCurrent).Balance))
		require.Equal(t, 0, totals.Get(models.AccountTypeISA).Count)
		require.True(t, dec("6300.50").Equal(totals.Total))
	})

	t.Run("converts into the base currency", func(t *testing.T) {
		t.Parallel()
		totals, err := TotalAccounts(context.Background(), accounts, models.CurrencyGBP, fixedRates{models.CurrencyEUR: dec("0.85")})
		require.NoError(t, err)
		require.True(t, dec("1285.50").Equal(totals.Get(models.AccountTypeCurrent).Balance))
		require.True(t, dec("6285.50").Equal(totals.Total))
	})

	t.Run("conversion failure fails the roll-up", func(t *testing.T) {
		t.Parallel()
		_, err := TotalAccounts(context.Background(), accounts, models.CurrencyUSD, fixedRates{})
		require.Error(t, err)
	})
}

func TestAccountActions(t *testing.T) {
	t.Parallel()

	accounts := testAccounts()
	require.False(t, CanDeactivate(accounts[0]), "non-zero balance")
	require.False(t, CanDeactivate(accounts[3]), "already inactive")
	zero := accounts[1]
	zero.CurrentBalance = decimal.Zero
	require.True(t, CanDeactivate(zero))

	require.True(t, CanDelete(accounts[0]))
	require.False(t, CanDelete(accounts[2]))
	require.False(t, CanEdit(accounts[3]))
}

func testCategories() []models.Category {
	return []models.Category{
		{ID: uuid.New(), Name: "Salary", Type: models.CategoryTypeIncome, IsActive: true, IsDefault: true, TransactionCount: 12},
		{ID: uuid.New(), Name: "Groceries", Type: models.CategoryTypeExpense, IsActive: true, TransactionCount: 40},
		{ID: uuid.New(), Name: "Eating Out", Type: models.CategoryTypeExpense, IsActive: true},
		{ID: uuid.New(), Name: "Gym", Type: models.CategoryTypeExpense, IsActive: false, TransactionCount: 2},
	}
}

func TestCategoryReducers(t *testing.T) {
	t.Parallel()

	cats := testCategories()

	t.Run("filter", func(t *testing.T) {
		t.Parallel()
		require.Len(t, FilterCategories(cats, "expense", StatusActive), 2)
		require.Len(t, FilterCategories(cats, FilterAll, StatusInactive), 1)
		require.Len(t, FilterCategories(cats, FilterAll, FilterAll), 4)
	})

	t.Run("split", func(t *testing.T) {
		t.Parallel()
		income, expense := SplitByType(cats)
		require.Len(t, income, 1)
		require.Len(t, expense, 3)
	})

	t.Run("stats", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, CategoryStats{Total: 4, Active: 3, Income: 1, Expense: 3, Transactions: 54}, StatsFor(cats))
	})

	t.Run("reassign targets", func(t *testing.T) {
		t.Parallel()
		targets := ReassignTargets(cats, cats[1])
		require.Len(t, targets, 1)
		require.Equal(t, "Eating Out", targets[0].Name)
	})

	t.Run("delete action", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, DeleteRefused, DeleteActionFor(cats[0]))
		require.Equal(t, DeleteReassign, DeleteActionFor(cats[1]))
		require.Equal(t, DeleteConfirm, DeleteActionFor(cats[2]))
		require.Equal(t, "reassign", DeleteReassign.String())
	})
}

func TestBudgetStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pct  string
		want BudgetStatus
	}{
		{pct: "0", want: BudgetOnTrack},
		{pct: "50", want: BudgetOnTrack},
		{pct: "50.01", want: BudgetMonitor},
		{pct: "80", want: BudgetMonitor},
		{pct: "99.9", want: BudgetWarning},
		{pct: "100", want: BudgetWarning},
		{pct: "100.01", want: BudgetExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.pct, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, BudgetStatusFor(dec(tt.pct)))
		})
	}

	require.True(t, dec("100").Equal(ProgressBar(dec("140"))))
	require.True(t, dec("40").Equal(ProgressBar(dec("40"))))
}

func TestFilterBudgetsByCategory(t *testing.T) {
	t.Parallel()

	food := uuid.New()
	budgets := []models.Budget{{CategoryID: food}, {CategoryID: uuid.New()}}
	require.Len(t, FilterBudgetsByCategory(budgets, ""), 2)
	require.Len(t, FilterBudgetsByCategory(budgets, food.String()), 1)
}

func TestExpensesByCategory(t *testing.T) {
	t.Parallel()

	txs := []models.Transaction{
		{Type: models.TransactionTypeExpense, CategoryName: "Groceries", Amount: dec("-42.10")},
		{Type: models.TransactionTypeExpense, CategoryName: "Rent", Amount: dec("-950")},
		{Type: models.TransactionTypeExpense, CategoryName: "Groceries", Amount: dec("-7.90")},
		{Type: models.TransactionTypeExpense, Amount: dec("-5")},
		{Type: models.TransactionTypeIncome, CategoryName: "Salary", Amount: dec("2500")},
		{Type: models.TransactionTypeTransfer, CategoryName: "Savings", Amount: dec("-100")},
	}

	got := ExpensesByCategory(txs)
	require.Len(t, got, 3)
	require.Equal(t, "Rent", got[0].Category)
	require.Equal(t, "Groceries", got[1].Category)
	require.True(t, dec("50").Equal(got[1].Amount))
	require.Equal(t, UncategorizedLabel, got[2].Category)

	income, expenses := Totals(txs)
	require.True(t, dec("2500").Equal(income))
	require.True(t, dec("1005").Equal(expenses))
}
