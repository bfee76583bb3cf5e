package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// UncategorizedLabel names transactions without a category.
const UncategorizedLabel = "Uncategorized"

// CategoryTotal is the spend against one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// ExpensesByCategory sums expense amounts, as positive values, per category
// name. Results are sorted by amount descending, then name.
func ExpensesByCategory(transactions []models.Transaction) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		name := tx.CategoryName
		if name == "" {
			name = UncategorizedLabel
		}
		sums[name] = sums[name].Add(tx.Amount.Abs())
	}

	out := make([]CategoryTotal, 0, len(sums))
	for name, amount := range sums {
		out = append(out, CategoryTotal{Category: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Totals sums income and expenses over a page of transactions. Expenses are
// returned as a positive value; transfers are ignored.
func Totals(transactions []models.Transaction) (income, expenses decimal.Decimal) {
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			income = income.Add(tx.Amount.Abs())
		case models.TransactionTypeExpense:
			expenses = expenses.Add(tx.Amount.Abs())
		}
	}
	return income, expenses
}
