package summary

import (
	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// BudgetStatus is the traffic-light grade of a budget's spend.
type BudgetStatus string

const (
	BudgetOnTrack  BudgetStatus = "On Track"
	BudgetMonitor  BudgetStatus = "Monitor"
	BudgetWarning  BudgetStatus = "Warning"
	BudgetExceeded BudgetStatus = "Exceeded"
)

var (
	fifty   = decimal.NewFromInt(50)
	eighty  = decimal.NewFromInt(80)
	hundred = decimal.NewFromInt(100)
)

// BudgetStatusFor grades a percentage used.
func BudgetStatusFor(percentageUsed decimal.Decimal) BudgetStatus {
	switch {
	case percentageUsed.LessThanOrEqual(fifty):
		return BudgetOnTrack
	case percentageUsed.LessThanOrEqual(eighty):
		return BudgetMonitor
	case percentageUsed.LessThanOrEqual(hundred):
		return BudgetWarning
	}
	return BudgetExceeded
}

// FilterBudgetsByCategory keeps budgets for categoryID, or all when it is "".
func FilterBudgetsByCategory(budgets []models.Budget, categoryID string) []models.Budget {
	if categoryID == "" {
		return budgets
	}
	out := make([]models.Budget, 0, len(budgets))
	for _, b := range budgets {
		if b.CategoryID.String() == categoryID {
			out = append(out, b)
		}
	}
	return out
}

// ProgressBar caps a percentage at 100 for drawing.
func ProgressBar(percentageUsed decimal.Decimal) decimal.Decimal {
	if percentageUsed.GreaterThan(hundred) {
		return hundred
	}
	if percentageUsed.IsNegative() {
		return decimal.Zero
	}
	return percentageUsed
}
