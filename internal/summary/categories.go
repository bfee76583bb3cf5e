package summary

import (
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// FilterCategories keeps categories of catType ("all" for any) whose status
// matches status.
func FilterCategories(categories []models.Category, catType, status string) []models.Category {
	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if catType != FilterAll && catType != "" && string(c.Type) != catType {
			continue
		}
		if !statusMatches(status, c.IsActive) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// SplitByType separates income and expense categories, keeping order.
func SplitByType(categories []models.Category) (income, expense []models.Category) {
	for _, c := range categories {
		switch c.Type {
		case models.CategoryTypeIncome:
			income = append(income, c)
		case models.CategoryTypeExpense:
			expense = append(expense, c)
		}
	}
	return income, expense
}

// CategoryStats counts a user's categories.
type CategoryStats struct {
	Total        int
	Active       int
	Income       int
	Expense      int
	Transactions int
}

// StatsFor computes CategoryStats over all categories, unfiltered.
func StatsFor(categories []models.Category) CategoryStats {
	stats := CategoryStats{Total: len(categories)}
	for _, c := range categories {
		if c.IsActive {
			stats.Active++
		}
		switch c.Type {
		case models.CategoryTypeIncome:
			stats.Income++
		case models.CategoryTypeExpense:
			stats.Expense++
		}
		stats.Transactions += c.TransactionCount
	}
	return stats
}

// ReassignTargets lists the categories source's transactions may move to:
// active, same type, not source itself.
func ReassignTargets(categories []models.Category, source models.Category) []models.Category {
	var out []models.Category
	for _, c := range categories {
		if c.ID != source.ID && c.Type == source.Type && c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// DeleteAction is what deleting a category should do.
type DeleteAction int

const (
	// DeleteRefused applies to default categories.
	DeleteRefused DeleteAction = iota
	// DeleteReassign means transactions must move to another category first.
	DeleteReassign
	// DeleteConfirm means the category can be deleted outright.
	DeleteConfirm
)

func (a DeleteAction) String() string {
	switch a {
	case DeleteRefused:
		return "refused"
	case DeleteReassign:
		return "reassign"
	}
	return "delete"
}

// DeleteActionFor decides how a delete request for c is handled.
func DeleteActionFor(c models.Category) DeleteAction {
	switch {
	case c.IsDefault:
		return DeleteRefused
	case c.TransactionCount > 0:
		return DeleteReassign
	}
	return DeleteConfirm
}
