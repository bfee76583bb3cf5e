package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuthResponse is returned by login, register and change-password.
type AuthResponse struct {
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Message string `json:"message"`
}

// MessageResponse is the generic {"message": ...} body of action endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// AccountSummary is the dashboard roll-up of the user's accounts.
type AccountSummary struct {
	TotalBalance   decimal.Decimal `json:"total_balance"`
	AccountCount   int             `json:"account_count"`
	ActiveAccounts int             `json:"active_accounts"`
}

// AccountStatement lists an account's recent activity.
type AccountStatement struct {
	Account          Account         `json:"account"`
	OpeningBalance   decimal.Decimal `json:"opening_balance"`
	ClosingBalance   decimal.Decimal `json:"closing_balance"`
	PeriodDays       int             `json:"period_days"`
	Transactions     []Transaction   `json:"transactions"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	TransactionCount int             `json:"transaction_count"`
}

// CategoryUsage summarises recent use of a category.
type CategoryUsage struct {
	Category         Category        `json:"category"`
	PeriodDays       int             `json:"period_days"`
	TransactionCount int             `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	AverageAmount    decimal.Decimal `json:"average_amount"`
}

// StatisticsSummary holds income/expense totals over a date range.
type StatisticsSummary struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetSavings       decimal.Decimal `json:"net_savings"`
	TransactionCount int             `json:"transaction_count"`
}

// TransactionStatistics is the body of /transactions/statistics/.
type TransactionStatistics struct {
	Summary StatisticsSummary `json:"summary"`
}

// MonthlySummary is the body of /transactions/monthly_summary/.
type MonthlySummary struct {
	Year    int               `json:"year"`
	Month   int               `json:"month"`
	Summary StatisticsSummary `json:"summary"`
}

// BulkCategorizeResult reports how many transactions were updated.
type BulkCategorizeResult struct {
	UpdatedCount int    `json:"updated_count"`
	Message      string `json:"message"`
}

// BudgetPeriod is the period block of a progress report.
type BudgetPeriod struct {
	Start         Date `json:"start"`
	End           Date `json:"end"`
	DaysRemaining int  `json:"days_remaining"`
}

// BudgetProgressBudget is the budget block of a progress report.
type BudgetProgressBudget struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Period BudgetPeriod    `json:"period"`
}

// BudgetSpending is the spending block of a progress report.
type BudgetSpending struct {
	TotalSpent     decimal.Decimal  `json:"total_spent"`
	Remaining      decimal.Decimal  `json:"remaining"`
	PercentageUsed decimal.Decimal  `json:"percentage_used"`
	PacePercentage *decimal.Decimal `json:"pace_percentage"`
	DailyAllowance *decimal.Decimal `json:"daily_allowance"`
	ExpectedSpend  decimal.Decimal  `json:"expected_spend"`
}

// ProgressStatus is the API's classification of a budget's progress.
type ProgressStatus string

// Progress statuses reported by /budgets/{id}/progress/.
const (
	ProgressOnTrack   ProgressStatus = "on_track"
	ProgressAttention ProgressStatus = "attention"
	ProgressWarning   ProgressStatus = "warning"
	ProgressExceeded  ProgressStatus = "exceeded"
)

// Label returns the display label for a progress status.
func (s ProgressStatus) Label() string {
	switch s {
	case ProgressOnTrack:
		return "On Track"
	case ProgressAttention:
		return "Needs Attention"
	case ProgressWarning:
		return "Warning"
	case ProgressExceeded:
		return "Exceeded"
	}
	return "Unknown"
}

// BudgetProgress is the body of /budgets/{id}/progress/.
type BudgetProgress struct {
	Budget             BudgetProgressBudget `json:"budget"`
	Spending           BudgetSpending       `json:"spending"`
	Status             ProgressStatus       `json:"status"`
	RecentTransactions []Transaction        `json:"recent_transactions"`
}

// OverviewSummary totals all active budgets.
type OverviewSummary struct {
	TotalBudgeted     decimal.Decimal `json:"total_budgeted"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	TotalRemaining    decimal.Decimal `json:"total_remaining"`
	OverallPercentage decimal.Decimal `json:"overall_percentage"`
}

// OverviewBudget is one active budget in the overview.
type OverviewBudget struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Percentage decimal.Decimal `json:"percentage"`
}

// BudgetOverview is the body of /budgets/overview/.
type BudgetOverview struct {
	Summary       OverviewSummary  `json:"summary"`
	ActiveBudgets []OverviewBudget `json:"active_budgets"`
}

// UnbudgetedCategory is a category with spending but no budget.
type UnbudgetedCategory struct {
	Category        string          `json:"category"`
	RecentSpending  decimal.Decimal `json:"recent_spending"`
	SuggestedBudget decimal.Decimal `json:"suggested_budget"`
}

// BudgetAdjustment is a budget that has been overspent.
type BudgetAdjustment struct {
	Category            string          `json:"category"`
	OverspendPercentage decimal.Decimal `json:"overspend_percentage"`
	RecommendedBudget   decimal.Decimal `json:"recommended_budget"`
}

// BudgetRecommendations is the body of /budgets/recommendations/.
type BudgetRecommendations struct {
	UnbudgetedCategories []UnbudgetedCategory `json:"unbudgeted_categories"`
	AdjustmentNeeded     []BudgetAdjustment   `json:"adjustment_needed"`
}

// BulkCreateResult is the body of /budgets/bulk_create/.
type BulkCreateResult struct {
	CreatedCount int      `json:"created_count"`
	Budgets      []Budget `json:"budgets"`
	Message      string   `json:"message"`
}
