package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// MaxBudgetSpanDays is the longest a budget may run.
const MaxBudgetSpanDays = 366

// BudgetInput is the budget form.
type BudgetInput struct {
	CategoryID uuid.UUID
	Name       string
	Amount     string
	PeriodType models.PeriodType
	StartDate  models.Date
	EndDate    models.Date
}

// Validate checks the form. existing is the user's budget list and editingID
// the budget being edited, or uuid.Nil when creating. Overlaps only block
// creation; edits see them as a warning through Overlap.
func (in BudgetInput) Validate(existing []models.Budget, editingID uuid.UUID) FieldErrors {
	errs := FieldErrors{}

	if in.CategoryID == uuid.Nil {
		errs.Add("category", "Category is required")
	}

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		errs.Add("budget_name", "Budget name is required")
	case utf8.RuneCountInString(name) < models.MinNameLength:
		errs.Add("budget_name", "Budget name must be at least 2 characters")
	case utf8.RuneCountInString(in.Name) > models.MaxBudgetNameLength:
		errs.Add("budget_name", "Budget name cannot exceed 100 characters")
	}

	if _, msg := parseAmount(in.Amount, amountMessages{
		required: "Budget amount is required",
		positive: "Budget amount must be positive",
		tooLarge: "Budget amount exceeds maximum allowed value",
	}); msg != "" {
		errs.Add("budget_amount", msg)
	}

	if in.StartDate.IsZero() {
		errs.Add("start_date", "Start date is required")
	}
	if in.EndDate.IsZero() {
		errs.Add("end_date", "End date is required")
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() {
		if !in.StartDate.Before(in.EndDate) {
			errs.Add("end_date", "End date must be after start date")
		}
		if in.StartDate.DaysUntil(in.EndDate) > MaxBudgetSpanDays {
			errs.Add("end_date", "Budget period cannot exceed 1 year")
		}
	}

	if editingID == uuid.Nil {
		if oe := in.Overlap(existing, editingID); oe != nil {
			errs.Add("category", "An active budget already exists for this category in this period ("+oe.Budget.Name+")")
		}
	}
	return errs
}

// Overlap returns the conflicting active budget as an *OverlapError, or nil.
func (in BudgetInput) Overlap(existing []models.Budget, editingID uuid.UUID) *OverlapError {
	if in.CategoryID == uuid.Nil || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return nil
	}
	b := FindOverlap(OverlapCandidate{
		CategoryID:      in.CategoryID,
		Start:           in.StartDate,
		End:             in.EndDate,
		ExcludeBudgetID: editingID,
	}, existing)
	if b == nil {
		return nil
	}
	return &OverlapError{Budget: *b}
}

// Request returns the API payload. BudgetType mirrors PeriodType.
func (in BudgetInput) Request() (models.BudgetRequest, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return models.BudgetRequest{}, fmt.Errorf("failed to parse budget amount: %w", err)
	}
	return models.BudgetRequest{
		CategoryID: in.CategoryID,
		Name:       strings.TrimSpace(in.Name),
		Amount:     amount,
		BudgetType: in.PeriodType,
		PeriodType: in.PeriodType,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
	}, nil
}

type amountMessages struct {
	required string
	positive string
	tooLarge string
}

// parseAmount applies the required, positive and maximum rules to a typed
// amount. It returns the parsed value and "" when the amount is acceptable.
func parseAmount(raw string, msgs amountMessages) (decimal.Decimal, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, msgs.required
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, msgs.positive
	}
	if amount.GreaterThan(MaxAmount) {
		return amount, msgs.tooLarge
	}
	return amount, ""
}
