package forms

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/formatters"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/validation"
)

// BudgetForm derives the end date from the start date and period until the
// user sets the end date by hand. New budgets are named after their period
// and category when a category is picked.
type BudgetForm struct {
	Input         validation.BudgetInput
	editingID     uuid.UUID
	endOverridden bool
	categories    []models.Category
}

// NewBudgetForm starts a monthly budget covering now's month.
func NewBudgetForm(now time.Time, categories []models.Category) *BudgetForm {
	return &BudgetForm{
		Input: validation.BudgetInput{
			PeriodType: models.PeriodMonthly,
			StartDate:  formatters.MonthStart(now),
			EndDate:    formatters.MonthEnd(now),
		},
		categories: categories,
	}
}

// EditBudgetForm starts a form prefilled from b. Missing period or dates fall
// back to the new-budget defaults.
func EditBudgetForm(now time.Time, b models.Budget, categories []models.Category) *BudgetForm {
	f := NewBudgetForm(now, categories)
	f.editingID = b.ID
	f.Input.CategoryID = b.CategoryID
	f.Input.Name = b.Name
	f.Input.Amount = b.Amount.String()
	if b.PeriodType.Valid() {
		f.Input.PeriodType = b.PeriodType
	}
	if !b.StartDate.IsZero() {
		f.Input.StartDate = b.StartDate
	}
	if !b.EndDate.IsZero() {
		f.Input.EndDate = b.EndDate
	}
	return f
}

// IsEdit reports whether the form edits an existing budget.
func (f *BudgetForm) IsEdit() bool {
	return f.editingID != uuid.Nil
}

// EditingID returns the budget being edited, or uuid.Nil.
func (f *BudgetForm) EditingID() uuid.UUID {
	return f.editingID
}

// EndOverridden reports whether the end date was set by hand.
func (f *BudgetForm) EndOverridden() bool {
	return f.endOverridden
}

// SetStart changes the start date and rederives the end date.
func (f *BudgetForm) SetStart(d models.Date) error {
	f.Input.StartDate = d
	return f.derive()
}

// SetPeriod changes the period and rederives the end date.
func (f *BudgetForm) SetPeriod(p models.PeriodType) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", validation.ErrUnknownPeriod, p)
	}
	f.Input.PeriodType = p
	return f.derive()
}

// SetEnd sets the end date by hand. Later start or period changes leave it alone.
func (f *BudgetForm) SetEnd(d models.Date) {
	f.Input.EndDate = d
	f.endOverridden = true
}

// SelectCategory picks the budget's category. On a new budget it also
// renames the budget to "{Period} {Category} Budget".
func (f *BudgetForm) SelectCategory(id uuid.UUID) error {
	for _, c := range f.categories {
		if c.ID != id {
			continue
		}
		f.Input.CategoryID = id
		if !f.IsEdit() {
			f.Input.Name = AutoBudgetName(f.Input.PeriodType, c.Name)
		}
		return nil
	}
	return fmt.Errorf("unknown category %s", id)
}

// Validate checks the form against the user's budgets.
func (f *BudgetForm) Validate(existing []models.Budget) validation.FieldErrors {
	return f.Input.Validate(existing, f.editingID)
}

// Overlap returns the conflicting budget for the advisory line, or nil.
func (f *BudgetForm) Overlap(existing []models.Budget) *validation.OverlapError {
	return f.Input.Overlap(existing, f.editingID)
}

func (f *BudgetForm) derive() error {
	if f.endOverridden || f.Input.StartDate.IsZero() {
		return nil
	}
	end, err := validation.ComputeEndDate(f.Input.StartDate, f.Input.PeriodType)
	if err != nil {
		return fmt.Errorf("failed to derive end date: %w", err)
	}
	f.Input.EndDate = end
	return nil
}

// AutoBudgetName builds the default name for a budget, e.g. "Monthly Food Budget".
func AutoBudgetName(period models.PeriodType, category string) string {
	p := string(period)
	if p != "" {
		p = strings.ToUpper(p[:1]) + p[1:]
	}
	return p + " " + category + " Budget"
}
