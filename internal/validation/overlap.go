package validation

import (
	"github.com/google/uuid"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// OverlapCandidate is the budget being created or edited.
// ExcludeBudgetID is the budget's own ID when editing, uuid.Nil otherwise.
type OverlapCandidate struct {
	CategoryID      uuid.UUID
	Start           models.Date
	End             models.Date
	ExcludeBudgetID uuid.UUID
}

// OverlapError reports the active budget that conflicts with a new one.
type OverlapError struct {
	Budget models.Budget
}

func (e *OverlapError) Error() string {
	return "an active budget already exists for this category in this period (" + e.Budget.Name + ")"
}

func (e *OverlapError) Unwrap() error {
	return ErrBudgetOverlap
}

// Warning is the advisory shown while the form is being filled in.
func (e *OverlapError) Warning() string {
	return "Warning: An active budget already exists for this category in this period (" + e.Budget.Name + ")"
}

// FindOverlap returns the first active budget in existing, in order, for the
// same category whose range touches the candidate's. Ranges are inclusive at
// both ends, so a budget ending on the day another starts overlaps it.
func FindOverlap(c OverlapCandidate, existing []models.Budget) *models.Budget {
	for i := range existing {
		b := &existing[i]
		if b.CategoryID != c.CategoryID || !b.IsActive {
			continue
		}
		if c.ExcludeBudgetID != uuid.Nil && b.ID == c.ExcludeBudgetID {
			continue
		}
		if overlaps(c.Start, c.End, b.StartDate, b.EndDate) {
			return b
		}
	}
	return nil
}

func overlaps(start, end, otherStart, otherEnd models.Date) bool {
	within := func(d models.Date) bool {
		return !d.Before(otherStart) && !d.After(otherEnd)
	}
	contains := !start.After(otherStart) && !end.Before(otherEnd)
	return within(start) || within(end) || contains
}
