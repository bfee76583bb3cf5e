package validation

import (
	"fmt"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// ComputeEndDate derives a budget's end date from its start and period.
//
// Month arithmetic follows calendar normalisation: the start day is carried
// into the target month first, overflowing into the next month when it does
// not exist, and the end is the last day of the month before that. So 31 Jan
// 2024 monthly ends 29 Feb 2024, while 15 Jan ends 31 Jan.
func ComputeEndDate(start models.Date, period models.PeriodType) (models.Date, error) {
	y, m, d := start.Year(), start.Month(), start.Day()

	switch period {
	case models.PeriodWeekly:
		return start.AddDays(6), nil
	case models.PeriodMonthly:
		t := models.NewDate(y, m+1, d)
		return models.NewDate(t.Year(), t.Month(), 0), nil
	case models.PeriodQuarterly:
		t := models.NewDate(y, m+3, d)
		return models.NewDate(t.Year(), t.Month(), 0), nil
	case models.PeriodYearly:
		return models.NewDate(y+1, m, d).AddDays(-1), nil
	}
	return models.Date{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
}
