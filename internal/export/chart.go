package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-analyze/charts"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/formatters"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/summary"
)

// ErrNoExpenses is returned when there is nothing to chart.
var ErrNoExpenses = errors.New("no expenses to chart")

// SpendingChart renders a PNG pie chart of expense totals per category.
func SpendingChart(transactions []models.Transaction, title string) ([]byte, error) {
	totals := summary.ExpensesByCategory(transactions)
	if len(totals) == 0 {
		return nil, ErrNoExpenses
	}

	values := make([]float64, 0, len(totals))
	names := make([]string, 0, len(totals))
	for _, t := range totals {
		values = append(values, t.Amount.InexactFloat64())
		names = append(names, t.Category)
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: title,
		}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}

// ChartFilename names a chart made on now, e.g. "spending_2024-03-15.png".
func ChartFilename(now time.Time) string {
	return fmt.Sprintf("spending_%s.png", formatters.FormatDateForAPI(models.DateOf(now)))
}
