// Package export writes loaded transactions out as files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/formatters"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

var csvHeader = []string{"Date", "Description", "Category", "Account", "Type", "Amount"}

// TransactionsCSV renders transactions one per row. Fields are joined with
// commas as they are, without quoting, and rows are separated by "\n" with
// no trailing newline. A description containing a comma shifts its row.
func TransactionsCSV(transactions []models.Transaction) []byte {
	rows := make([]string, 0, len(transactions)+1)
	rows = append(rows, strings.Join(csvHeader, ","))

	for i := range transactions {
		tx := &transactions[i]
		rows = append(rows, strings.Join([]string{
			formatters.FormatDate(tx.Date),
			tx.Description,
			tx.CategoryName,
			tx.AccountName,
			string(tx.Type),
			tx.Amount.StringFixed(2),
		}, ","))
	}

	return []byte(strings.Join(rows, "\n"))
}

// CSVFilename names an export made on now, e.g. "transactions_2024-03-15.csv".
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("transactions_%s.csv", formatters.FormatDateForAPI(models.DateOf(now)))
}
