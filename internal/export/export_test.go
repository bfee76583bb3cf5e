package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Date:         models.MustParseDate("2024-03-05"),
			Description:  "Tesco",
			CategoryName: "Groceries",
			AccountName:  "Everyday",
			Type:         models.TransactionTypeExpense,
			Amount:       decimal.RequireFromString("-42.10"),
		},
		{
			Date:         models.MustParseDate("2024-03-01"),
			Description:  "Salary",
			CategoryName: "Salary",
			AccountName:  "Everyday",
			Type:         models.TransactionTypeIncome,
			Amount:       decimal.RequireFromString("2500"),
		},
	}
}

func TestTransactionsCSV(t *testing.T) {
	t.Parallel()

	t.Run("header and rows without trailing newline", func(t *testing.T) {
		t.Parallel()
		got := string(TransactionsCSV(sampleTransactions()))
		want := "Date,Description,Category,Account,Type,Amount\n" +
			"05/03/2024,Tesco,Groceries,Everyday,expense,-42.10\n" +
			"01/03/2024,Salary,Salary,Everyday,income,2500.00"
		require.Equal(t, want, got)
	})

	t.Run("header only when empty", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "Date,Description,Category,Account,Type,Amount", string(TransactionsCSV(nil)))
	})

	t.Run("fields are not quoted", func(t *testing.T) {
		t.Parallel()
		txs := sampleTransactions()[:1]
		txs[0].Description = "Coffee, cake"
		txs[0].CategoryName = ""
		got := string(TransactionsCSV(txs))
		lines := strings.Split(got, "\n")
		require.Len(t, lines, 2)
		require.Equal(t, "05/03/2024,Coffee, cake,,Everyday,expense,-42.10", lines[1])
		require.Len(t, strings.Split(lines[1], ","), 7, "the embedded comma adds a column")
	})
}

func TestFilenames(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 15, 23, 30, 0, 0, time.UTC)
	require.Equal(t, "transactions_2024-03-15.csv", CSVFilename(now))
	require.Equal(t, "spending_2024-03-15.png", ChartFilename(now))
}

func TestSpendingChart(t *testing.T) {
	t.Parallel()

	t.Run("renders a png", func(t *testing.T) {
		t.Parallel()
		txs := append(sampleTransactions(), models.Transaction{
			Type:   models.TransactionTypeExpense,
			Amount: decimal.RequireFromString("-12"),
		})
		png, err := SpendingChart(txs, "Spending")
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "expected PNG signature")
	})

	t.Run("no expenses", func(t *testing.T) {
		t.Parallel()
		_, err := SpendingChart(sampleTransactions()[1:], "Spending")
		require.ErrorIs(t, err, ErrNoExpenses)
	})
}
