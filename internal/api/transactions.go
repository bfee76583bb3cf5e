package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// DefaultPageSize is the transaction page size when none is given.
const DefaultPageSize = 20

// DateRange bounds statistics queries. Zero ends are not sent.
type DateRange struct {
	From models.Date
	To   models.Date
}

func (r DateRange) values() url.Values {
	q := query{}
	q.date("date_from", r.From)
	q.date("date_to", r.To)
	return q.values()
}

// TransactionFilter narrows ListTransactions. Page is 1-based; zero values
// are not sent except for paging, which defaults to page 1 of
// DefaultPageSize.
type TransactionFilter struct {
	AccountID   *uuid.UUID
	CategoryID  *uuid.UUID
	Type        models.TransactionType
	DateFrom    models.Date
	DateTo      models.Date
	MinAmount   *decimal.Decimal
	IsRecurring *bool
	Search      string
	Page        int
	PageSize    int
}

// Range returns the filter's date window.
func (f TransactionFilter) Range() DateRange {
	return DateRange{From: f.DateFrom, To: f.DateTo}
}

func (f TransactionFilter) values() url.Values {
	page := f.Page
	if page <= 0 {
		page = 1
	}
	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	q := query{}
	q.integer("page", page)
	q.integer("page_size", size)
	q.id("bank_account", f.AccountID)
	q.id("category", f.CategoryID)
	q.str("type", string(f.Type))
	q.date("date_from", f.DateFrom)
	q.date("date_to", f.DateTo)
	q.amount("min_amount", f.MinAmount)
	q.boolean("is_recurring", f.IsRecurring)
	q.str("search", f.Search)
	return q.values()
}

type bulkCategorizeRequest struct {
	TransactionIDs []uuid.UUID `json:"transaction_ids"`
	CategoryID     uuid.UUID   `json:"category_id"`
}

type duplicateRequest struct {
	TransactionDate models.Date `json:"transaction_date"`
}

func transactionPath(id uuid.UUID, action string) string {
	if action == "" {
		return fmt.Sprintf("/transactions/%s/", id)
	}
	return fmt.Sprintf("/transactions/%s/%s/", id, action)
}

// ListTransactions returns one page of transactions.
func (c *Client) ListTransactions(ctx context.Context, filter TransactionFilter) (Page[models.Transaction], error) {
	var page Page[models.Transaction]
	err := c.get(ctx, "transactions.list", "/transactions/", filter.values(), &page)
	return page, err
}

// GetTransaction returns one transaction.
func (c *Client) GetTransaction(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	var tx models.Transaction
	err := c.get(ctx, "transactions.get", transactionPath(id, ""), nil, &tx)
	return tx, err
}

// CreateTransaction records a transaction.
func (c *Client) CreateTransaction(ctx context.Context, req models.TransactionRequest) (models.Transaction, error) {
	var tx models.Transaction
	err := c.post(ctx, "transactions.create", "/transactions/", req, &tx)
	return tx, err
}

// UpdateTransaction patches a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id uuid.UUID, req models.TransactionRequest) (models.Transaction, error) {
	var tx models.Transaction
	err := c.patch(ctx, "transactions.update", transactionPath(id, ""), req, &tx)
	return tx, err
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "transactions.delete", transactionPath(id, ""))
}

// DuplicateTransaction copies a transaction onto date.
func (c *Client) DuplicateTransaction(ctx context.Context, id uuid.UUID, date models.Date) (models.Transaction, error) {
	var tx models.Transaction
	err := c.post(ctx, "transactions.duplicate", transactionPath(id, "duplicate"),
		duplicateRequest{TransactionDate: date}, &tx)
	return tx, err
}

// BulkCategorize sets categoryID on every transaction in ids.
func (c *Client) BulkCategorize(ctx context.Context, ids []uuid.UUID, categoryID uuid.UUID) (models.BulkCategorizeResult, error) {
	var result models.BulkCategorizeResult
	err := c.post(ctx, "transactions.bulk_categorize", "/transactions/bulk_categorize/",
		bulkCategorizeRequest{TransactionIDs: ids, CategoryID: categoryID}, &result)
	return result, err
}

// TransactionStatistics totals income and expenses over r.
func (c *Client) TransactionStatistics(ctx context.Context, r DateRange) (models.TransactionStatistics, error) {
	var stats models.TransactionStatistics
	err := c.get(ctx, "transactions.statistics", "/transactions/statistics/", r.values(), &stats)
	return stats, err
}

// MonthlySummary totals one calendar month.
func (c *Client) MonthlySummary(ctx context.Context, year, month int) (models.MonthlySummary, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))

	var summary models.MonthlySummary
	err := c.get(ctx, "transactions.monthly_summary", "/transactions/monthly_summary/", q, &summary)
	return summary, err
}
