package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// The joins below issue their reads concurrently and fail as a whole: if any
// call fails the first error is returned and the partial results are
// dropped.

// Dashboard is the data behind the dashboard page.
type Dashboard struct {
	Accounts   models.AccountSummary
	Statistics models.TransactionStatistics
	Budgets    models.BudgetOverview
}

// Dashboard fetches the account summary, statistics over r and the budget
// overview.
func (c *Client) Dashboard(ctx context.Context, r DateRange) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Accounts, err = c.AccountSummary(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		d.Statistics, err = c.TransactionStatistics(gctx, r)
		return err
	})
	g.Go(func() error {
		var err error
		d.Budgets, err = c.BudgetOverview(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return d, nil
}

// FilterOptions holds the lists that populate filter and form choices.
type FilterOptions struct {
	Accounts   []models.Account
	Categories []models.Category
}

// FilterOptions fetches accounts and categories together.
func (c *Client) FilterOptions(ctx context.Context, accounts AccountFilter, categories CategoryFilter) (FilterOptions, error) {
	var opts FilterOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := c.ListAccounts(gctx, accounts)
		opts.Accounts = page.Results
		return err
	})
	g.Go(func() error {
		page, err := c.ListCategories(gctx, categories)
		opts.Categories = page.Results
		return err
	})
	if err := g.Wait(); err != nil {
		return FilterOptions{}, fmt.Errorf("failed to load filter options: %w", err)
	}
	return opts, nil
}

// BudgetsPage is the data behind the budgets page.
type BudgetsPage struct {
	Budgets    []models.Budget
	Categories []models.Category
}

// BudgetsPage fetches budgets and expense categories together.
func (c *Client) BudgetsPage(ctx context.Context, filter BudgetFilter) (BudgetsPage, error) {
	var p BudgetsPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := c.ListBudgets(gctx, filter)
		p.Budgets = page.Results
		return err
	})
	g.Go(func() error {
		page, err := c.ListCategories(gctx, CategoryFilter{Type: models.CategoryTypeExpense})
		p.Categories = page.Results
		return err
	})
	if err := g.Wait(); err != nil {
		return BudgetsPage{}, fmt.Errorf("failed to load budgets: %w", err)
	}
	return p, nil
}

// TransactionsPage is one page of transactions with statistics over the
// same date window.
type TransactionsPage struct {
	Transactions Page[models.Transaction]
	Statistics   models.TransactionStatistics
}

// TransactionsPage fetches a page of transactions and the statistics for
// the filter's date range together.
func (c *Client) TransactionsPage(ctx context.Context, filter TransactionFilter) (TransactionsPage, error) {
	var p TransactionsPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p.Transactions, err = c.ListTransactions(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		p.Statistics, err = c.TransactionStatistics(gctx, filter.Range())
		return err
	})
	if err := g.Wait(); err != nil {
		return TransactionsPage{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	return p, nil
}
