package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// DefaultRecommendationMonths is the look-back used by BudgetRecommendations
// when months <= 0.
const DefaultRecommendationMonths = 3

// BudgetTemplate names a server-side bulk-create template.
type BudgetTemplate string

// Templates accepted by BulkCreateBudgets.
const (
	TemplateEssential     BudgetTemplate = "essential"
	TemplateComprehensive BudgetTemplate = "comprehensive"
)

// Valid reports whether t is a known template.
func (t BudgetTemplate) Valid() bool {
	return t == TemplateEssential || t == TemplateComprehensive
}

// PeriodShift is where CloneBudget places the copy.
type PeriodShift string

// PeriodShiftNext clones a budget into the following period.
const PeriodShiftNext PeriodShift = "next"

// BudgetFilter narrows ListBudgets. Zero values are not sent.
type BudgetFilter struct {
	Current    bool
	CategoryID *uuid.UUID
	IsActive   *bool
	PeriodType models.PeriodType
}

func (f BudgetFilter) values() url.Values {
	q := query{}
	if f.Current {
		q.str("current", "true")
	}
	q.id("category", f.CategoryID)
	q.boolean("is_active", f.IsActive)
	q.str("period_type", string(f.PeriodType))
	return q.values()
}

type cloneRequest struct {
	PeriodShift PeriodShift `json:"period_shift"`
}

type bulkCreateRequest struct {
	Template  BudgetTemplate `json:"template"`
	StartDate models.Date    `json:"start_date"`
}

func budgetPath(id uuid.UUID, action string) string {
	if action == "" {
		return fmt.Sprintf("/budgets/%s/", id)
	}
	return fmt.Sprintf("/budgets/%s/%s/", id, action)
}

// ListBudgets returns the user's budgets.
func (c *Client) ListBudgets(ctx context.Context, filter BudgetFilter) (Page[models.Budget], error) {
	var page Page[models.Budget]
	err := c.get(ctx, "budgets.list", "/budgets/", filter.values(), &page)
	return page, err
}

// GetBudget returns one budget.
func (c *Client) GetBudget(ctx context.Context, id uuid.UUID) (models.Budget, error) {
	var budget models.Budget
	err := c.get(ctx, "budgets.get", budgetPath(id, ""), nil, &budget)
	return budget, err
}

// CreateBudget creates a budget.
func (c *Client) CreateBudget(ctx context.Context, req models.BudgetRequest) (models.Budget, error) {
	var budget models.Budget
	err := c.post(ctx, "budgets.create", "/budgets/", req, &budget)
	return budget, err
}

// UpdateBudget patches a budget.
func (c *Client) UpdateBudget(ctx context.Context, id uuid.UUID, req models.BudgetRequest) (models.Budget, error) {
	var budget models.Budget
	err := c.patch(ctx, "budgets.update", budgetPath(id, ""), req, &budget)
	return budget, err
}

// DeleteBudget deletes a budget.
func (c *Client) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "budgets.delete", budgetPath(id, ""))
}

// CloneBudget copies a budget into another period. An empty shift means
// PeriodShiftNext.
func (c *Client) CloneBudget(ctx context.Context, id uuid.UUID, shift PeriodShift) (models.Budget, error) {
	if shift == "" {
		shift = PeriodShiftNext
	}
	var budget models.Budget
	err := c.post(ctx, "budgets.clone", budgetPath(id, "clone"), cloneRequest{PeriodShift: shift}, &budget)
	return budget, err
}

// DeactivateBudget deactivates a budget.
func (c *Client) DeactivateBudget(ctx context.Context, id uuid.UUID) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.post(ctx, "budgets.deactivate", budgetPath(id, "deactivate"), nil, &resp)
	return resp, err
}

// ReactivateBudget reactivates a budget.
func (c *Client) ReactivateBudget(ctx context.Context, id uuid.UUID) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.post(ctx, "budgets.reactivate", budgetPath(id, "reactivate"), nil, &resp)
	return resp, err
}

// BulkCreateBudgets creates the budgets of a template starting at start.
func (c *Client) BulkCreateBudgets(ctx context.Context, template BudgetTemplate, start models.Date) (models.BulkCreateResult, error) {
	var result models.BulkCreateResult
	err := c.post(ctx, "budgets.bulk_create", "/budgets/bulk_create/",
		bulkCreateRequest{Template: template, StartDate: start}, &result)
	return result, err
}

// BudgetProgress returns the spending report for one budget.
func (c *Client) BudgetProgress(ctx context.Context, id uuid.UUID) (models.BudgetProgress, error) {
	var progress models.BudgetProgress
	err := c.get(ctx, "budgets.progress", budgetPath(id, "progress"), nil, &progress)
	return progress, err
}

// BudgetOverview totals all active budgets.
func (c *Client) BudgetOverview(ctx context.Context) (models.BudgetOverview, error) {
	var overview models.BudgetOverview
	err := c.get(ctx, "budgets.overview", "/budgets/overview/", nil, &overview)
	return overview, err
}

// BudgetRecommendations suggests new and adjusted budgets from the last
// months of spending.
func (c *Client) BudgetRecommendations(ctx context.Context, months int) (models.BudgetRecommendations, error) {
	if months <= 0 {
		months = DefaultRecommendationMonths
	}
	q := query{}
	q.integer("months", months)

	var recs models.BudgetRecommendations
	err := c.get(ctx, "budgets.recommendations", "/budgets/recommendations/", q.values(), &recs)
	return recs, err
}
