package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// DefaultUsageDays is the category usage window when none is given.
const DefaultUsageDays = 30

// CategoryFilter narrows ListCategories. Zero values are not sent.
type CategoryFilter struct {
	Type     models.CategoryType
	IsActive *bool
}

func (f CategoryFilter) values() url.Values {
	q := query{}
	q.str("type", string(f.Type))
	q.boolean("is_active", f.IsActive)
	return q.values()
}

type reassignRequest struct {
	TargetCategoryID uuid.UUID `json:"target_category_id"`
}

func categoryPath(id uuid.UUID, action string) string {
	if action == "" {
		return fmt.Sprintf("/categories/%s/", id)
	}
	return fmt.Sprintf("/categories/%s/%s/", id, action)
}

// ListCategories returns the user's categories.
func (c *Client) ListCategories(ctx context.Context, filter CategoryFilter) (Page[models.Category], error) {
	var page Page[models.Category]
	err := c.get(ctx, "categories.list", "/categories/", filter.values(), &page)
	return page, err
}

// GetCategory returns one category.
func (c *Client) GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error) {
	var category models.Category
	err := c.get(ctx, "categories.get", categoryPath(id, ""), nil, &category)
	return category, err
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, req models.CategoryRequest) (models.Category, error) {
	var category models.Category
	err := c.post(ctx, "categories.create", "/categories/", req, &category)
	return category, err
}

// UpdateCategory patches a category.
func (c *Client) UpdateCategory(ctx context.Context, id uuid.UUID, req models.CategoryRequest) (models.Category, error) {
	var category models.Category
	err := c.patch(ctx, "categories.update", categoryPath(id, ""), req, &category)
	return category, err
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "categories.delete", categoryPath(id, ""))
}

// CategoryUsage summarises the last days of use of a category.
// days <= 0 uses DefaultUsageDays.
func (c *Client) CategoryUsage(ctx context.Context, id uuid.UUID, days int) (models.CategoryUsage, error) {
	if days <= 0 {
		days = DefaultUsageDays
	}
	q := query{}
	q.integer("days", days)

	var usage models.CategoryUsage
	err := c.get(ctx, "categories.usage", categoryPath(id, "usage"), q.values(), &usage)
	return usage, err
}

// ReassignTransactions moves every transaction of sourceID to targetID.
func (c *Client) ReassignTransactions(ctx context.Context, sourceID, targetID uuid.UUID) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.post(ctx, "categories.reassign", categoryPath(sourceID, "reassign_transactions"),
		reassignRequest{TargetCategoryID: targetID}, &resp)
	return resp, err
}

// SetDefaultCategories creates the API's default category set.
func (c *Client) SetDefaultCategories(ctx context.Context) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.post(ctx, "categories.set_defaults", "/categories/set_defaults/", nil, &resp)
	return resp, err
}
