package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// DefaultStatementDays is the statement window when none is given.
const DefaultStatementDays = 30

// AccountFilter narrows ListAccounts. Zero values are not sent.
type AccountFilter struct {
	Type     models.AccountType
	IsActive *bool
	Currency models.Currency
}

func (f AccountFilter) values() url.Values {
	q := query{}
	q.str("account_type", string(f.Type))
	q.boolean("is_active", f.IsActive)
	q.str("currency", string(f.Currency))
	return q.values()
}

func accountPath(id uuid.UUID, action string) string {
	if action == "" {
		return fmt.Sprintf("/accounts/%s/", id)
	}
	return fmt.Sprintf("/accounts/%s/%s/", id, action)
}

// ListAccounts returns the user's bank accounts.
func (c *Client) ListAccounts(ctx context.Context, filter AccountFilter) (Page[models.Account], error) {
	var page Page[models.Account]
	err := c.get(ctx, "accounts.list", "/accounts/", filter.values(), &page)
	return page, err
}

// GetAccount returns one account.
func (c *Client) GetAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	var account models.Account
	err := c.get(ctx, "accounts.get", accountPath(id, ""), nil, &account)
	return account, err
}

// CreateAccount creates an account.
func (c *Client) CreateAccount(ctx context.Context, req models.AccountRequest) (models.Account, error) {
	var account models.Account
	err := c.post(ctx, "accounts.create", "/accounts/", req, &account)
	return account, err
}

// UpdateAccount patches an account.
func (c *Client) UpdateAccount(ctx context.Context, id uuid.UUID, req models.AccountRequest) (models.Account, error) {
	var account models.Account
	err := c.patch(ctx, "accounts.update", accountPath(id, ""), req, &account)
	return account, err
}

// DeleteAccount deletes an account. The API refuses accounts that have
// transactions.
func (c *Client) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return c.delete(ctx, "accounts.delete", accountPath(id, ""))
}

// DeactivateAccount deactivates an account.
func (c *Client) DeactivateAccount(ctx context.Context, id uuid.UUID) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.post(ctx, "accounts.deactivate", accountPath(id, "deactivate"), nil, &resp)
	return resp, err
}

// AccountSummary returns the account roll-up shown on the dashboard.
func (c *Client) AccountSummary(ctx context.Context) (models.AccountSummary, error) {
	var summary models.AccountSummary
	err := c.get(ctx, "accounts.summary", "/accounts/summary/", nil, &summary)
	return summary, err
}

// AccountStatement returns the last days of activity on an account.
// days <= 0 uses DefaultStatementDays.
func (c *Client) AccountStatement(ctx context.Context, id uuid.UUID, days int) (models.AccountStatement, error) {
	if days <= 0 {
		days = DefaultStatementDays
	}
	q := query{}
	q.integer("days", days)

	var statement models.AccountStatement
	err := c.get(ctx, "accounts.statement", accountPath(id, "statement"), q.values(), &statement)
	return statement, err
}

// Transfer moves money out of sourceID into req.TargetAccountID.
func (c *Client) Transfer(ctx context.Context, sourceID uuid.UUID, req models.TransferRequest) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.post(ctx, "accounts.transfer", accountPath(sourceID, "transfer"), req, &resp)
	return resp, err
}
