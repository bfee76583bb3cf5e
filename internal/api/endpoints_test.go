package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

func recordingClient(t *testing.T) (*Client, <-chan recordedRequest) {
	t.Helper()
	requests := make(chan recordedRequest, 1)
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		requests <- recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(raw)}
		writeJSON(w, http.StatusOK, map[string]any{})
	}))
	return client, requests
}

func TestEndpointRoutes(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	target := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	day := models.MustParseDate("2024-05-01")

	tests := []struct {
		name      string
		call      func(ctx context.Context, c *Client) error
		wantVerb  string
		wantPath  string
		wantQuery string
		wantBody  string
	}{
		{
			name:     "get account",
			call:     func(ctx context.Context, c *Client) error { _, err := c.GetAccount(ctx, id); return err },
			wantVerb: http.MethodGet, wantPath: "/api/accounts/" + id.String() + "/",
		},
		{
			name:     "deactivate account",
			call:     func(ctx context.Context, c *Client) error { _, err := c.DeactivateAccount(ctx, id); return err },
			wantVerb: http.MethodPost, wantPath: "/api/accounts/" + id.String() + "/deactivate/",
		},
		{
			name:      "statement defaults to 30 days",
			call:      func(ctx context.Context, c *Client) error { _, err := c.AccountStatement(ctx, id, 0); return err },
			wantVerb:  http.MethodGet,
			wantPath:  "/api/accounts/" + id.String() + "/statement/",
			wantQuery: "days=30",
		},
		{
			name: "transfer",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Transfer(ctx, id, models.TransferRequest{TargetAccountID: target})
				return err
			},
			wantVerb: http.MethodPost,
			wantPath: "/api/accounts/" + id.String() + "/transfer/",
			wantBody: `{"target_account_id":"` + target.String() + `","amount":"0"}`,
		},
		{
			name:      "category usage",
			call:      func(ctx context.Context, c *Client) error { _, err := c.CategoryUsage(ctx, id, 7); return err },
			wantVerb:  http.MethodGet,
			wantPath:  "/api/categories/" + id.String() + "/usage/",
			wantQuery: "days=7",
		},
		{
			name: "reassign transactions",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.ReassignTransactions(ctx, id, target)
				return err
			},
			wantVerb: http.MethodPost,
			wantPath: "/api/categories/" + id.String() + "/reassign_transactions/",
			wantBody: `{"target_category_id":"` + target.String() + `"}`,
		},
		{
			name:     "set default categories",
			call:     func(ctx context.Context, c *Client) error { _, err := c.SetDefaultCategories(ctx); return err },
			wantVerb: http.MethodPost, wantPath: "/api/categories/set_defaults/",
		},
		{
			name:     "clone budget defaults to next period",
			call:     func(ctx context.Context, c *Client) error { _, err := c.CloneBudget(ctx, id, ""); return err },
			wantVerb: http.MethodPost,
			wantPath: "/api/budgets/" + id.String() + "/clone/",
			wantBody: `{"period_shift":"next"}`,
		},
		{
			name:     "reactivate budget",
			call:     func(ctx context.Context, c *Client) error { _, err := c.ReactivateBudget(ctx, id); return err },
			wantVerb: http.MethodPost, wantPath: "/api/budgets/" + id.String() + "/reactivate/",
		},
		{
			name: "bulk create budgets",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.BulkCreateBudgets(ctx, TemplateEssential, day)
				return err
			},
			wantVerb: http.MethodPost,
			wantPath: "/api/budgets/bulk_create/",
			wantBody: `{"template":"essential","start_date":"2024-05-01"}`,
		},
		{
			name:     "budget progress",
			call:     func(ctx context.Context, c *Client) error { _, err := c.BudgetProgress(ctx, id); return err },
			wantVerb: http.MethodGet, wantPath: "/api/budgets/" + id.String() + "/progress/",
		},
		{
			name:      "recommendations default to 3 months",
			call:      func(ctx context.Context, c *Client) error { _, err := c.BudgetRecommendations(ctx, 0); return err },
			wantVerb:  http.MethodGet,
			wantPath:  "/api/budgets/recommendations/",
			wantQuery: "months=3",
		},
		{
			name: "duplicate transaction",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.DuplicateTransaction(ctx, id, day)
				return err
			},
			wantVerb: http.MethodPost,
			wantPath: "/api/transactions/" + id.String() + "/duplicate/",
			wantBody: `{"transaction_date":"2024-05-01"}`,
		},
		{
			name: "bulk categorize",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.BulkCategorize(ctx, []uuid.UUID{id}, target)
				return err
			},
			wantVerb: http.MethodPost,
			wantPath: "/api/transactions/bulk_categorize/",
			wantBody: `{"transaction_ids":["` + id.String() + `"],"category_id":"` + target.String() + `"}`,
		},
		{
			name:      "monthly summary",
			call:      func(ctx context.Context, c *Client) error { _, err := c.MonthlySummary(ctx, 2024, 2); return err },
			wantVerb:  http.MethodGet,
			wantPath:  "/api/transactions/monthly_summary/",
			wantQuery: "month=2&year=2024",
		},
		{
			name: "statistics range",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.TransactionStatistics(ctx, DateRange{From: day})
				return err
			},
			wantVerb:  http.MethodGet,
			wantPath:  "/api/transactions/statistics/",
			wantQuery: "date_from=2024-05-01",
		},
		{
			name:     "logout",
			call:     func(ctx context.Context, c *Client) error { return c.Logout(ctx) },
			wantVerb: http.MethodPost, wantPath: "/api/auth/logout/",
		},
		{
			name: "update profile",
			call: func(ctx context.Context, c *Client) error {
				first := "Ada"
				_, err := c.UpdateProfile(ctx, models.ProfileUpdate{FirstName: &first})
				return err
			},
			wantVerb: http.MethodPatch,
			wantPath: "/api/auth/profile/update/",
			wantBody: `{"first_name":"Ada"}`,
		},
		{
			name: "change password",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.ChangePassword(ctx, "old-secret", "new-secret")
				return err
			},
			wantVerb: http.MethodPost,
			wantPath: "/api/auth/change-password/",
			wantBody: `{"current_password":"old-secret","new_password":"new-secret"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, requests := recordingClient(t)
			require.NoError(t, tt.call(context.Background(), client))

			got := <-requests
			require.Equal(t, tt.wantVerb, got.Method)
			require.Equal(t, tt.wantPath, got.Path)
			require.Equal(t, tt.wantQuery, got.Query)
			if tt.wantBody == "" {
				require.Empty(t, got.Body)
			} else {
				require.JSONEq(t, tt.wantBody, got.Body)
			}
		})
	}
}

func TestLoginDecodesAuthResponse(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "correct horse" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"id": 7, "username": "ada", "first_name": "Ada"},
		})
	}))
	ctx := context.Background()

	resp, err := client.Login(ctx, models.Credentials{Username: "ada", Password: "correct horse"})
	require.NoError(t, err)
	require.Equal(t, "tok-1", resp.Token)
	require.Equal(t, "Ada", resp.User.DisplayName())
	require.Empty(t, client.Token(), "login does not install the token")

	_, err = client.Login(ctx, models.Credentials{Username: "ada", Password: "nope"})
	require.Equal(t, "Invalid credentials", BannerMessage(err, "Login failed"))
}
