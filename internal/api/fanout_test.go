package api

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

type routeServer struct {
	mu     sync.Mutex
	hits   map[string]int
	routes map[string]func(w http.ResponseWriter, r *http.Request)
}

func (s *routeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	handler, ok := s.routes[r.URL.Path]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found."})
		return
	}
	handler(w, r)
}

func (s *routeServer) hitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func okJSON(body any) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, body) }
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	routes := &routeServer{hits: map[string]int{}, routes: map[string]func(http.ResponseWriter, *http.Request){
		"/api/accounts/summary/":        okJSON(map[string]any{"total_balance": "1500.00", "account_count": 3, "active_accounts": 2}),
		"/api/transactions/statistics/": okJSON(map[string]any{"summary": map[string]any{"total_income": "2500", "total_expenses": "900"}}),
		"/api/budgets/overview/":        okJSON(map[string]any{"summary": map[string]any{"total_budgeted": "1000"}, "active_budgets": []any{}}),
	}}
	client := newTestClient(t, routes)

	d, err := client.Dashboard(context.Background(), DateRange{})
	require.NoError(t, err)
	require.Equal(t, 3, d.Accounts.AccountCount)
	require.Equal(t, "2500", d.Statistics.Summary.TotalIncome.String())
	require.Equal(t, "1000", d.Budgets.Summary.TotalBudgeted.String())
}

func TestDashboardFailsAsAWhole(t *testing.T) {
	t.Parallel()

	routes := &routeServer{hits: map[string]int{}, routes: map[string]func(http.ResponseWriter, *http.Request){
		"/api/accounts/summary/":        okJSON(map[string]any{"account_count": 3}),
		"/api/transactions/statistics/": okJSON(map[string]any{}),
		"/api/budgets/overview/": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "overview unavailable"})
		},
	}}
	client := newTestClient(t, routes)

	d, err := client.Dashboard(context.Background(), DateRange{})
	require.Error(t, err)
	require.Equal(t, Dashboard{}, d, "partial results are dropped")
	require.Equal(t, "overview unavailable", BannerMessage(err, "Failed to load dashboard"))
}

func TestFilterOptions(t *testing.T) {
	t.Parallel()

	routes := &routeServer{hits: map[string]int{}, routes: map[string]func(http.ResponseWriter, *http.Request){
		"/api/accounts/": okJSON([]any{map[string]any{"account_name": "Everyday"}}),
		"/api/categories/": okJSON(map[string]any{"count": 2, "results": []any{
			map[string]any{"category_name": "Food"},
			map[string]any{"category_name": "Salary"},
		}}),
	}}
	client := newTestClient(t, routes)

	opts, err := client.FilterOptions(context.Background(), AccountFilter{}, CategoryFilter{})
	require.NoError(t, err)
	require.Len(t, opts.Accounts, 1)
	require.Len(t, opts.Categories, 2)
	require.Equal(t, 1, routes.hitCount("/api/accounts/"))
	require.Equal(t, 1, routes.hitCount("/api/categories/"))
}

func TestBudgetsPageRequestsExpenseCategories(t *testing.T) {
	t.Parallel()

	queries := make(chan string, 2)
	routes := &routeServer{hits: map[string]int{}, routes: map[string]func(http.ResponseWriter, *http.Request){
		"/api/budgets/": func(w http.ResponseWriter, r *http.Request) {
			queries <- "budgets?" + r.URL.RawQuery
			writeJSON(w, http.StatusOK, []any{})
		},
		"/api/categories/": func(w http.ResponseWriter, r *http.Request) {
			queries <- "categories?" + r.URL.RawQuery
			writeJSON(w, http.StatusOK, []any{})
		},
	}}
	client := newTestClient(t, routes)

	_, err := client.BudgetsPage(context.Background(), BudgetFilter{Current: true})
	require.NoError(t, err)
	close(queries)

	var got []string
	for q := range queries {
		got = append(got, q)
	}
	require.ElementsMatch(t, []string{"budgets?current=true", "categories?type=expense"}, got)
}

func TestTransactionsPage(t *testing.T) {
	t.Parallel()

	statsQuery := make(chan string, 1)
	routes := &routeServer{hits: map[string]int{}, routes: map[string]func(http.ResponseWriter, *http.Request){
		"/api/transactions/": okJSON(map[string]any{"count": 57, "results": []any{
			map[string]any{"transaction_description": "Coffee", "transaction_type": "expense", "transaction_amount": "-3.20"},
		}}),
		"/api/transactions/statistics/": func(w http.ResponseWriter, r *http.Request) {
			statsQuery <- r.URL.RawQuery
			writeJSON(w, http.StatusOK, map[string]any{"summary": map[string]any{"transaction_count": 57}})
		},
	}}
	client := newTestClient(t, routes)

	page, err := client.TransactionsPage(context.Background(), TransactionFilter{
		DateFrom: models.MustParseDate("2024-04-01"),
		DateTo:   models.MustParseDate("2024-04-30"),
		Search:   "coffee",
	})
	require.NoError(t, err)
	require.Equal(t, 57, page.Transactions.Count)
	require.Len(t, page.Transactions.Results, 1)
	require.Equal(t, 57, page.Statistics.Summary.TransactionCount)
	require.Equal(t, "date_from=2024-04-01&date_to=2024-04-30", <-statsQuery)
}
