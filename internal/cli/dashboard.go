package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/formatters"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/summary"
)

func dashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show balances, this month's cash flow and budget usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}

			now := app.now()
			d, err := app.API.Dashboard(ctx, api.DateRange{
				From: formatters.MonthStart(now),
				To:   formatters.MonthEnd(now),
			})
			if err != nil {
				return loadFailed(err, "Failed to load dashboard")
			}

			user, _ := app.Session.CurrentUser(ctx)
			w := cmd.OutOrStdout()
			title(w, fmt.Sprintf("Welcome back, %s!", user.DisplayName()))

			currency := app.BaseCurrency
			stats := d.Statistics.Summary
			tw := table(w, "Metric", "Value")
			row(tw, "Total balance", formatters.FormatCurrency(d.Accounts.TotalBalance, currency))
			row(tw, "Active accounts", fmt.Sprintf("%d of %d", d.Accounts.ActiveAccounts, d.Accounts.AccountCount))
			row(tw, "Income this month", formatters.FormatCurrency(stats.TotalIncome, currency))
			row(tw, "Expenses this month", formatters.FormatCurrency(stats.TotalExpenses, currency))
			row(tw, "Net savings", formatters.FormatSignedAmount(stats.NetSavings, currency))
			row(tw, "Budgeted", formatters.FormatCurrency(d.Budgets.Summary.TotalBudgeted, currency))
			row(tw, "Budget used", formatters.FormatPercentage(d.Budgets.Summary.OverallPercentage, 1))
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(d.Budgets.ActiveBudgets) == 0 {
				return nil
			}
			_, _ = fmt.Fprintln(w)
			title(w, "Active budgets")
			tw = table(w, "Budget", "Category", "Spent", "Amount", "Used", "Status")
			for _, b := range d.Budgets.ActiveBudgets {
				row(tw,
					b.Name,
					b.Category,
					formatters.FormatCurrency(b.Spent, currency),
					formatters.FormatCurrency(b.Amount, currency),
					formatters.FormatPercentage(b.Percentage, 1),
					string(summary.BudgetStatusFor(b.Percentage)),
				)
			}
			return tw.Flush()
		},
	}
}
