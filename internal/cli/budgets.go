package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/formatters"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/forms"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/summary"
)

func budgetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "budgets",
		Aliases: []string{"budget"},
		Short:   "Manage spending budgets",
	}

	cmd.AddCommand(listBudgetsCmd(app))
	cmd.AddCommand(createBudgetCmd(app))
	cmd.AddCommand(updateBudgetCmd(app))
	cmd.AddCommand(deleteBudgetCmd(app))
	cmd.AddCommand(cloneBudgetCmd(app))
	cmd.AddCommand(budgetActionCmd(app, "deactivate", "Deactivate a budget", (*api.Client).DeactivateBudget))
	cmd.AddCommand(budgetActionCmd(app, "reactivate", "Reactivate a budget", (*api.Client).ReactivateBudget))
	cmd.AddCommand(budgetTemplateCmd(app))
	cmd.AddCommand(budgetProgressCmd(app))
	cmd.AddCommand(budgetOverviewCmd(app))
	cmd.AddCommand(budgetRecommendationsCmd(app))

	return cmd
}

func listBudgetsCmd(app *App) *cobra.Command {
	var (
		current  bool
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets with their spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}

			page, err := app.API.BudgetsPage(ctx, api.BudgetFilter{Current: current})
			if err != nil {
				return loadFailed(err, "Failed to load budgets")
			}
			budgets := summary.FilterBudgetsByCategory(page.Budgets, strings.TrimSpace(category))

			w := cmd.OutOrStdout()
			if len(budgets) == 0 {
				_, _ = fmt.Fprintln(w, SubtleStyle.Render("No budgets found. Use 'budgetbox budgets create' or 'budgetbox budgets template' to add some."))
				return nil
			}

			currency := app.BaseCurrency
			tw := table(w, "ID", "Name", "Category", "Period", "Start", "End", "Amount", "Spent", "Used", "Status")
			for _, b := range budgets {
				state := string(summary.BudgetStatusFor(b.PercentageUsed))
				if !b.IsActive {
					state = SubtleStyle.Render("Inactive")
				}
				row(tw,
					b.ID.String(),
					b.Name,
					b.CategoryName,
					titleCase(string(b.PeriodType)),
					formatters.FormatDate(b.StartDate),
					formatters.FormatDate(b.EndDate),
					formatters.FormatCurrency(b.Amount, currency),
					formatters.FormatCurrency(b.SpentAmount, currency),
					formatters.FormatPercentage(b.PercentageUsed, 1),
					state,
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&current, "current", false, "only budgets covering today")
	cmd.Flags().StringVar(&category, "category", "", "only budgets for this category ID")

	return cmd
}

// budgetFlags are the budget form fields settable from flags.
type budgetFlags struct {
	category, name, amount, period, start, end string
}

func (f *budgetFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", "", "expense category ID")
	cmd.Flags().StringVar(&f.name, "name", "", "budget name (defaults to \"{Period} {Category} Budget\")")
	cmd.Flags().StringVar(&f.amount, "amount", "", "budget amount")
	cmd.Flags().StringVar(&f.period, "period", string(models.PeriodMonthly), "period (weekly, monthly, quarterly, yearly)")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (defaults to the start of this month)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date (derived from start and period when empty)")
}

// apply feeds the flags the user set through form in the order the form
// expects: period and start before the end date, category before name.
func (f *budgetFlags) apply(cmd *cobra.Command, form *forms.BudgetForm) error {
	flags := cmd.Flags()
	if flags.Changed("period") {
		if err := form.SetPeriod(models.PeriodType(strings.ToLower(f.period))); err != nil {
			return err
		}
	}
	if flags.Changed("start") {
		start, err := parseDate("start", f.start)
		if err != nil {
			return err
		}
		if err := form.SetStart(start); err != nil {
			return err
		}
	}
	if flags.Changed("end") {
		end, err := parseDate("end", f.end)
		if err != nil {
			return err
		}
		form.SetEnd(end)
	}
	if flags.Changed("category") {
		id, err := parseID("category", f.category)
		if err != nil {
			return err
		}
		if err := form.SelectCategory(id); err != nil {
			return fmt.Errorf("category %s is not one of your expense categories", id)
		}
	}
	if flags.Changed("name") {
		form.Input.Name = f.name
	}
	if flags.Changed("amount") {
		form.Input.Amount = strings.TrimSpace(f.amount)
	}
	return nil
}

func createBudgetCmd(app *App) *cobra.Command {
	var f budgetFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			page, err := app.API.BudgetsPage(ctx, api.BudgetFilter{})
			if err != nil {
				return loadFailed(err, "Failed to load budgets")
			}

			form := forms.NewBudgetForm(app.now(), page.Categories)
			if err := f.apply(cmd, form); err != nil {
				return err
			}
			errs := form.Validate(page.Budgets)
			if len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}
			req, err := form.Input.Request()
			if err != nil {
				return err
			}

			budget, err := app.API.CreateBudget(ctx, req)
			if err != nil {
				return submitFailed(cmd, errs, err, "Failed to save budget")
			}
			success(cmd, "Created budget %q for %s to %s (ID: %s)", budget.Name,
				formatters.FormatDate(req.StartDate), formatters.FormatDate(req.EndDate), budget.ID)
			return nil
		},
	}

	f.bind(cmd)

	return cmd
}

func updateBudgetCmd(app *App) *cobra.Command {
	var f budgetFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("budget", args[0])
			if err != nil {
				return err
			}

			budget, err := app.API.GetBudget(ctx, id)
			if err != nil {
				return loadFailed(err, "Failed to load budget")
			}
			page, err := app.API.BudgetsPage(ctx, api.BudgetFilter{})
			if err != nil {
				return loadFailed(err, "Failed to load budgets")
			}

			form := forms.EditBudgetForm(app.now(), budget, page.Categories)
			if err := f.apply(cmd, form); err != nil {
				return err
			}
			if overlap := form.Overlap(page.Budgets); overlap != nil {
				warn(cmd, overlap.Warning())
			}
			errs := form.Validate(page.Budgets)
			if len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}
			req, err := form.Input.Request()
			if err != nil {
				return err
			}

			updated, err := app.API.UpdateBudget(ctx, id, req)
			if err != nil {
				return submitFailed(cmd, errs, err, "Failed to save budget")
			}
			success(cmd, "Updated budget %q", updated.Name)
			return nil
		},
	}

	f.bind(cmd)

	return cmd
}

func deleteBudgetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("budget", args[0])
			if err != nil {
				return err
			}
			if err := app.confirm(cmd, yes, fmt.Sprintf("Delete budget %s?", id)); err != nil {
				return err
			}
			if err := app.API.DeleteBudget(ctx, id); err != nil {
				return loadFailed(err, "Failed to delete budget")
			}
			success(cmd, "Deleted budget %s", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func cloneBudgetCmd(app *App) *cobra.Command {
	var shift string

	cmd := &cobra.Command{
		Use:   "clone <id>",
		Short: "Copy a budget into the next period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("budget", args[0])
			if err != nil {
				return err
			}

			clone, err := app.API.CloneBudget(ctx, id, api.PeriodShift(shift))
			if err != nil {
				return loadFailed(err, "Failed to clone budget")
			}
			success(cmd, "Cloned into %q for %s to %s (ID: %s)", clone.Name,
				formatters.FormatDate(clone.StartDate), formatters.FormatDate(clone.EndDate), clone.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shift, "shift", string(api.PeriodShiftNext), "where to place the copy")

	return cmd
}

type budgetAction func(c *api.Client, ctx context.Context, id uuid.UUID) (models.MessageResponse, error)

func budgetActionCmd(app *App, use, short string, action budgetAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("budget", args[0])
			if err != nil {
				return err
			}

			resp, err := action(app.API, ctx, id)
			if err != nil {
				return loadFailed(err, fmt.Sprintf("Failed to %s budget", use))
			}
			if resp.Message == "" {
				resp.Message = fmt.Sprintf("Budget %s: %sd", id, use)
			}
			success(cmd, "%s", resp.Message)
			return nil
		},
	}
}

func budgetTemplateCmd(app *App) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:       "template <essential|comprehensive>",
		Short:     "Create a set of budgets from a template",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(api.TemplateEssential), string(api.TemplateComprehensive)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			template := api.BudgetTemplate(strings.ToLower(args[0]))
			if !template.Valid() {
				return fmt.Errorf("unknown template %q (want essential or comprehensive)", args[0])
			}

			from, err := parseDate("start", start)
			if err != nil {
				return err
			}
			if from.IsZero() {
				from = formatters.MonthStart(app.now())
			}

			result, err := app.API.BulkCreateBudgets(ctx, template, from)
			if err != nil {
				return loadFailed(err, "Failed to create budgets from template")
			}
			if result.Message == "" {
				result.Message = fmt.Sprintf("Created %d budgets", result.CreatedCount)
			}
			success(cmd, "%s", result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first day of the budgets (defaults to the start of this month)")

	return cmd
}

func budgetProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id>",
		Short: "Show spending against a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("budget", args[0])
			if err != nil {
				return err
			}

			p, err := app.API.BudgetProgress(ctx, id)
			if err != nil {
				return loadFailed(err, "Failed to load budget progress")
			}

			currency := app.BaseCurrency
			w := cmd.OutOrStdout()
			title(w, fmt.Sprintf("%s: %s", p.Budget.Name, p.Status.Label()))
			tw := table(w, "Metric", "Value")
			row(tw, "Period", formatters.FormatDate(p.Budget.Period.Start)+" to "+formatters.FormatDate(p.Budget.Period.End))
			row(tw, "Days remaining", fmt.Sprint(p.Budget.Period.DaysRemaining))
			row(tw, "Budget", formatters.FormatCurrency(p.Budget.Amount, currency))
			row(tw, "Spent", formatters.FormatCurrency(p.Spending.TotalSpent, currency))
			row(tw, "Remaining", formatters.FormatCurrency(p.Spending.Remaining, currency))
			row(tw, "Used", formatters.FormatPercentage(p.Spending.PercentageUsed, 1))
			if p.Spending.DailyAllowance != nil {
				row(tw, "Daily allowance", formatters.FormatCurrency(*p.Spending.DailyAllowance, currency))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(p.RecentTransactions) == 0 {
				return nil
			}
			_, _ = fmt.Fprintln(w)
			title(w, "Recent transactions")
			tw = table(w, "Date", "Description", "Amount")
			for _, tx := range p.RecentTransactions {
				row(tw, formatters.FormatDate(tx.Date), tx.Description, formatters.FormatSignedAmount(tx.Amount, currency))
			}
			return tw.Flush()
		},
	}
}

func budgetOverviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Summarise all active budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}

			o, err := app.API.BudgetOverview(ctx)
			if err != nil {
				return loadFailed(err, "Failed to load budget overview")
			}

			currency := app.BaseCurrency
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Budgeted %s  Spent %s  Remaining %s  (%s used)\n\n",
				formatters.FormatCurrency(o.Summary.TotalBudgeted, currency),
				formatters.FormatCurrency(o.Summary.TotalSpent, currency),
				formatters.FormatCurrency(o.Summary.TotalRemaining, currency),
				formatters.FormatPercentage(o.Summary.OverallPercentage, 1),
			)
			tw := table(w, "Budget", "Category", "Spent", "Amount", "Used", "Status")
			for _, b := range o.ActiveBudgets {
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

func budgetRecommendationsCmd(app *App) *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "recommendations",
		Short: "Suggest budgets from recent spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}

			recs, err := app.API.BudgetRecommendations(ctx, months)
			if err != nil {
				return loadFailed(err, "Failed to load recommendations")
			}

			currency := app.BaseCurrency
			w := cmd.OutOrStdout()
			if len(recs.UnbudgetedCategories) == 0 && len(recs.AdjustmentNeeded) == 0 {
				_, _ = fmt.Fprintln(w, SubtleStyle.Render("No recommendations. Your budgets match your spending."))
				return nil
			}

			if len(recs.UnbudgetedCategories) > 0 {
				title(w, "Categories without a budget")
				tw := table(w, "Category", "Recent spending", "Suggested budget")
				for _, u := range recs.UnbudgetedCategories {
					row(tw, u.Category, formatters.FormatCurrency(u.RecentSpending, currency), formatters.FormatCurrency(u.SuggestedBudget, currency))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			if len(recs.AdjustmentNeeded) > 0 {
				if len(recs.UnbudgetedCategories) > 0 {
					_, _ = fmt.Fprintln(w)
				}
				title(w, "Budgets to raise")
				tw := table(w, "Category", "Overspend", "Recommended budget")
				for _, a := range recs.AdjustmentNeeded {
					row(tw, a.Category, formatters.FormatPercentage(a.OverspendPercentage, 1), formatters.FormatCurrency(a.RecommendedBudget, currency))
				}
				return tw.Flush()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", api.DefaultRecommendationMonths, "months of history to consider")

	return cmd
}
