package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/formatters"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/summary"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/validation"
)

func categoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage income and expense categories",
	}

	cmd.AddCommand(listCategoriesCmd(app))
	cmd.AddCommand(createCategoryCmd(app))
	cmd.AddCommand(updateCategoryCmd(app))
	cmd.AddCommand(deleteCategoryCmd(app))
	cmd.AddCommand(reassignCategoryCmd(app))
	cmd.AddCommand(defaultCategoriesCmd(app))
	cmd.AddCommand(categoryUsageCmd(app))

	return cmd
}

// loadCategories returns every category the user has, for duplicate and
// reassignment checks.
func (a *App) loadCategories(cmd *cobra.Command) ([]models.Category, error) {
	page, err := a.API.ListCategories(cmd.Context(), api.CategoryFilter{})
	if err != nil {
		return nil, loadFailed(err, "Failed to load categories")
	}
	return page.Results, nil
}

func findCategory(categories []models.Category, id uuid.UUID) (models.Category, error) {
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, fmt.Errorf("category %s not found", id)
}

func listCategoriesCmd(app *App) *cobra.Command {
	var catType, catStatus string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			all, err := app.loadCategories(cmd)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			stats := summary.StatsFor(all)
			_, _ = fmt.Fprintf(w, "%d categories (%d active): %d income, %d expense, %d transactions\n\n",
				stats.Total, stats.Active, stats.Income, stats.Expense, stats.Transactions)

			categories := summary.FilterCategories(all, catType, catStatus)
			if len(categories) == 0 {
				_, _ = fmt.Fprintln(w, SubtleStyle.Render("No categories match. Use 'budgetbox categories defaults' to add the standard set."))
				return nil
			}

			tw := table(w, "ID", "Name", "Type", "Default", "Transactions", "Status")
			for _, c := range categories {
				row(tw,
					c.ID.String(),
					c.Name,
					titleCase(string(c.Type)),
					yesNo(c.IsDefault),
					strconv.Itoa(c.TransactionCount),
					status(c.IsActive),
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&catType, "type", summary.FilterAll, "category type (all, income, expense)")
	cmd.Flags().StringVar(&catStatus, "status", summary.FilterAll, "status (all, active, inactive)")

	return cmd
}

func createCategoryCmd(app *App) *cobra.Command {
	var name, catType string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			existing, err := app.loadCategories(cmd)
			if err != nil {
				return err
			}

			in := validation.CategoryInput{Name: name, Type: models.CategoryType(strings.ToLower(catType))}
			errs := in.Validate(existing, uuid.Nil)
			if len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}

			category, err := app.API.CreateCategory(cmd.Context(), in.Request())
			if err != nil {
				return submitFailed(cmd, errs, err, "Failed to save category")
			}
			success(cmd, "Created %s category %q (ID: %s)", category.Type, category.Name, category.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&catType, "type", string(models.CategoryTypeExpense), "category type (income, expense)")

	return cmd
}

func updateCategoryCmd(app *App) *cobra.Command {
	var name, catType string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a category or change its type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			id, err := parseID("category", args[0])
			if err != nil {
				return err
			}
			existing, err := app.loadCategories(cmd)
			if err != nil {
				return err
			}
			current, err := findCategory(existing, id)
			if err != nil {
				return err
			}

			in := validation.CategoryInput{Name: current.Name, Type: current.Type}
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if cmd.Flags().Changed("type") {
				in.Type = models.CategoryType(strings.ToLower(catType))
			}
			errs := in.Validate(existing, id)
			if len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}

			category, err := app.API.UpdateCategory(cmd.Context(), id, in.Request())
			if err != nil {
				return submitFailed(cmd, errs, err, "Failed to save category")
			}
			success(cmd, "Updated category %q", category.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new category name")
	cmd.Flags().StringVar(&catType, "type", "", "new category type (income, expense)")

	return cmd
}

func deleteCategoryCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category without transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			id, err := parseID("category", args[0])
			if err != nil {
				return err
			}
			categories, err := app.loadCategories(cmd)
			if err != nil {
				return err
			}
			category, err := findCategory(categories, id)
			if err != nil {
				return err
			}

			switch summary.DeleteActionFor(category) {
			case summary.DeleteRefused:
				return fmt.Errorf("%q is a default category and cannot be deleted", category.Name)
			case summary.DeleteReassign:
				return fmt.Errorf("%q has %d transactions; move them with 'budgetbox categories reassign %s --to <id>' first",
					category.Name, category.TransactionCount, category.ID)
			}
			if err := app.confirm(cmd, yes, fmt.Sprintf("Delete category %q?", category.Name)); err != nil {
				return err
			}

			if err := app.API.DeleteCategory(cmd.Context(), id); err != nil {
				return loadFailed(err, "Failed to delete category")
			}
			success(cmd, "Deleted category %q", category.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func reassignCategoryCmd(app *App) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "reassign <source-id>",
		Short: "Move every transaction in a category to another category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			sourceID, err := parseID("category", args[0])
			if err != nil {
				return err
			}
			targetID, err := parseID("target category", target)
			if err != nil {
				return err
			}
			categories, err := app.loadCategories(cmd)
			if err != nil {
				return err
			}
			source, err := findCategory(categories, sourceID)
			if err != nil {
				return err
			}

			allowed := summary.ReassignTargets(categories, source)
			if _, err := findCategory(allowed, targetID); err != nil {
				names := make([]string, 0, len(allowed))
				for _, c := range allowed {
					names = append(names, c.Name)
				}
				return fmt.Errorf("target must be another active %s category (choices: %s)", source.Type, strings.Join(names, ", "))
			}

			resp, err := app.API.ReassignTransactions(cmd.Context(), sourceID, targetID)
			if err != nil {
				return loadFailed(err, "Failed to reassign transactions")
			}
			if resp.Message == "" {
				resp.Message = fmt.Sprintf("Moved transactions out of %q", source.Name)
			}
			success(cmd, "%s", resp.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "to", "", "target category ID")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func defaultCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Create the standard category set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			resp, err := app.API.SetDefaultCategories(cmd.Context())
			if err != nil {
				return loadFailed(err, "Failed to create default categories")
			}
			if resp.Message == "" {
				resp.Message = "Default categories created"
			}
			success(cmd, "%s", resp.Message)
			return nil
		},
	}
}

func categoryUsageCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "usage <id>",
		Short: "Show recent spending in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			id, err := parseID("category", args[0])
			if err != nil {
				return err
			}

			usage, err := app.API.CategoryUsage(cmd.Context(), id, days)
			if err != nil {
				return loadFailed(err, "Failed to load category usage")
			}

			w := cmd.OutOrStdout()
			title(w, fmt.Sprintf("%s: last %d days", usage.Category.Name, usage.PeriodDays))
			tw := table(w, "Transactions", "Total", "Average")
			row(tw,
				strconv.Itoa(usage.TransactionCount),
				formatters.FormatCurrency(usage.TotalAmount, app.BaseCurrency),
				formatters.FormatCurrency(usage.AverageAmount, app.BaseCurrency),
			)
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&days, "days", api.DefaultUsageDays, "number of days to include")

	return cmd
}
