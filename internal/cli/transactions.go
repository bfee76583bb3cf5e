package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/export"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/formatters"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/forms"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/logger"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/summary"
)

// DefaultTransactionDays is how far back the transaction list looks when no
// start date is given.
const DefaultTransactionDays = 30

var errSuperseded = errors.New("transaction load superseded by a newer request")

func transactionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Browse and record transactions",
	}

	browser := &transactionBrowser{app: app}
	cmd.AddCommand(listTransactionsCmd(app, browser))
	cmd.AddCommand(createTransactionCmd(app))
	cmd.AddCommand(updateTransactionCmd(app))
	cmd.AddCommand(deleteTransactionCmd(app))
	cmd.AddCommand(duplicateTransactionCmd(app))
	cmd.AddCommand(categorizeTransactionsCmd(app))
	cmd.AddCommand(transactionStatsCmd(app))
	cmd.AddCommand(exportTransactionsCmd(app, browser))
	cmd.AddCommand(chartTransactionsCmd(app, browser))

	return cmd
}

// transactionBrowser loads transaction pages. Every load takes a new
// generation token; a load that finishes after a newer one started returns
// errSuperseded instead of its data.
type transactionBrowser struct {
	app *App
	gen forms.Generation
}

func (b *transactionBrowser) load(ctx context.Context, filter api.TransactionFilter) (api.TransactionsPage, error) {
	token := b.gen.Next()
	page, err := b.app.API.TransactionsPage(ctx, filter)
	if !b.gen.IsCurrent(token) {
		return api.TransactionsPage{}, errSuperseded
	}
	return page, err
}

// loadAll follows the pages from filter.Page onwards and returns every
// transaction. Statistics cover the filter's date range. Paging stops at an
// empty page or once the reported total has been collected, even if the API
// still advertises a next page.
func (b *transactionBrowser) loadAll(ctx context.Context, filter api.TransactionFilter) (api.TransactionsPage, error) {
	first, err := b.load(ctx, filter)
	if err != nil {
		return api.TransactionsPage{}, err
	}
	token := b.gen.Next()
	all := first
	page := first.Transactions
	total := first.Transactions.Count
	for page.HasNext() && len(page.Results) > 0 && len(all.Transactions.Results) < total {
		if filter.Page <= 0 {
			filter.Page = 1
		}
		filter.Page++
		page, err = b.app.API.ListTransactions(ctx, filter)
		if err != nil {
			return api.TransactionsPage{}, err
		}
		if !b.gen.IsCurrent(token) {
			return api.TransactionsPage{}, errSuperseded
		}
		all.Transactions.Results = append(all.Transactions.Results, page.Results...)
	}
	all.Transactions.Next = ""
	return all, nil
}

// transactionFilterFlags are the list filters shared by list, export and
// chart.
type transactionFilterFlags struct {
	account, category, txType, from, to, minAmount, search string
	recurring                                            bool
	page, pageSize                                       int
	all                                                  bool
}

func (f *transactionFilterFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.account, "account", "", "account ID")
	flags.StringVar(&f.category, "category", "", "category ID")
	flags.StringVar(&f.txType, "type", "", "transaction type (income, expense, transfer)")
	flags.StringVar(&f.from, "from", "", fmt.Sprintf("first date (defaults to %d days ago)", DefaultTransactionDays))
	flags.StringVar(&f.to, "to", "", "last date")
	flags.StringVar(&f.minAmount, "min-amount", "", "smallest amount to include")
	flags.StringVar(&f.search, "search", "", "text to search descriptions for")
	flags.BoolVar(&f.recurring, "recurring", false, "only recurring (true) or one-off (false) transactions")
	flags.IntVar(&f.page, "page", 1, "page number")
	flags.IntVar(&f.pageSize, "page-size", api.DefaultPageSize, "transactions per page")
	flags.BoolVar(&f.all, "all", false, "follow every page")
}

func (f *transactionFilterFlags) filter(cmd *cobra.Command, now time.Time) (api.TransactionFilter, error) {
	filter := api.TransactionFilter{
		Type:     models.TransactionType(strings.ToLower(strings.TrimSpace(f.txType))),
		Search:   strings.TrimSpace(f.search),
		Page:     f.page,
		PageSize: f.pageSize,
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return filter, fmt.Errorf("invalid --type %q (want income, expense or transfer)", f.txType)
	}

	if f.account != "" {
		id, err := parseID("account", f.account)
		if err != nil {
			return filter, err
		}
		filter.AccountID = &id
	}
	if f.category != "" {
		id, err := parseID("category", f.category)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &id
	}

	var err error
	if cmd.Flags().Changed("from") {
		filter.DateFrom, err = parseDate("from", f.from)
	} else {
		filter.DateFrom = formatters.DaysAgo(now, DefaultTransactionDays)
	}
	if err != nil {
		return filter, err
	}
	if filter.DateTo, err = parseDate("to", f.to); err != nil {
		return filter, err
	}

	if f.minAmount != "" {
		v, err := decimal.NewFromString(strings.TrimSpace(f.minAmount))
		if err != nil {
			return filter, fmt.Errorf("invalid --min-amount %q: %w", f.minAmount, err)
		}
		filter.MinAmount = &v
	}
	if cmd.Flags().Changed("recurring") {
		recurring := f.recurring
		filter.IsRecurring = &recurring
	}
	return filter, nil
}

func (f *transactionFilterFlags) fetch(cmd *cobra.Command, app *App, b *transactionBrowser) (api.TransactionsPage, error) {
	filter, err := f.filter(cmd, app.now())
	if err != nil {
		return api.TransactionsPage{}, err
	}
	var page api.TransactionsPage
	if f.all {
		page, err = b.loadAll(cmd.Context(), filter)
	} else {
		page, err = b.load(cmd.Context(), filter)
	}
	if err != nil {
		if errors.Is(err, errSuperseded) {
			return api.TransactionsPage{}, err
		}
		return api.TransactionsPage{}, loadFailed(err, "Failed to load transactions")
	}
	return page, nil
}

func listTransactionsCmd(app *App, browser *transactionBrowser) *cobra.Command {
	var f transactionFilterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			page, err := f.fetch(cmd, app, browser)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			txs := page.Transactions.Results
			if len(txs) == 0 {
				_, _ = fmt.Fprintln(w, SubtleStyle.Render("No transactions match these filters."))
				return nil
			}
			accounts, err := app.API.ListAccounts(cmd.Context(), api.AccountFilter{})
			if err != nil {
				return loadFailed(err, "Failed to load accounts")
			}

			currency := app.BaseCurrency
			tw := table(w, "ID", "Date", "Description", "Category", "Account", "Type", "Amount")
			for _, tx := range txs {
				row(tw,
					tx.ID.String(),
					formatters.FormatDate(tx.Date),
					tx.Description,
					tx.CategoryName,
					tx.AccountName,
					titleCase(string(tx.Type)),
					formatters.FormatSignedAmount(tx.Amount, accountCurrency(accounts.Results, tx.AccountID, currency)),
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			stats := page.Statistics.Summary
			_, _ = fmt.Fprintf(w, "\nShowing %d of %d transactions. Totals in %s: Income %s  Expenses %s  Net %s\n",
				len(txs), page.Transactions.Count, currency,
				formatters.FormatCurrency(stats.TotalIncome, currency),
				formatters.FormatCurrency(stats.TotalExpenses, currency),
				formatters.FormatSignedAmount(stats.NetSavings, currency),
			)
			if page.Transactions.HasNext() {
				_, _ = fmt.Fprintln(w, SubtleStyle.Render(fmt.Sprintf("More results: --page %d", max(f.page, 1)+1)))
			}
			return nil
		},
	}

	f.bind(cmd)

	return cmd
}

// accountCurrency returns the currency of the account with id, or fallback
// when the account is unknown.
func accountCurrency(accounts []models.Account, id uuid.UUID, fallback models.Currency) models.Currency {
	for _, a := range accounts {
		if a.ID == id && a.Currency != "" {
			return a.Currency
		}
	}
	return fallback
}

// transactionFlags are the transaction form fields settable from flags.
type transactionFlags struct {
	account, category, txType, description, amount, date, note, reference string
	recurring                                                             bool
}

func (f *transactionFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.account, "account", "", "account ID")
	flags.StringVar(&f.category, "category", "", "category ID")
	flags.StringVar(&f.txType, "type", string(models.TransactionTypeExpense), "transaction type (income, expense, transfer)")
	flags.StringVar(&f.description, "description", "", "description")
	flags.StringVar(&f.amount, "amount", "", "amount, without a sign")
	flags.StringVar(&f.date, "date", "", "transaction date (defaults to today)")
	flags.StringVar(&f.note, "note", "", "optional note")
	flags.StringVar(&f.reference, "reference", "", "optional reference number")
	flags.BoolVar(&f.recurring, "recurring", false, "mark as recurring")
}

// apply sets the type before the category so the category is checked
// against the right type.
func (f *transactionFlags) apply(cmd *cobra.Command, form *forms.TransactionForm) error {
	flags := cmd.Flags()
	if flags.Changed("type") {
		if err := form.SetType(models.TransactionType(strings.ToLower(f.txType))); err != nil {
			return err
		}
	}
	if flags.Changed("account") {
		id, err := parseID("account", f.account)
		if err != nil {
			return err
		}
		form.Input.AccountID = id
	}
	if flags.Changed("category") {
		id, err := parseID("category", f.category)
		if err != nil {
			return err
		}
		if err := form.SelectCategory(id); err != nil {
			return err
		}
	}
	if flags.Changed("description") {
		form.Input.Description = f.description
	}
	if flags.Changed("amount") {
		form.Input.Amount = strings.TrimSpace(f.amount)
	}
	if flags.Changed("date") {
		d, err := parseDate("date", f.date)
		if err != nil {
			return err
		}
		form.Input.Date = d
	}
	if flags.Changed("note") {
		form.Input.Note = f.note
	}
	if flags.Changed("reference") {
		form.Input.ReferenceNumber = f.reference
	}
	if flags.Changed("recurring") {
		form.Input.IsRecurring = f.recurring
	}
	return nil
}

// submitTransaction validates form and hands the payload to send.
func submitTransaction(cmd *cobra.Command, app *App, form *forms.TransactionForm, accounts []models.Account,
	send func(models.TransactionRequest) (models.Transaction, error),
) (models.Transaction, error) {
	now := app.now()
	warn(cmd, form.Advisory(accounts))
	errs := form.Validate(now, accounts)
	if len(errs) > 0 {
		return models.Transaction{}, showFieldErrors(cmd, errs)
	}
	req, err := form.Input.Request()
	if err != nil {
		return models.Transaction{}, err
	}
	tx, err := send(req)
	if err != nil {
		return models.Transaction{}, submitFailed(cmd, errs, err, "Failed to save transaction")
	}
	logger.Log.Debug().
		Str("type", string(tx.Type)).
		Str("description", logger.SanitizeDescription(tx.Description)).
		Msg("Transaction saved")
	return tx, nil
}

func createTransactionCmd(app *App) *cobra.Command {
	var f transactionFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			active := true
			opts, err := app.API.FilterOptions(ctx, api.AccountFilter{IsActive: &active}, api.CategoryFilter{})
			if err != nil {
				return loadFailed(err, "Failed to load accounts and categories")
			}

			form := forms.NewTransactionForm(app.now(), opts.Categories)
			if err := f.apply(cmd, form); err != nil {
				return err
			}
			tx, err := submitTransaction(cmd, app, form, opts.Accounts, func(req models.TransactionRequest) (models.Transaction, error) {
				return app.API.CreateTransaction(ctx, req)
			})
			if err != nil {
				return err
			}
			success(cmd, "Recorded %s %q of %s (ID: %s)", tx.Type, tx.Description,
				formatters.FormatSignedAmount(tx.Amount, accountCurrency(opts.Accounts, tx.AccountID, app.BaseCurrency)), tx.ID)
			return nil
		},
	}

	f.bind(cmd)

	return cmd
}

func updateTransactionCmd(app *App) *cobra.Command {
	var f transactionFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("transaction", args[0])
			if err != nil {
				return err
			}

			current, err := app.API.GetTransaction(ctx, id)
			if err != nil {
				return loadFailed(err, "Failed to load transaction")
			}
			opts, err := app.API.FilterOptions(ctx, api.AccountFilter{}, api.CategoryFilter{})
			if err != nil {
				return loadFailed(err, "Failed to load accounts and categories")
			}

			form := forms.EditTransactionForm(current, opts.Categories)
			if err := f.apply(cmd, form); err != nil {
				return err
			}
			tx, err := submitTransaction(cmd, app, form, opts.Accounts, func(req models.TransactionRequest) (models.Transaction, error) {
				return app.API.UpdateTransaction(ctx, id, req)
			})
			if err != nil {
				return err
			}
			success(cmd, "Updated transaction %q", tx.Description)
			return nil
		},
	}

	f.bind(cmd)

	return cmd
}

func deleteTransactionCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("transaction", args[0])
			if err != nil {
				return err
			}
			if err := app.confirm(cmd, yes, fmt.Sprintf("Delete transaction %s?", id)); err != nil {
				return err
			}
			if err := app.API.DeleteTransaction(ctx, id); err != nil {
				return loadFailed(err, "Failed to delete transaction")
			}
			success(cmd, "Deleted transaction %s", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func duplicateTransactionCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a transaction to another date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("transaction", args[0])
			if err != nil {
				return err
			}
			on, err := parseDate("date", date)
			if err != nil {
				return err
			}
			if on.IsZero() {
				on = models.DateOf(app.now())
			}

			tx, err := app.API.DuplicateTransaction(ctx, id, on)
			if err != nil {
				return loadFailed(err, "Failed to duplicate transaction")
			}
			success(cmd, "Duplicated %q on %s (ID: %s)", tx.Description, formatters.FormatDate(tx.Date), tx.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date of the copy (defaults to today)")

	return cmd
}

func categorizeTransactionsCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "categorize <transaction-id>...",
		Short: "Move several transactions into one category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			categoryID, err := parseID("category", category)
			if err != nil {
				return err
			}

			ids := make([]uuid.UUID, 0, len(args))
			for _, arg := range args {
				id, err := parseID("transaction", arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			selection := forms.NewSelection()
			selection.SelectAll(ids)

			result, err := app.API.BulkCategorize(ctx, selection.IDs(), categoryID)
			if err != nil {
				return loadFailed(err, "Failed to categorize transactions")
			}
			if result.Message == "" {
				result.Message = fmt.Sprintf("Updated %d transactions", result.UpdatedCount)
			}
			success(cmd, "%s", result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category ID to assign")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func transactionStatsCmd(app *App) *cobra.Command {
	var from, to, month string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show income and expense totals",
		Long: `Show income and expense totals for a date range, or for one calendar
month with --month YYYY-MM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}

			var (
				stats   models.StatisticsSummary
				heading string
			)
			if month != "" {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month %q: want YYYY-MM", month)
				}
				ms, err := app.API.MonthlySummary(ctx, t.Year(), int(t.Month()))
				if err != nil {
					return loadFailed(err, "Failed to load monthly summary")
				}
				stats = ms.Summary
				heading = t.Format("January 2006")
			} else {
				now := app.now()
				r := api.DateRange{From: formatters.MonthStart(now), To: formatters.MonthEnd(now)}
				var err error
				if cmd.Flags().Changed("from") {
					if r.From, err = parseDate("from", from); err != nil {
						return err
					}
				}
				if cmd.Flags().Changed("to") {
					if r.To, err = parseDate("to", to); err != nil {
						return err
					}
				}
				s, err := app.API.TransactionStatistics(ctx, r)
				if err != nil {
					return loadFailed(err, "Failed to load statistics")
				}
				stats = s.Summary
				heading = rangeHeading(r)
			}

			currency := app.BaseCurrency
			w := cmd.OutOrStdout()
			title(w, heading)
			tw := table(w, "Metric", "Value ("+string(currency)+")")
			row(tw, "Income", formatters.FormatCurrency(stats.TotalIncome, currency))
			row(tw, "Expenses", formatters.FormatCurrency(stats.TotalExpenses, currency))
			row(tw, "Net savings", formatters.FormatSignedAmount(stats.NetSavings, currency))
			row(tw, "Transactions", strconv.Itoa(stats.TransactionCount))
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date (defaults to the start of this month)")
	cmd.Flags().StringVar(&to, "to", "", "last date (defaults to the end of this month)")
	cmd.Flags().StringVar(&month, "month", "", "calendar month, YYYY-MM")

	return cmd
}

func rangeHeading(r api.DateRange) string {
	switch {
	case r.From.IsZero() && r.To.IsZero():
		return "All time"
	case r.To.IsZero():
		return "Since " + formatters.FormatDate(r.From)
	case r.From.IsZero():
		return "Until " + formatters.FormatDate(r.To)
	}
	return formatters.FormatDate(r.From) + " to " + formatters.FormatDate(r.To)
}

// writeOutput writes data to path, or to the command's output for "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	success(cmd, "Wrote %s", path)
	return nil
}

func exportTransactionsCmd(app *App, browser *transactionBrowser) *cobra.Command {
	var (
		f      transactionFilterFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the listed transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			page, err := f.fetch(cmd, app, browser)
			if err != nil {
				return err
			}
			if output == "" {
				output = export.CSVFilename(app.now())
			}
			return writeOutput(cmd, output, export.TransactionsCSV(page.Transactions.Results))
		},
	}

	f.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, or - for stdout (defaults to transactions_YYYY-MM-DD.csv)")

	return cmd
}

func chartTransactionsCmd(app *App, browser *transactionBrowser) *cobra.Command {
	var (
		f      transactionFilterFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render spending per category as a PNG pie chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			page, err := f.fetch(cmd, app, browser)
			if err != nil {
				return err
			}

			txs := page.Transactions.Results
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Spending by category in %s\n", app.BaseCurrency)
			for _, t := range summary.ExpensesByCategory(txs) {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%-20s %s\n", t.Category, formatters.FormatCurrency(t.Amount, app.BaseCurrency))
			}
			png, err := export.SpendingChart(txs, "Spending by Category")
			if err != nil {
				return err
			}
			if output == "" {
				output = export.ChartFilename(app.now())
			}
			return writeOutput(cmd, output, png)
		},
	}

	f.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, or - for stdout (defaults to spending_YYYY-MM-DD.png)")

	return cmd
}
