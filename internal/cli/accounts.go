package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/formatters"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/summary"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/validation"
)

func accountsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage bank accounts",
	}

	cmd.AddCommand(listAccountsCmd(app))
	cmd.AddCommand(createAccountCmd(app))
	cmd.AddCommand(updateAccountCmd(app))
	cmd.AddCommand(deleteAccountCmd(app))
	cmd.AddCommand(deactivateAccountCmd(app))
	cmd.AddCommand(accountStatementCmd(app))
	cmd.AddCommand(transferCmd(app))

	return cmd
}

func listAccountsCmd(app *App) *cobra.Command {
	var accType, accStatus string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with totals per type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}

			page, err := app.API.ListAccounts(ctx, api.AccountFilter{})
			if err != nil {
				return loadFailed(err, "Failed to load accounts")
			}
			accounts := summary.FilterAccounts(page.Results, accType, accStatus)

			w := cmd.OutOrStdout()
			if len(accounts) == 0 {
				_, _ = fmt.Fprintln(w, SubtleStyle.Render("No accounts found. Use 'budgetbox accounts create' to add one."))
				return nil
			}

			tw := table(w, "ID", "Name", "Bank", "Type", "Number", "Balance", "Status")
			for _, a := range accounts {
				row(tw,
					a.ID.String(),
					a.Name,
					a.BankName,
					formatters.FormatAccountType(a.Type),
					a.MaskedNumber,
					formatters.FormatCurrency(a.CurrentBalance, a.Currency),
					status(a.IsActive),
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			totals, err := summary.TotalAccounts(ctx, accounts, app.BaseCurrency, app.Rates)
			if err != nil {
				return fmt.Errorf("failed to total accounts: %w", err)
			}
			_, _ = fmt.Fprintln(w)
			tw = table(w, "Type", "Accounts", "Balance")
			for _, t := range totals.ByType {
				row(tw, formatters.FormatAccountType(t.Type), strconv.Itoa(t.Count), formatters.FormatCurrency(t.Balance, totals.Currency))
			}
			row(tw, "Total", strconv.Itoa(len(accounts)), formatters.FormatCurrency(totals.Total, totals.Currency))
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&accType, "type", summary.FilterAll, "account type (all, current, savings, isa, credit)")
	cmd.Flags().StringVar(&accStatus, "status", summary.FilterAll, "status (all, active, inactive)")

	return cmd
}

// accountFlags are the account form fields settable from flags.
type accountFlags struct {
	name, bank, accType, currency, number, balance string
}

func (f *accountFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "account name")
	cmd.Flags().StringVar(&f.bank, "bank", "", "bank name")
	cmd.Flags().StringVar(&f.accType, "type", string(models.AccountTypeCurrent), "account type (current, savings, isa, credit)")
	cmd.Flags().StringVar(&f.currency, "currency", string(models.DefaultCurrency), "currency (GBP, USD, EUR)")
	cmd.Flags().StringVar(&f.number, "number", "", "account number as typed; only the last 4 digits are kept")
	cmd.Flags().StringVar(&f.balance, "balance", "", "current balance")
}

// apply overlays the flags the user set onto in.
func (f *accountFlags) apply(cmd *cobra.Command, in *validation.AccountInput) {
	flags := cmd.Flags()
	if flags.Changed("name") {
		in.Name = f.name
	}
	if flags.Changed("bank") {
		in.BankName = f.bank
	}
	if flags.Changed("type") {
		in.Type = models.AccountType(strings.ToLower(f.accType))
	}
	if flags.Changed("currency") {
		in.Currency = models.Currency(strings.ToUpper(f.currency))
	}
	if flags.Changed("number") {
		in.MaskedNumber = maskNumber(f.number)
	}
	if flags.Changed("balance") {
		in.Balance = validation.CleanBalanceInput(f.balance)
	}
}

func createAccountCmd(app *App) *cobra.Command {
	var f accountFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a bank account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}

			in := validation.NewAccountInput()
			f.apply(cmd, &in)
			errs := in.Validate()
			if len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}
			req, err := in.Request()
			if err != nil {
				return err
			}

			account, err := app.API.CreateAccount(ctx, req)
			if err != nil {
				return submitFailed(cmd, errs, err, "Failed to save account")
			}
			success(cmd, "Created account %q (ID: %s)", account.Name, account.ID)
			return nil
		},
	}

	f.bind(cmd)

	return cmd
}

func updateAccountCmd(app *App) *cobra.Command {
	var f accountFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a bank account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("account", args[0])
			if err != nil {
				return err
			}

			account, err := app.API.GetAccount(ctx, id)
			if err != nil {
				return loadFailed(err, "Failed to load account")
			}
			if !summary.CanEdit(account) {
				return fmt.Errorf("account %q is inactive and cannot be edited", account.Name)
			}

			in := validation.AccountInputFrom(account)
			f.apply(cmd, &in)
			errs := in.Validate()
			if len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}
			req, err := in.Request()
			if err != nil {
				return err
			}

			updated, err := app.API.UpdateAccount(ctx, id, req)
			if err != nil {
				return submitFailed(cmd, errs, err, "Failed to save account")
			}
			success(cmd, "Updated account %q", updated.Name)
			return nil
		},
	}

	f.bind(cmd)

	return cmd
}

func deleteAccountCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account without transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("account", args[0])
			if err != nil {
				return err
			}

			account, err := app.API.GetAccount(ctx, id)
			if err != nil {
				return loadFailed(err, "Failed to load account")
			}
			if !summary.CanDelete(account) {
				return fmt.Errorf("account %q has %d transactions; deactivate it instead", account.Name, account.TransactionCount)
			}
			if err := app.confirm(cmd, yes, fmt.Sprintf("Delete account %q?", account.Name)); err != nil {
				return err
			}

			if err := app.API.DeleteAccount(ctx, id); err != nil {
				return loadFailed(err, "Failed to delete account")
			}
			success(cmd, "Deleted account %q", account.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func deactivateAccountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate an active account with a zero balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("account", args[0])
			if err != nil {
				return err
			}

			account, err := app.API.GetAccount(ctx, id)
			if err != nil {
				return loadFailed(err, "Failed to load account")
			}
			if !summary.CanDeactivate(account) {
				return fmt.Errorf("account %q must be active with a zero balance to deactivate", account.Name)
			}

			resp, err := app.API.DeactivateAccount(ctx, id)
			if err != nil {
				return loadFailed(err, "Failed to deactivate account")
			}
			if resp.Message == "" {
				resp.Message = fmt.Sprintf("Deactivated account %q", account.Name)
			}
			success(cmd, "%s", resp.Message)
			return nil
		},
	}
}

func accountStatementCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "statement <id>",
		Short: "Show recent activity on an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			id, err := parseID("account", args[0])
			if err != nil {
				return err
			}

			st, err := app.API.AccountStatement(ctx, id, days)
			if err != nil {
				return loadFailed(err, "Failed to load statement")
			}

			currency := st.Account.Currency
			w := cmd.OutOrStdout()
			title(w, fmt.Sprintf("%s: last %d days", st.Account.Name, st.PeriodDays))
			tw := table(w, "Date", "Description", "Category", "Type", "Amount")
			for _, tx := range st.Transactions {
				row(tw,
					formatters.FormatDate(tx.Date),
					tx.Description,
					tx.CategoryName,
					titleCase(string(tx.Type)),
					formatters.FormatSignedAmount(tx.Amount, currency),
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(w, "\nOpening %s  Income %s  Expenses %s  Closing %s  (%d transactions)\n",
				formatters.FormatCurrency(st.OpeningBalance, currency),
				formatters.FormatCurrency(st.TotalIncome, currency),
				formatters.FormatCurrency(st.TotalExpenses, currency),
				formatters.FormatCurrency(st.ClosingBalance, currency),
				st.TransactionCount,
			)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", api.DefaultStatementDays, "number of days to include")

	return cmd
}

var errSameAccount = errors.New("source and target accounts must differ")

func transferCmd(app *App) *cobra.Command {
	var target, amount, description string

	cmd := &cobra.Command{
		Use:   "transfer <source-id>",
		Short: "Move money between two of your accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			sourceID, err := parseID("account", args[0])
			if err != nil {
				return err
			}
			targetID, err := parseID("target account", target)
			if err != nil {
				return err
			}
			if sourceID == targetID {
				return errSameAccount
			}

			errs := validation.FieldErrors{}
			value, err := decimal.NewFromString(strings.TrimSpace(amount))
			switch {
			case err != nil:
				errs.Add("amount", "Must be a valid number")
			case !value.IsPositive():
				errs.Add("amount", "Amount must be positive")
			case value.GreaterThan(validation.MaxAmount):
				errs.Add("amount", "Amount exceeds maximum allowed value")
			}
			if len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}

			resp, err := app.API.Transfer(ctx, sourceID, models.TransferRequest{
				TargetAccountID: targetID,
				Amount:          value,
				Description:     strings.TrimSpace(description),
			})
			if err != nil {
				return submitFailed(cmd, errs, err, "Transfer failed")
			}
			if resp.Message == "" {
				resp.Message = "Transfer completed"
			}
			success(cmd, "%s", resp.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "to", "", "target account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to move")
	cmd.Flags().StringVar(&description, "description", "", "transfer description")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
