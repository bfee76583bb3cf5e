// Package cli is the budgetbox command line.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/exchange"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/formatters"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/logger"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/session"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/validation"
)

var (
	errNotLoggedIn  = errors.New("not logged in: run 'budgetbox login' first")
	errInvalidInput = errors.New("please correct the fields above")
	errAborted      = errors.New("aborted")
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// String formats the build for the version command.
func (b BuildInfo) String() string {
	return fmt.Sprintf("budgetbox %s (commit: %s, built: %s)", b.Version, b.Commit, b.Date)
}

// App holds what the commands share.
type App struct {
	API     *api.Client
	Session *session.Session
	// Rates converts account balances into BaseCurrency; nil sums balances
	// as they are.
	Rates        exchange.Service
	BaseCurrency models.Currency
	Build        BuildInfo
	// Now is the clock; nil means time.Now.
	Now func() time.Time

	in *bufio.Reader
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// requireLogin fails unless a session token is stored.
func (a *App) requireLogin(ctx context.Context) error {
	ok, err := a.Session.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return errNotLoggedIn
	}
	return nil
}

// NewRootCmd builds the budgetbox command tree.
func NewRootCmd(app *App) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "budgetbox",
		Short:         "Personal finance client for the BudgetBox API",
		Long:          `Manage BudgetBox accounts, categories, budgets and transactions from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Flags().Changed("log-level") {
				logger.SetLevel(logLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(loginCmd(app))
	root.AddCommand(registerCmd(app))
	root.AddCommand(logoutCmd(app))
	root.AddCommand(whoamiCmd(app))
	root.AddCommand(profileCmd(app))
	root.AddCommand(dashboardCmd(app))
	root.AddCommand(accountsCmd(app))
	root.AddCommand(categoriesCmd(app))
	root.AddCommand(budgetsCmd(app))
	root.AddCommand(transactionsCmd(app))
	root.AddCommand(maskCmd())
	root.AddCommand(versionCmd(app))

	return root
}

// prompt reads one line from the command's input, printing label first.
func (a *App) prompt(cmd *cobra.Command, label string) (string, error) {
	if a.in == nil {
		a.in = bufio.NewReader(cmd.InOrStdin())
	}
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), label+": ")
	line, err := a.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// orPrompt returns value, prompting for it when empty.
func (a *App) orPrompt(cmd *cobra.Command, value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return a.prompt(cmd, label)
}

// confirm asks a yes/no question unless skip is set.
func (a *App) confirm(cmd *cobra.Command, skip bool, question string) error {
	if skip {
		return nil
	}
	answer, err := a.prompt(cmd, question+" [y/N]")
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	}
	return errAborted
}

// bannerError is a failure shown as a single line. It keeps the cause for
// errors.Is and errors.As.
type bannerError struct {
	msg string
	err error
}

func (e *bannerError) Error() string { return e.msg }
func (e *bannerError) Unwrap() error { return e.err }

// showFieldErrors prints one line per field and returns errInvalidInput.
func showFieldErrors(cmd *cobra.Command, errs validation.FieldErrors) error {
	w := cmd.ErrOrStderr()
	for _, field := range errs.Fields() {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", ErrorStyle.Render("✗"), field, errs[field])
	}
	return errInvalidInput
}

// submitFailed reports a failed API submit. Remote field errors merge into
// the local ones and print per field; anything else becomes a banner.
func submitFailed(cmd *cobra.Command, local validation.FieldErrors, err error, fallback string) error {
	if apiErr, ok := api.AsError(err); ok && apiErr.Kind == api.KindField {
		if local == nil {
			local = validation.FieldErrors{}
		}
		return showFieldErrors(cmd, apiErr.MergeInto(local))
	}
	return loadFailed(err, fallback)
}

// loadFailed turns a failed API call into a banner error.
func loadFailed(err error, fallback string) error {
	return &bannerError{msg: api.BannerMessage(err, fallback), err: err}
}

func success(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func warn(cmd *cobra.Command, msg string) {
	if msg == "" {
		return
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render(msg))
}

func title(w io.Writer, text string) {
	_, _ = fmt.Fprintln(w, TitleStyle.Render(text))
}

// table starts a tab-aligned table with a styled header row.
func table(w io.Writer, columns ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	styled := make([]string, len(columns))
	for i, c := range columns {
		styled[i] = HeaderStyle.Render(c)
	}
	_, _ = fmt.Fprintln(tw, strings.Join(styled, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cells ...string) {
	_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

func parseID(kind, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID %q: %w", kind, s, err)
	}
	return id, nil
}

// parseDate accepts YYYY-MM-DD or DD/MM/YYYY. Empty input gives the zero Date.
func parseDate(flag, s string) (models.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Date{}, nil
	}
	if d, err := models.ParseDate(s); err == nil {
		return d, nil
	}
	d, err := formatters.ParseDisplayDate(s)
	if err != nil {
		return models.Date{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD or DD/MM/YYYY", flag, s)
	}
	return d, nil
}

func status(active bool) string {
	if active {
		return "Active"
	}
	return SubtleStyle.Render("Inactive")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
