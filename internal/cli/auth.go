package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/session"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/validation"
)

// authFailed renders a failed auth action as a banner, the way the sign-in
// and profile screens do.
func authFailed(err error, fallback string, fields ...string) error {
	return &bannerError{msg: session.FailureMessage(err, fallback, fields...), err: err}
}

func loginCmd(app *App) *cobra.Command {
	var in validation.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if in.Username, err = app.orPrompt(cmd, in.Username, "Username"); err != nil {
				return err
			}
			if in.Password, err = app.orPrompt(cmd, in.Password, "Password"); err != nil {
				return err
			}
			if errs := in.Validate(); len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}

			user, err := app.Session.Login(cmd.Context(), in.Request())
			if err != nil {
				return authFailed(err, session.LoginFailed)
			}
			success(cmd, "Welcome back, %s!", user.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Username, "username", "u", "", "username (prompted when empty)")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "password (prompted when empty)")

	return cmd
}

func registerCmd(app *App) *cobra.Command {
	var in validation.RegistrationInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if in.Password, err = app.orPrompt(cmd, in.Password, "Password"); err != nil {
				return err
			}
			if in.PasswordConfirm, err = app.orPrompt(cmd, in.PasswordConfirm, "Confirm password"); err != nil {
				return err
			}
			if errs := in.Validate(); len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}

			user, err := app.Session.Register(cmd.Context(), in.Request())
			if err != nil {
				return authFailed(err, session.RegistrationFailed, "email", "username")
			}
			success(cmd, "Welcome to BudgetBox, %s!", user.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "username")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (prompted when empty)")
	cmd.Flags().StringVar(&in.PasswordConfirm, "password-confirm", "", "password confirmation (prompted when empty)")

	return cmd
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			success(cmd, "Signed out")
			return nil
		},
	}
}

func whoamiCmd(app *App) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			user, err := app.Session.CurrentUser(ctx)
			if err != nil {
				return err
			}
			if refresh || user == nil {
				if user, err = app.Session.Refresh(ctx); err != nil {
					return loadFailed(err, "Failed to load profile")
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.DisplayName(), user.Username)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the profile from the API")

	return cmd
}

func profileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your profile",
	}

	cmd.AddCommand(profileShowCmd(app))
	cmd.AddCommand(profileUpdateCmd(app))
	cmd.AddCommand(profilePasswordCmd(app))

	return cmd
}

func profileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			user, err := app.Session.Refresh(ctx)
			if err != nil {
				return loadFailed(err, "Failed to load profile")
			}

			w := cmd.OutOrStdout()
			title(w, "Profile")
			tw := table(w, "Field", "Value")
			row(tw, "Username", user.Username)
			row(tw, "Email", user.Email)
			row(tw, "First name", user.FirstName)
			row(tw, "Last name", user.LastName)
			return tw.Flush()
		},
	}
}

func profileUpdateCmd(app *App) *cobra.Command {
	var firstName, lastName, email string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your name or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			current, err := app.Session.CurrentUser(ctx)
			if err != nil {
				return err
			}

			in := validation.ProfileInputFrom(current)
			flags := cmd.Flags()
			if flags.Changed("first-name") {
				in.FirstName = firstName
			}
			if flags.Changed("last-name") {
				in.LastName = lastName
			}
			if flags.Changed("email") {
				in.Email = email
			}

			errs := in.Validate()
			if len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}
			user, err := app.Session.UpdateProfile(ctx, in.Request())
			if err != nil {
				if apiErr, ok := api.AsError(err); ok && apiErr.Kind == api.KindField {
					return showFieldErrors(cmd, apiErr.MergeInto(errs))
				}
				return authFailed(err, session.ProfileUpdateFailed)
			}
			success(cmd, "Profile updated for %s", user.DisplayName())
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address")

	return cmd
}

func profilePasswordCmd(app *App) *cobra.Command {
	var in validation.PasswordChangeInput

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}

			var err error
			if in.CurrentPassword, err = app.orPrompt(cmd, in.CurrentPassword, "Current password"); err != nil {
				return err
			}
			if in.NewPassword, err = app.orPrompt(cmd, in.NewPassword, "New password"); err != nil {
				return err
			}
			if in.ConfirmPassword, err = app.orPrompt(cmd, in.ConfirmPassword, "Confirm new password"); err != nil {
				return err
			}
			if errs := in.Validate(); len(errs) > 0 {
				return showFieldErrors(cmd, errs)
			}

			req := in.Request()
			msg, err := app.Session.ChangePassword(ctx, req.CurrentPassword, req.NewPassword)
			if err != nil {
				return authFailed(err, session.PasswordChangeFailed)
			}
			if msg == "" {
				msg = "Password changed successfully"
			}
			success(cmd, "%s", msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.CurrentPassword, "current", "", "current password (prompted when empty)")
	cmd.Flags().StringVar(&in.NewPassword, "new", "", "new password (prompted when empty)")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm", "", "new password again (prompted when empty)")

	return cmd
}
