package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// LoginInput is the sign-in form.
type LoginInput struct {
	Username string
	Password string
}

func (in LoginInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Username) == "" {
		errs.Add("username", "Username is required")
	}
	if in.Password == "" {
		errs.Add("password", "Password is required")
	}
	return errs
}

func (in LoginInput) Request() models.Credentials {
	return models.Credentials{Username: strings.TrimSpace(in.Username), Password: in.Password}
}

// RegistrationInput is the sign-up form.
type RegistrationInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       string
	LastName        string
}

func (in RegistrationInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Username) == "" {
		errs.Add("username", "Username is required")
	}
	validateEmail(errs, in.Email)
	validateNewPassword(errs, "password", "Password is required", in.Password)
	validateConfirm(errs, "password_confirm", in.Password, in.PasswordConfirm)
	return errs
}

func (in RegistrationInput) Request() models.Registration {
	return models.Registration{
		Username:        strings.TrimSpace(in.Username),
		Email:           strings.TrimSpace(in.Email),
		Password:        in.Password,
		PasswordConfirm: in.PasswordConfirm,
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
	}
}

// ProfileInput is the profile edit form.
type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
}

// ProfileInputFrom prefills the form from u.
func ProfileInputFrom(u *models.User) ProfileInput {
	if u == nil {
		return ProfileInput{}
	}
	return ProfileInput{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

func (in ProfileInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.FirstName) == "" {
		errs.Add("first_name", "First name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		errs.Add("last_name", "Last name is required")
	}
	validateEmail(errs, in.Email)
	return errs
}

func (in ProfileInput) Request() models.ProfileUpdate {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	email := strings.TrimSpace(in.Email)
	return models.ProfileUpdate{FirstName: &first, LastName: &last, Email: &email}
}

// PasswordChangeInput is the change-password form.
type PasswordChangeInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func (in PasswordChangeInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if in.CurrentPassword == "" {
		errs.Add("current_password", "Current password is required")
	}
	validateNewPassword(errs, "new_password", "New password is required", in.NewPassword)
	validateConfirm(errs, "confirm_password", in.NewPassword, in.ConfirmPassword)
	return errs
}

func (in PasswordChangeInput) Request() models.PasswordChange {
	return models.PasswordChange{CurrentPassword: in.CurrentPassword, NewPassword: in.NewPassword}
}

func validateEmail(errs FieldErrors, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		errs.Add("email", "Email is required")
	case !ValidEmail(email):
		errs.Add("email", "Please enter a valid email address")
	}
}

func validateNewPassword(errs FieldErrors, field, requiredMsg, password string) {
	switch {
	case password == "":
		errs.Add(field, requiredMsg)
	case utf8.RuneCountInString(password) < models.MinPasswordLength:
		errs.Add(field, "Password must be at least 8 characters")
	}
}

func validateConfirm(errs FieldErrors, field, password, confirm string) {
	switch {
	case confirm == "":
		errs.Add(field, "Please confirm your new password")
	case password != confirm:
		errs.Add(field, "Passwords do not match")
	}
}
