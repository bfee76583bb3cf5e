package api

import (
	"context"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// Login exchanges credentials for a token. The token is not installed on
// the client; session.Session does that.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.post(ctx, "auth.login", "/auth/login/", creds, &resp)
	return resp, err
}

// Register creates a user and returns its token.
func (c *Client) Register(ctx context.Context, reg models.Registration) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.post(ctx, "auth.register", "/auth/register/", reg, &resp)
	return resp, err
}

// Logout invalidates the current token on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "auth.logout", "/auth/logout/", nil, nil)
}

// Profile returns the authenticated user.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.get(ctx, "auth.profile", "/auth/profile/", nil, &user)
	return user, err
}

// UpdateProfile patches the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.patch(ctx, "auth.update_profile", "/auth/profile/update/", update, &resp)
	return resp, err
}

// ChangePassword changes the password. The response may carry a new token.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.post(ctx, "auth.change_password", "/auth/change-password/",
		models.PasswordChange{CurrentPassword: currentPassword, NewPassword: newPassword}, &resp)
	return resp, err
}
