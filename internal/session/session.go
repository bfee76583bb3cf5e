// Package session holds the signed-in user and auth token, persisted in a
// Store between runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/logger"
	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/models"
)

// Fallback messages for failed auth actions.
const (
	LoginFailed          = "Login failed"
	RegistrationFailed   = "Registration failed"
	ProfileUpdateFailed  = "Profile update failed"
	PasswordChangeFailed = "Password change failed"
)

var errNoToken = errors.New("response did not include a token")

// Client is the part of api.Client the session drives.
type Client interface {
	SetToken(token string)
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Register(ctx context.Context, reg models.Registration) (models.AuthResponse, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.AuthResponse, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) (models.AuthResponse, error)
}

var _ Client = (*api.Client)(nil)

// Session is the explicit auth context shared by every command.
type Session struct {
	client Client
	store  Store

	mu   sync.Mutex
	user *models.User
}

// New creates a Session. Call Restore to load a previously stored login.
func New(client Client, store Store) *Session {
	return &Session{client: client, store: store}
}

// Restore installs a stored token on the client and loads the stored user.
// It returns nil when nobody is signed in.
func (s *Session) Restore(ctx context.Context) (*models.User, error) {
	token, ok, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session token: %w", err)
	}
	if !ok || token == "" {
		return nil, nil
	}
	s.client.SetToken(token)
	return s.CurrentUser(ctx)
}

// IsAuthenticated reports whether a token is stored.
func (s *Session) IsAuthenticated(ctx context.Context) (bool, error) {
	token, ok, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		return false, fmt.Errorf("failed to load session token: %w", err)
	}
	return ok && token != "", nil
}

// CurrentUser returns the stored user, or nil. A stored record that does
// not parse is deleted and treated as absent.
func (s *Session) CurrentUser(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	if s.user != nil {
		u := *s.user
		s.mu.Unlock()
		return &u, nil
	}
	s.mu.Unlock()

	raw, ok, err := s.store.Get(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Log.Warn().Err(err).Msg("Discarding unreadable stored user")
		if delErr := s.store.Delete(ctx, UserKey); delErr != nil {
			return nil, fmt.Errorf("failed to clear stored user: %w", delErr)
		}
		return nil, nil
	}

	s.setUser(&user)
	return &user, nil
}

// Login signs in and persists the token and user.
func (s *Session) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	resp, err := s.client.Login(ctx, creds)
	if err != nil {
		logger.Log.Debug().Err(err).Str("username", logger.SanitizeText(creds.Username)).Msg("Login rejected")
		return nil, err
	}
	if err := s.begin(ctx, resp); err != nil {
		return nil, err
	}
	logger.Log.Info().Str("user", hashedID(resp.User)).Msg("Signed in")
	return resp.User, nil
}

// Register creates an account and signs in as it.
func (s *Session) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	resp, err := s.client.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	if err := s.begin(ctx, resp); err != nil {
		return nil, err
	}
	logger.Log.Info().Str("user", hashedID(resp.User)).Msg("Registered")
	return resp.User, nil
}

func (s *Session) begin(ctx context.Context, resp models.AuthResponse) error {
	if resp.Token == "" {
		return errNoToken
	}
	if err := s.store.Set(ctx, TokenKey, resp.Token); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}
	if err := s.storeUser(ctx, resp.User); err != nil {
		return err
	}
	s.client.SetToken(resp.Token)
	logger.Log.Debug().Str("token", logger.MaskToken(resp.Token)).Msg("Stored session token")
	return nil
}

// Logout ends the server session. A failed request is logged and ignored;
// the stored session is cleared regardless.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.client.Logout(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Logout request failed")
	}

	s.client.SetToken("")
	s.setUser(nil)
	if err := s.store.Delete(ctx, TokenKey, UserKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Refresh reloads the profile from the API and stores it.
func (s *Session) Refresh(ctx context.Context) (*models.User, error) {
	user, err := s.client.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.storeUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile patches the profile and stores the returned user.
func (s *Session) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	resp, err := s.client.UpdateProfile(ctx, update)
	if err != nil {
		return nil, err
	}
	if resp.User == nil {
		return s.CurrentUser(ctx)
	}
	if err := s.storeUser(ctx, resp.User); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ChangePassword changes the password and stores a replacement token when
// the API issues one. It returns the API's message.
func (s *Session) ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	resp, err := s.client.ChangePassword(ctx, currentPassword, newPassword)
	if err != nil {
		return "", err
	}
	if resp.Token != "" {
		if err := s.store.Set(ctx, TokenKey, resp.Token); err != nil {
			return "", fmt.Errorf("failed to store session token: %w", err)
		}
		s.client.SetToken(resp.Token)
	}
	return resp.Message, nil
}

func (s *Session) storeUser(ctx context.Context, user *models.User) error {
	if user == nil {
		s.setUser(nil)
		if err := s.store.Delete(ctx, UserKey); err != nil {
			return fmt.Errorf("failed to clear stored user: %w", err)
		}
		return nil
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(ctx, UserKey, string(raw)); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	s.setUser(user)
	return nil
}

func (s *Session) setUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.user = nil
		return
	}
	u := *user
	s.user = &u
}

func hashedID(user *models.User) string {
	if user == nil {
		return ""
	}
	return logger.HashUserID(user.ID)
}

// FailureMessage picks the banner for a failed auth action: the API's own
// message, then the first of fields the API rejected, then fallback.
// Network failures always get fallback.
func FailureMessage(err error, fallback string, fields ...string) string {
	apiErr, ok := api.AsError(err)
	if !ok || apiErr.Kind == api.KindNetwork {
		return fallback
	}
	if apiErr.Message != "" && apiErr.Message != api.GenericErrorMessage {
		return apiErr.Message
	}
	for _, f := range fields {
		if msg := apiErr.Fields[f]; msg != "" {
			return msg
		}
	}
	return fallback
}
