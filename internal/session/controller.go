// Package session owns the process-wide authenticated identity and the
// actions that change it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"divvy/internal/common"
	"divvy/internal/model"
)

// Backend is the slice of the API the controller needs. Declared here so
// tests can substitute a fake without a live server.
type Backend interface {
	Me(ctx context.Context) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, name, email, password string) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	UpdateProfile(ctx context.Context, name, currentPassword, newPassword string) (string, error)
	Token() string
	SetToken(token string)
}

// Controller owns the single Session value. Exactly one Controller exists
// per process; every view reads identity through it.
type Controller struct {
	backend Backend
	user    *model.User
}

// NewController creates a session controller over the given backend.
func NewController(backend Backend) *Controller {
	return &Controller{backend: backend}
}

// Session returns the current session value.
func (c *Controller) Session() model.Session {
	return model.Session{User: c.user}
}

// User returns the authenticated user, or nil.
func (c *Controller) User() *model.User {
	return c.user
}

// Resolve attempts to recover an existing identity from the saved session
// token. The two outcomes are exhaustive: an authenticated session, or no
// session at all. Transport errors and explicit 401s both land on the
// second; there is no retry state the caller has to handle.
func (c *Controller) Resolve(ctx context.Context) bool {
	state, err := LoadState()
	if err != nil {
		slog.Warn("Failed to read saved session", "error", err)
		return false
	}
	if state.Token == "" {
		return false
	}
	c.backend.SetToken(state.Token)

	var user model.User
	err = common.WithRetry(ctx, func() error {
		var meErr error
		user, meErr = c.backend.Me(ctx)
		return meErr
	}, common.RetryOptions{MaxAttempts: 2, InitialDelay: 200 * time.Millisecond})
	if err != nil {
		if isUnauthorized(err) {
			common.LogInfo("Saved session is no longer valid", common.Fields{})
			if clearErr := ClearState(); clearErr != nil {
				slog.Warn("Failed to clear stale session", "error", clearErr)
			}
		} else {
			common.LogError(err, "Identity check failed", common.Fields{})
		}
		return false
	}

	c.user = &user
	return true
}

// Login authenticates with the backend. A rejected pair maps to
// ErrInvalidCredentials, a transport failure to ErrNetwork; in both cases
// the prior session (and the caller's view) is left unchanged.
func (c *Controller) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := c.backend.Login(ctx, email, password)
	if err != nil {
		if isUnauthorized(err) {
			return nil, fmt.Errorf("login rejected: %w", common.ErrInvalidCredentials)
		}
		return nil, err
	}

	c.user = &user
	c.persistToken()
	return c.user, nil
}

// Logout clears the session unconditionally. The server-side invalidation
// call is best effort: its failure is logged, never surfaced, and never
// blocks the transition back to the landing view.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.backend.Logout(ctx); err != nil {
		common.LogError(err, "Server-side logout failed", common.Fields{})
	}
	c.user = nil
	c.backend.SetToken("")
	if err := ClearState(); err != nil {
		slog.Warn("Failed to clear saved session", "error", err)
	}
}

// Register creates an account. No session is established; the caller
// moves to the login view on success.
func (c *Controller) Register(ctx context.Context, name, email, password string) error {
	return c.backend.Register(ctx, name, email, password)
}

// RequestPasswordReset asks for a reset link.
func (c *Controller) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return c.backend.RequestPasswordReset(ctx, email)
}

// ResetPassword redeems a reset token.
func (c *Controller) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	return c.backend.ResetPassword(ctx, token, newPassword)
}

// UpdateProfile saves profile changes and applies the confirmed name to
// the session.
func (c *Controller) UpdateProfile(ctx context.Context, name, currentPassword, newPassword string) error {
	saved, err := c.backend.UpdateProfile(ctx, name, currentPassword, newPassword)
	if err != nil {
		return err
	}
	if c.user != nil && saved != "" {
		c.user.Name = saved
	}
	return nil
}

// SetAvatarPath applies a freshly uploaded avatar path to the session.
// Both display locations read from this one value.
func (c *Controller) SetAvatarPath(path string) {
	if c.user != nil {
		c.user.AvatarPath = path
	}
}

func (c *Controller) persistToken() {
	token := c.backend.Token()
	if token == "" {
		return
	}
	if err := SaveState(State{Token: token, SavedAt: time.Now()}); err != nil {
		slog.Warn("Failed to save session", "error", err)
	}
}

func isUnauthorized(err error) bool {
	return errors.Is(err, common.ErrUnauthenticated)
}
