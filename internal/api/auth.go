package api

import (
	"context"
	"io"
	"net/http"

	"divvy/internal/model"
)

// Me returns the identity behind the stored session token, or a 401
// server error when the session is absent or expired.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Login authenticates with email and password. On success the session
// cookie from the response is captured into the client.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return model.User{}, err
	}
	return resp.User, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, nil)
}

// RequestPasswordReset asks the backend to send a reset link. The returned
// message is shown verbatim.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	body := map[string]string{"email": email}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/forgot-password", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	body := map[string]string{"token": token, "new_password": newPassword}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdateProfile changes the display name and, when both password fields
// are supplied, the password. Returns the saved name.
func (c *Client) UpdateProfile(ctx context.Context, name, currentPassword, newPassword string) (string, error) {
	body := map[string]string{"name": name}
	if currentPassword != "" && newPassword != "" {
		body["current_password"] = currentPassword
		body["new_password"] = newPassword
	}
	var resp struct {
		Message string `json:"message"`
		Name    string `json:"name"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/user/profile", body, &resp); err != nil {
		return "", err
	}
	return resp.Name, nil
}

// UploadAvatar posts a new avatar image and returns the resource path the
// backend assigned to it.
func (c *Client) UploadAvatar(ctx context.Context, filename string, r io.Reader) (string, error) {
	var resp struct {
		AvatarPath string `json:"avatar_path"`
	}
	if err := c.uploadMultipart(ctx, "/api/user/avatar", "avatar", filename, r, &resp); err != nil {
		return "", err
	}
	return resp.AvatarPath, nil
}
