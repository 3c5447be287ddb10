// Package api implements the JSON client for the shared-expense backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"divvy/internal/common"
	"github.com/google/uuid"
)

const sessionCookie = "session"

// Client talks to the backend REST API. All state mutation lives on the
// server; the client only carries the base URL and the session cookie.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken seeds the client with a previously saved session token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current session token, if any.
func (c *Client) Token() string {
	return c.token
}

// SetToken replaces the session token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// errorPayload is the uniform error body the backend pairs with non-2xx
// statuses.
type errorPayload struct {
	Error string `json:"error"`
}

// do issues one request and decodes the response into out (when non-nil).
// Transport failures wrap common.ErrNetwork; non-2xx statuses become a
// *common.ServerError carrying the backend's message. A session cookie on
// the response replaces the stored token, mirroring what a browser would
// do with Set-Cookie.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.prepare(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.captureSession(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// prepare attaches the shared headers: a request ID for log correlation
// and the session cookie when present.
func (c *Client) prepare(req *http.Request) {
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.token})
	}
}

func (c *Client) captureSession(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == sessionCookie && cookie.Value != "" {
			c.token = cookie.Value
		}
	}
}

// decodeError turns a non-2xx response into a *common.ServerError. A 401
// additionally wraps common.ErrUnauthenticated so callers can branch on
// the session being absent or expired without inspecting status codes.
func (c *Client) decodeError(resp *http.Response) error {
	var payload errorPayload
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if readErr == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			slog.Debug("Non-JSON error body from API",
				"status", resp.StatusCode,
				"body_len", len(data))
		}
	}
	serverErr := &common.ServerError{Status: resp.StatusCode, Message: payload.Error}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", common.ErrUnauthenticated, serverErr)
	}
	return serverErr
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return errors.Is(err, common.ErrUnauthenticated)
}

// uploadMultipart posts a single file field and decodes the response.
func (c *Client) uploadMultipart(ctx context.Context, path, field, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.prepare(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.captureSession(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
