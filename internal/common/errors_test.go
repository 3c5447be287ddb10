package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerError_Error(t *testing.T) {
	withMessage := &ServerError{Status: 409, Message: "Email already registered"}
	assert.Equal(t, "Email already registered", withMessage.Error())

	withoutMessage := &ServerError{Status: 502}
	assert.Equal(t, "server error (status 502)", withoutMessage.Error())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "server error surfaces backend message",
			err:  &ServerError{Status: 409, Message: "Email already registered"},
			want: "Email already registered",
		},
		{
			name: "wrapped server error",
			err:  fmt.Errorf("register: %w", &ServerError{Status: 409, Message: "Taken"}),
			want: "Taken",
		},
		{
			name: "server error without message falls back",
			err:  &ServerError{Status: 500},
			want: "fallback",
		},
		{
			name: "user error",
			err:  NewUserError("Something specific happened", errors.New("detail")),
			want: "Something specific happened",
		},
		{
			name: "invalid credentials",
			err:  fmt.Errorf("login rejected: %w", ErrInvalidCredentials),
			want: "Invalid email or password",
		},
		{
			name: "expired session",
			err:  fmt.Errorf("%w: status 401", ErrUnauthenticated),
			want: "Session expired. Log in again",
		},
		{
			name: "incomplete form",
			err:  fmt.Errorf("draft: %w", ErrIncompleteForm),
			want: "Please fill in all fields",
		},
		{
			name: "network failure",
			err:  fmt.Errorf("%w: connection refused", ErrNetwork),
			want: "Could not reach the server",
		},
		{
			name: "unknown error falls back",
			err:  errors.New("boom"),
			want: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, "fallback"))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrNetwork))
	assert.True(t, IsRetryable(fmt.Errorf("request: %w", ErrNetwork)))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("flaky"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("fatal"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.False(t, IsRetryable(&ServerError{Status: 401}))
}
