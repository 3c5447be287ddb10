package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"divvy/internal/common"
	"divvy/internal/model"
)

func modelDraft() model.ExpenseDraft {
	return model.ExpenseDraft{
		Title:       "Dinner",
		Amount:      "30.00",
		PayerID:     1,
		InvolvedIDs: []int64{1, 2},
	}
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		http.SetCookie(w, &http.Cookie{Name: "session", Value: "tok-123"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user": {"id": 1, "name": "Ana", "email": "ana@example.com"}}`))
	}))
	defer server.Close()

	client := New(server.URL)
	user, err := client.Login(context.Background(), "ana@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "tok-123", client.Token(), "the session cookie must be captured")
}

func TestClient_SendsSessionCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		require.NoError(t, err)
		assert.Equal(t, "tok-123", cookie.Value)
		_, _ = w.Write([]byte(`{"id": 1, "name": "Ana"}`))
	}))
	defer server.Close()

	client := New(server.URL, WithToken("tok-123"))
	_, err := client.Me(context.Background())
	require.NoError(t, err)
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error": "Email already registered"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	err := client.Register(context.Background(), "Ana", "ana@example.com", "secret")

	var serverErr *common.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusConflict, serverErr.Status)
	assert.Equal(t, "Email already registered", serverErr.Message)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Groups(context.Background())

	var serverErr *common.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadGateway, serverErr.Status)
	assert.Empty(t, serverErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	// A closed server guarantees a transport failure.
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close()

	client := New(server.URL)
	_, err := client.Groups(context.Background())

	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestIsUnauthorized(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "unauthenticated sentinel", err: common.ErrUnauthenticated, want: true},
		{name: "wrapped unauthenticated", err: fmt.Errorf("me: %w", common.ErrUnauthenticated), want: true},
		{name: "other server error", err: &common.ServerError{Status: http.StatusForbidden}, want: false},
		{name: "network error", err: common.ErrNetwork, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnauthorized(tt.err))
		})
	}
}

// A 401 response carries both the unauthenticated sentinel and the
// backend's message.
func TestClient_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "Not logged in"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Me(context.Background())

	assert.True(t, IsUnauthorized(err))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	var serverErr *common.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusUnauthorized, serverErr.Status)
	assert.Equal(t, "Not logged in", serverErr.Message)
}

func TestClient_Balance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/groups/7/balance", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"settlements": [{"from": 2, "to": 1, "amount": 15.0}],
			"balances": {"1": 15.0, "2": -15.0}
		}`))
	}))
	defer server.Close()

	client := New(server.URL)
	sheet, err := client.Balance(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, sheet.Settlements, 1)
	require.Len(t, sheet.Balances, 2)
	assert.Equal(t, int64(1), sheet.Balances[0].ParticipantID)
}

func TestClient_CreateExpense(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/groups/7/expenses", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 42, "title": "Dinner", "amount": 30.0, "payer_id": 1}`))
	}))
	defer server.Close()

	client := New(server.URL)
	expense, err := client.CreateExpense(context.Background(), 7, modelDraft())

	require.NoError(t, err)
	assert.Equal(t, int64(42), expense.ID)
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/groups", r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL + "/")
	_, err := client.Groups(context.Background())
	require.NoError(t, err)
}
