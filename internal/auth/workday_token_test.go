package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workday-mcp/internal/retry"
)

func fastBackoff() retry.Config {
	return retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestGetAccessToken(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "wd-client", user)
		assert.Equal(t, "wd-secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "wd-refresh", r.PostForm.Get("refresh_token"))

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "wd-access-token",
			"expires_in":   3600,
		})
	}))
	defer srv.Close()

	provider := &TokenProvider{
		TokenURL:     srv.URL,
		ClientID:     "wd-client",
		ClientSecret: "wd-secret",
		RefreshToken: "wd-refresh",
		Backoff:      fastBackoff(),
	}

	token, err := provider.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "wd-access-token", token.AccessToken)
	// token_type defaults when the endpoint omits it
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, 1, attempts)
}

func TestGetAccessTokenRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": "wd-access-token"})
	}))
	defer srv.Close()

	provider := &TokenProvider{TokenURL: srv.URL, Backoff: fastBackoff()}

	token, err := provider.GetAccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "wd-access-token", token.AccessToken)
	assert.Equal(t, 3, attempts)
}

func TestGetAccessTokenExhaustsRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	provider := &TokenProvider{TokenURL: srv.URL, Backoff: fastBackoff()}

	_, err := provider.GetAccessToken(context.Background())
	assert.ErrorIs(t, err, ErrCredentialExchange)
	assert.Equal(t, 3, attempts)
}

func TestGetAccessTokenClientErrorFailsImmediately(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	provider := &TokenProvider{TokenURL: srv.URL, Backoff: fastBackoff()}

	_, err := provider.GetAccessToken(context.Background())
	assert.ErrorIs(t, err, ErrCredentialExchange)
	assert.Equal(t, 1, attempts, "4xx responses are not retried")
}

func TestGetAccessTokenMissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"token_type": "Bearer"})
	}))
	defer srv.Close()

	provider := &TokenProvider{TokenURL: srv.URL, Backoff: fastBackoff()}

	_, err := provider.GetAccessToken(context.Background())
	assert.ErrorIs(t, err, ErrCredentialExchange)
	assert.ErrorContains(t, err, "missing access_token")
}
