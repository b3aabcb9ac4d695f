package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"workday-mcp/internal/config"
	"workday-mcp/internal/retry"
)

const exchangeTimeout = 15 * time.Second

// Token is a short-lived Workday access token. It is owned by the call that
// requested it and never cached.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// TokenProvider exchanges the server-held refresh token for a short-lived
// Workday access token. The exchange authenticates with the client id and
// secret as an HTTP Basic credential.
type TokenProvider struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string

	// HTTPClient performs the exchange. Defaults to a client with a bounded
	// timeout.
	HTTPClient *http.Client

	// Backoff configures the transient-failure retry. Zero values take the
	// retry package defaults.
	Backoff retry.Config
}

// NewTokenProvider creates a provider from the process configuration with the
// standard retry policy: 3 attempts, exponential backoff from 1s capped at 8s.
func NewTokenProvider(cfg *config.Config) *TokenProvider {
	return &TokenProvider{
		TokenURL:     cfg.Workday.TokenURL,
		ClientID:     cfg.Workday.ClientID,
		ClientSecret: cfg.Workday.ClientSecret,
		RefreshToken: cfg.Workday.RefreshToken,
		HTTPClient:   &http.Client{Timeout: exchangeTimeout},
		Backoff: retry.Config{
			MaxAttempts:  3,
			InitialDelay: time.Second,
			MaxDelay:     8 * time.Second,
		},
	}
}

// GetAccessToken performs the refresh-token grant. Transport errors, timeouts
// and 5xx responses are retried; a 4xx response means the stored credential is
// bad and fails immediately as a credential-exchange error.
func (p *TokenProvider) GetAccessToken(ctx context.Context) (*Token, error) {
	cfg := p.Backoff
	cfg.RetryIf = isTransient
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		zap.L().Warn("retrying workday token request",
			zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(err))
	}
	policy := retry.New(cfg)

	var token *Token
	err := policy.Do(ctx, func(ctx context.Context) error {
		requested, err := p.exchange(ctx)
		if err != nil {
			return err
		}
		token = requested
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCredentialExchange) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrCredentialExchange, err)
	}

	return token, nil
}

func (p *TokenProvider) exchange(ctx context.Context) (*Token, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {p.RefreshToken},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(p.ClientID, p.ClientSecret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	zap.L().Info("requesting workday token", zap.String("tokenURL", p.TokenURL))

	httpClient := p.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: exchangeTimeout}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &transientError{err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, &transientError{err: fmt.Errorf("token endpoint returned %d", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: token endpoint returned %d", ErrCredentialExchange, resp.StatusCode)
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %v", ErrCredentialExchange, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response missing access_token", ErrCredentialExchange)
	}
	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}

	return &token, nil
}

// transientError marks failures worth retrying: timeouts, connection errors,
// and 5xx responses.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}
