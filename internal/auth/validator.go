package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"workday-mcp/internal/config"
)

// expirationLeeway defines the allowed clock skew when validating token expiration.
const expirationLeeway = 10 * time.Second

// signingMethod defines the JWT signing algorithm accepted by this server.
const signingMethod = "RS256"

// discoveryTimeout bounds the OpenID metadata fetch.
const discoveryTimeout = 10 * time.Second

// ValidationOptions holds the acceptance criteria for inbound access tokens.
// Constructed once from configuration; every field is enforced on every token.
type ValidationOptions struct {
	// Audience the token must be issued for.
	Audience string
	// Issuer the token must come from.
	Issuer string
	// RequiredScopes: at least one must appear in the token's scope claim or
	// role list.
	RequiredScopes []string
	// AllowedTenants: the token's tenant claim must be a member.
	AllowedTenants []string
}

// Validator validates Entra ID access tokens against the tenant's published
// signing keys. Signature, audience, issuer, tenant, and scope are all
// checked; a token passes only if all five gates pass.
type Validator struct {
	Options ValidationOptions

	// MetadataURL is the tenant's OpenID configuration endpoint, used to
	// discover the key-set location on first use.
	MetadataURL string

	// HTTPClient performs the metadata fetch. Defaults to a client with a
	// bounded timeout.
	HTTPClient *http.Client

	mu   sync.Mutex
	jwks keyfunc.Keyfunc
}

// NewValidator creates a validator enforcing the configured tenant, audience,
// and the workday_read scope.
func NewValidator(cfg *config.Config) *Validator {
	return &Validator{
		Options: ValidationOptions{
			Audience:       cfg.Entra.ClientID,
			Issuer:         cfg.Entra.Issuer(),
			RequiredScopes: []string{"workday_read"},
			AllowedTenants: []string{cfg.Entra.TenantID},
		},
		MetadataURL: cfg.Entra.MetadataURL(),
	}
}

// Validate checks the token against every gate and returns its structured
// claims. The returned error is always ErrInvalidToken; the failing gate is
// only logged, never surfaced to the caller.
func (v *Validator) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	jwks, err := v.loadJWKS(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing keys: %w", err)
	}

	token, err := jwt.Parse(tokenString, jwks.Keyfunc,
		jwt.WithValidMethods([]string{signingMethod}),
		jwt.WithLeeway(expirationLeeway),
		jwt.WithAudience(v.Options.Audience),
		jwt.WithIssuer(v.Options.Issuer),
	)
	if err != nil {
		zap.L().Warn("failed to parse token", zap.Error(err))
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		zap.L().Warn("invalid token")
		return nil, ErrInvalidToken
	}

	payload, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		zap.L().Warn("invalid claims type")
		return nil, ErrInvalidToken
	}
	claims := newClaims(payload)

	if !v.tenantAllowed(claims.TenantID) {
		zap.L().Warn("token tenant is not allowed")
		return nil, ErrInvalidToken
	}
	if len(v.Options.RequiredScopes) > 0 && !claims.HasAnyScope(v.Options.RequiredScopes) {
		zap.L().Warn("token scope missing required permissions")
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (v *Validator) tenantAllowed(tenant string) bool {
	if tenant == "" {
		return false
	}
	for _, allowed := range v.Options.AllowedTenants {
		if tenant == allowed {
			return true
		}
	}
	return false
}

// loadJWKS discovers the key-set location from the OpenID configuration and
// initializes the JWKS client. Performed once; the keyfunc refreshes keys
// internally, including a rate-limited refresh for unknown key ids, so key
// rotation is tolerated without an unbounded re-fetch loop.
func (v *Validator) loadJWKS(ctx context.Context) (keyfunc.Keyfunc, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.jwks != nil {
		return v.jwks, nil
	}

	jwksURI, err := v.discoverJWKSURI(ctx)
	if err != nil {
		return nil, err
	}

	// The keyfunc's background refresh must outlive the request that
	// triggered initialization.
	jwks, err := keyfunc.NewDefaultCtx(context.Background(), []string{jwksURI})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}
	v.jwks = jwks
	zap.L().Info("initialized JWKS", zap.String("jwksURL", jwksURI))

	return jwks, nil
}

func (v *Validator) discoverJWKSURI(ctx context.Context) (string, error) {
	httpClient := v.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: discoveryTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.MetadataURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch OpenID configuration: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OpenID configuration fetch returned %d", resp.StatusCode)
	}

	var metadata struct {
		JWKSURI string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return "", fmt.Errorf("failed to decode OpenID configuration: %w", err)
	}
	if metadata.JWKSURI == "" {
		return "", fmt.Errorf("jwks_uri not found in OpenID configuration")
	}

	return metadata.JWKSURI, nil
}
