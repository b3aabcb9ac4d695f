// Package config loads the process configuration from environment variables.
//
// The configuration is loaded once and cached for the process lifetime; it is
// never mutated after load. Tests that need different values call Reset after
// changing the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	defaultWorkersPath = "/ccx/api/workday/v3/workers"
	defaultReportOwner = "svasireddy"
)

// Entra holds the Microsoft Entra ID application settings used to validate
// inbound access tokens.
type Entra struct {
	// ClientID is the application (client) ID tokens must be issued for.
	ClientID string
	// TenantID is the only tenant tokens are accepted from.
	TenantID string
}

// Issuer returns the expected token issuer for the configured tenant.
func (e Entra) Issuer() string {
	return fmt.Sprintf("https://login.microsoftonline.com/%s/v2.0", e.TenantID)
}

// MetadataURL returns the tenant's OpenID configuration endpoint, used to
// discover the signing key set.
func (e Entra) MetadataURL() string {
	return fmt.Sprintf("https://login.microsoftonline.com/%s/.well-known/openid-configuration", e.TenantID)
}

// Workday holds the settings for the Workday refresh-token exchange and the
// Workday REST API.
type Workday struct {
	// TokenURL is the OAuth token endpoint for the refresh-token grant.
	TokenURL string
	// WorkersAPIURL overrides the worker collection endpoint. When empty the
	// endpoint is derived from BaseURL.
	WorkersAPIURL string
	// ClientID and ClientSecret authenticate the exchange itself.
	ClientID     string
	ClientSecret string
	// RefreshToken is the server-held long-lived credential.
	RefreshToken string
	// Tenant is the Workday tenant name embedded in API paths.
	Tenant string
	// BaseURL is the Workday services host, e.g. https://wd2-impl-services1.workday.com.
	BaseURL string
	// ReportOwner is the owner segment of the Required_Learning custom report.
	ReportOwner string
}

// WorkersURL returns the worker collection endpoint used for the
// search-by-identifier lookup.
func (w Workday) WorkersURL() string {
	if w.WorkersAPIURL != "" {
		return strings.TrimRight(w.WorkersAPIURL, "/")
	}
	return w.BaseURL + defaultWorkersPath
}

// AbsenceURL builds an absence management API URL for the configured tenant.
func (w Workday) AbsenceURL(path string) string {
	return fmt.Sprintf("%s/ccx/api/absenceManagement/v1/%s%s", w.BaseURL, w.Tenant, path)
}

// CommonURL builds a common API URL for the configured tenant.
func (w Workday) CommonURL(path string) string {
	return fmt.Sprintf("%s/ccx/api/common/v1/%s%s", w.BaseURL, w.Tenant, path)
}

// LearningURL builds a learning API URL for the configured tenant.
func (w Workday) LearningURL(path string) string {
	return fmt.Sprintf("%s/ccx/api/learning/v1/%s%s", w.BaseURL, w.Tenant, path)
}

// RequiredLearningReportURL returns the custom report endpoint listing
// required learning assignments.
func (w Workday) RequiredLearningReportURL() string {
	return fmt.Sprintf("%s/ccx/service/customreport2/%s/%s/Required_Learning", w.BaseURL, w.Tenant, w.ReportOwner)
}

// Graph holds the application credentials for Microsoft Graph directory
// lookups. Graph is authenticated with a client-credentials grant, not with
// the caller's token.
type Graph struct {
	ClientID     string
	ClientSecret string
	TenantID     string
}

// TokenURL returns the Graph tenant's client-credentials token endpoint.
func (g Graph) TokenURL() string {
	return fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", g.TenantID)
}

// Config is the full process configuration. Read-only after Load.
type Config struct {
	Entra   Entra
	Workday Workday
	Graph   Graph
}

var (
	mu     sync.Mutex
	cached *Config
)

// Load returns the process configuration, reading the environment on first
// call and caching the result.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}
	cached = cfg

	return cfg, nil
}

// Reset discards the cached configuration so the next Load re-reads the
// environment. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cached = nil
}

func fromEnv() (*Config, error) {
	var missing []string
	require := func(name string) string {
		value := os.Getenv(name)
		if value == "" {
			missing = append(missing, name)
		}
		return value
	}

	cfg := &Config{
		Entra: Entra{
			ClientID: require("AAD_APP_CLIENT_ID"),
			TenantID: require("AAD_APP_TENANT_ID"),
		},
		Workday: Workday{
			TokenURL:      require("WORKDAY_TOKEN_URL"),
			WorkersAPIURL: os.Getenv("WORKDAY_WORKERS_API_URL"),
			ClientID:      require("WORKDAY_CLIENT_CREDENTIALS"),
			ClientSecret:  require("WORKDAY_CLIENT_SECRET"),
			RefreshToken:  require("WORKDAY_REFRESH_TOKEN"),
			Tenant:        require("WORKDAY_TENANT"),
			BaseURL:       strings.TrimRight(require("WORKDAY_BASE_URL"), "/"),
			ReportOwner:   os.Getenv("WORKDAY_REPORT_OWNER"),
		},
		Graph: Graph{
			ClientID:     require("GRAPH_CLIENT_ID"),
			ClientSecret: require("GRAPH_CLIENT_SECRET"),
			TenantID:     require("GRAPH_TENANT_ID"),
		},
	}
	if cfg.Workday.ReportOwner == "" {
		cfg.Workday.ReportOwner = defaultReportOwner
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration values: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
