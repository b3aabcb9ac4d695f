package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"workday-mcp/internal/config"
)

const (
	defaultGraphBaseURL = "https://graph.microsoft.com"
	graphTimeout        = 15 * time.Second
	graphScope          = "https://graph.microsoft.com/.default"
)

// DirectoryClient looks up a user in a directory service by principal name or
// object id and returns the downstream employee identifier.
type DirectoryClient interface {
	LookupEmployeeID(ctx context.Context, identifier string) (string, error)
}

// GraphClient resolves employee ids through Microsoft Graph. Lookups are
// authenticated with the application's own client-credentials grant, not with
// the caller's token.
type GraphClient struct {
	TenantID     string
	ClientID     string
	ClientSecret string

	// BaseURL and TokenURL default to the public Graph endpoints.
	BaseURL  string
	TokenURL string

	HTTPClient *http.Client
}

// NewGraphClient creates a Graph directory client from the process configuration.
func NewGraphClient(cfg *config.Config) *GraphClient {
	return &GraphClient{
		TenantID:     cfg.Graph.TenantID,
		ClientID:     cfg.Graph.ClientID,
		ClientSecret: cfg.Graph.ClientSecret,
		BaseURL:      defaultGraphBaseURL,
		TokenURL:     cfg.Graph.TokenURL(),
		HTTPClient:   &http.Client{Timeout: graphTimeout},
	}
}

// LookupEmployeeID fetches the directory user and returns its employeeId
// field, falling back to the local part of the user principal name.
func (g *GraphClient) LookupEmployeeID(ctx context.Context, identifier string) (string, error) {
	accessToken, err := g.accessToken(ctx)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("$select", "employeeId,userPrincipalName,id")
	u := fmt.Sprintf("%s/v1.0/users/%s?%s", g.BaseURL, url.PathEscape(identifier), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("directory lookup returned %d", resp.StatusCode)
	}

	var user struct {
		EmployeeID        string `json:"employeeId"`
		UserPrincipalName string `json:"userPrincipalName"`
		ID                string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", err
	}

	if user.EmployeeID != "" {
		return user.EmployeeID, nil
	}
	if user.UserPrincipalName != "" {
		return localPart(user.UserPrincipalName), nil
	}

	return "", fmt.Errorf("unable to determine employee id from directory")
}

// accessToken acquires a Graph token via the client-credentials grant.
func (g *GraphClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {g.ClientID},
		"client_secret": {g.ClientSecret},
		"scope":         {graphScope},
		"grant_type":    {"client_credentials"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("directory token request returned %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("directory token response missing access_token")
	}

	return payload.AccessToken, nil
}

func (g *GraphClient) httpClient() *http.Client {
	if g.HTTPClient != nil {
		return g.HTTPClient
	}
	return &http.Client{Timeout: graphTimeout}
}
