package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/oauthex"
	"go.uber.org/zap"
)

// ResourceMetadata serves the OAuth 2.0 protected resource metadata for this
// server, pointing clients at the authorization server and supported scopes.
type ResourceMetadata struct {
	// AuthorizationServerURL is the URL authorization requests are sent to.
	AuthorizationServerURL string
	// ResourceURL is the user-facing URL for this resource server.
	ResourceURL string
	// SupportedScopes is the list of OAuth 2.0 scopes this server supports.
	SupportedScopes []string
}

// NewResourceMetadata creates and returns a new ResourceMetadata value.
func NewResourceMetadata(authorizationServerURL, resourceURL string, supportedScopes []string) *ResourceMetadata {
	return &ResourceMetadata{
		AuthorizationServerURL: authorizationServerURL,
		ResourceURL:            resourceURL,
		SupportedScopes:        supportedScopes,
	}
}

// HandleProtectedResourceMetadata handles the protected resource metadata endpoint.
func (m *ResourceMetadata) HandleProtectedResourceMetadata(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	metadata := oauthex.ProtectedResourceMetadata{
		Resource:             m.ResourceURL,
		ScopesSupported:      m.SupportedScopes,
		AuthorizationServers: []string{m.AuthorizationServerURL},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(metadata); err != nil {
		zap.L().Error("failed to marshal protected resource metadata", zap.Error(err))
	}
}
