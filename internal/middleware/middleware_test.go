package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSPreflight(t *testing.T) {
	nextCalled := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://agent.example.com")
	req.Header.Set("Access-Control-Request-Headers", "authorization, mcp-session-id")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, nextCalled, "preflight is answered without hitting the handler")
	assert.Equal(t, "https://agent.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "GET, POST, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "authorization, mcp-session-id", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORSPassThrough(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	// no Origin header falls back to the wildcard
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "mcp-session-id, mcp-protocol-version", rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestHandleProtectedResourceMetadata(t *testing.T) {
	metadata := NewResourceMetadata(
		"https://login.microsoftonline.com/tenant-id/v2.0",
		"https://mcp.example.com",
		[]string{"workday_read"},
	)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/oauth-protected-resource", nil)
	rec := httptest.NewRecorder()

	metadata.HandleProtectedResourceMetadata(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded struct {
		Resource             string   `json:"resource"`
		ScopesSupported      []string `json:"scopes_supported"`
		AuthorizationServers []string `json:"authorization_servers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, "https://mcp.example.com", decoded.Resource)
	assert.Equal(t, []string{"workday_read"}, decoded.ScopesSupported)
	assert.Equal(t, []string{"https://login.microsoftonline.com/tenant-id/v2.0"}, decoded.AuthorizationServers)
}

func TestHandleProtectedResourceMetadataOptions(t *testing.T) {
	metadata := NewResourceMetadata("https://authz.example.com", "https://mcp.example.com", nil)

	req := httptest.NewRequest(http.MethodOptions, "/.well-known/oauth-protected-resource", nil)
	rec := httptest.NewRecorder()

	metadata.HandleProtectedResourceMetadata(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
