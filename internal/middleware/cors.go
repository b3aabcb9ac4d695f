// Package middleware provides the HTTP layer around the streamable MCP
// handler: CORS for browser-based MCP clients and the OAuth protected
// resource metadata endpoint.
package middleware

import "net/http"

const (
	corsAllowMethods   = "GET, POST, DELETE, OPTIONS"
	corsDefaultHeaders = "authorization, content-type, accept, mcp-session-id, mcp-protocol-version"
	corsExposeHeaders  = "mcp-session-id, mcp-protocol-version"
	corsMaxAge         = "600"
)

// CORS wraps a handler with cross-origin support, answering preflight
// requests directly and echoing the caller's origin.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Expose-Headers", corsExposeHeaders)

		if r.Method == http.MethodOptions {
			requested := r.Header.Get("Access-Control-Request-Headers")
			if requested == "" {
				requested = corsDefaultHeaders
			}
			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", requested)
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
