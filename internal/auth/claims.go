package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// employeeIDClaims lists the employee-id claim variants consulted during
// identity resolution, in precedence order.
var employeeIDClaims = []string{"EmployeeId", "employeeId", "employee_id", "extension_EmployeeId"}

// Claims is the structured view of a validated token payload. The raw claim
// map is parsed exactly once, here; downstream code never re-reads it.
type Claims struct {
	// TenantID is the issuing tenant (the "tid" claim).
	TenantID string
	// PreferredUsername, UPN and UniqueName are the username claim variants,
	// any of which may be absent.
	PreferredUsername string
	UPN               string
	UniqueName        string
	// ObjectID is the directory object id of the caller (the "oid" claim).
	ObjectID string
	// EmployeeID is the first non-empty employee-id claim variant, verbatim.
	EmployeeID string
	// Scopes holds the entries of the space-delimited "scp" claim.
	Scopes []string
	// Roles holds the "roles" claim entries.
	Roles []string

	// Raw is the full claim map, kept for logging the claim names present.
	Raw jwt.MapClaims
}

func newClaims(payload jwt.MapClaims) *Claims {
	c := &Claims{
		TenantID:          stringClaim(payload, "tid"),
		PreferredUsername: stringClaim(payload, "preferred_username"),
		UPN:               stringClaim(payload, "upn"),
		UniqueName:        stringClaim(payload, "unique_name"),
		ObjectID:          stringClaim(payload, "oid"),
		Raw:               payload,
	}

	for _, key := range employeeIDClaims {
		if value := stringClaim(payload, key); value != "" {
			c.EmployeeID = value
			break
		}
	}

	if scp := stringClaim(payload, "scp"); scp != "" {
		c.Scopes = strings.Fields(scp)
	} else if list, ok := payload["scp"].([]any); ok {
		c.Scopes = stringList(list)
	}

	switch roles := payload["roles"].(type) {
	case []any:
		c.Roles = stringList(roles)
	case string:
		c.Roles = []string{roles}
	}

	return c
}

// Username returns the first present username claim variant, or empty.
func (c *Claims) Username() string {
	if c.PreferredUsername != "" {
		return c.PreferredUsername
	}
	if c.UPN != "" {
		return c.UPN
	}
	return c.UniqueName
}

// HasAnyScope reports whether any of the required scopes appears in the
// token's scope claim or role list.
func (c *Claims) HasAnyScope(required []string) bool {
	for _, want := range required {
		for _, scope := range c.Scopes {
			if scope == want {
				return true
			}
		}
		for _, role := range c.Roles {
			if role == want {
				return true
			}
		}
	}
	return false
}

// ClaimNames returns the names of the claims present, for diagnostics. Claim
// values are never logged.
func (c *Claims) ClaimNames() []string {
	names := make([]string, 0, len(c.Raw))
	for name := range c.Raw {
		names = append(names, name)
	}
	return names
}

// localPart returns the portion of a username before the "@".
func localPart(username string) string {
	if at := strings.Index(username, "@"); at >= 0 {
		return username[:at]
	}
	return username
}

func stringClaim(payload jwt.MapClaims, key string) string {
	value, _ := payload[key].(string)
	return value
}

func stringList(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
