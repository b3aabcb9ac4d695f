package auth

import "errors"

// Sentinel errors for the identity bridge. Tool handlers surface these
// messages to the caller, so they stay generic: validation failures in
// particular never reveal which gate rejected the token.
var (
	// ErrMissingCredential means the inbound call carried no usable bearer token.
	ErrMissingCredential = errors.New("authorization bearer token is required in the request headers")

	// ErrInvalidToken means the access token failed validation.
	ErrInvalidToken = errors.New("access token could not be validated")

	// ErrWorkerIDNotResolved means no resolution strategy produced a worker id.
	ErrWorkerIDNotResolved = errors.New("worker id could not be determined from token")

	// ErrCredentialExchange means the Workday credential grant failed. This is
	// an operator-facing condition: the server-held refresh token or client
	// secret is broken.
	ErrCredentialExchange = errors.New("workday credential exchange failed")
)
