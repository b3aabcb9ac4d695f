// Package auth implements the identity bridge between inbound Entra ID
// access tokens and the Workday API: token validation, worker id resolution,
// delegated credential acquisition, and the per-call worker context every
// tool consumes.
package auth

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"workday-mcp/internal/config"
	"workday-mcp/pkg/client"
)

const bearerScheme = "bearer "

// WorkerContext carries everything a tool needs to act on behalf of the
// caller. It is built once per inbound call, consumed by exactly one tool
// invocation, and then discarded; nothing in it is shared across calls.
type WorkerContext struct {
	// Claims is the validated token payload.
	Claims *Claims
	// WorkerID is the identifier derived from the claims, used for the search.
	WorkerID string
	// WorkdayID is the canonical id of the matched worker record.
	WorkdayID string
	// AccessToken is the short-lived Workday token for downstream calls.
	AccessToken string
	// Worker is the first record returned by the worker search.
	Worker *client.Worker
}

// ClaimsValidator validates a bearer token and returns its structured claims.
type ClaimsValidator interface {
	Validate(ctx context.Context, token string) (*Claims, error)
}

// WorkerIDResolver derives the worker identifier from validated claims.
type WorkerIDResolver interface {
	Resolve(ctx context.Context, claims *Claims) (string, error)
}

// TokenSource acquires a short-lived Workday access token.
type TokenSource interface {
	GetAccessToken(ctx context.Context) (*Token, error)
}

// WorkerFinder searches the worker collection by identifier.
type WorkerFinder interface {
	SearchWorker(ctx context.Context, accessToken, workerID string) (*client.Worker, error)
}

// Builder assembles the per-call WorkerContext. The four steps run strictly
// in order, each feeding the next, and any failure propagates unchanged with
// no partial context returned.
type Builder struct {
	Validator ClaimsValidator
	Resolver  WorkerIDResolver
	Tokens    TokenSource
	Workers   WorkerFinder
}

// NewBuilder wires the standard bridge components from the process configuration.
func NewBuilder(cfg *config.Config, workers WorkerFinder) *Builder {
	return &Builder{
		Validator: NewValidator(cfg),
		Resolver:  NewResolver(NewGraphClient(cfg)),
		Tokens:    NewTokenProvider(cfg),
		Workers:   workers,
	}
}

// Build validates the token and resolves the caller into a WorkerContext.
func (b *Builder) Build(ctx context.Context, token string) (*WorkerContext, error) {
	claims, err := b.Validator.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	workerID, err := b.Resolver.Resolve(ctx, claims)
	if err != nil {
		return nil, err
	}

	accessToken, err := b.Tokens.GetAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	worker, err := b.Workers.SearchWorker(ctx, accessToken.AccessToken, workerID)
	if err != nil {
		return nil, err
	}

	workdayID := worker.ID
	if workdayID == "" {
		workdayID = workerID
	}

	return &WorkerContext{
		Claims:      claims,
		WorkerID:    workerID,
		WorkdayID:   workdayID,
		AccessToken: accessToken.AccessToken,
		Worker:      worker,
	}, nil
}

// FromRequest extracts the bearer token from the tool request and builds the
// WorkerContext. Every tool handler calls this before any business logic.
func (b *Builder) FromRequest(ctx context.Context, toolReq *mcp.CallToolRequest) (*WorkerContext, error) {
	token, err := BearerFromRequest(toolReq)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx, token)
}

// BearerFromRequest reads the bearer token from the inbound call's
// Authorization header. Credentials travel only in the transport header,
// never as tool arguments.
func BearerFromRequest(toolReq *mcp.CallToolRequest) (string, error) {
	if toolReq == nil || toolReq.Extra == nil || toolReq.Extra.Header == nil {
		return "", ErrMissingCredential
	}

	authHeader := toolReq.Extra.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), bearerScheme) {
		return "", ErrMissingCredential
	}

	token := strings.TrimSpace(authHeader[len(bearerScheme):])
	if token == "" {
		return "", ErrMissingCredential
	}

	return token, nil
}
