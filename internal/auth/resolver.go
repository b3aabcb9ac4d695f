package auth

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// defaultResolveTimeout caps the cumulative time spent across all directory
// lookups of one resolution, so a run of slow failing lookups cannot stack
// per-stage timeouts. The claim-only strategies need no I/O and still run
// after the deadline passes.
const defaultResolveTimeout = 20 * time.Second

// strategyOutcome tags the result of one resolution strategy.
type strategyOutcome int

const (
	outcomeFound strategyOutcome = iota
	outcomeNotFound
	outcomeError
)

type strategyResult struct {
	outcome  strategyOutcome
	workerID string
	err      error
}

func found(workerID string) strategyResult {
	return strategyResult{outcome: outcomeFound, workerID: workerID}
}

var notFound = strategyResult{outcome: outcomeNotFound}

func failed(err error) strategyResult {
	return strategyResult{outcome: outcomeError, err: err}
}

type strategy struct {
	name string
	run  func(ctx context.Context) strategyResult
}

// Resolver derives the Workday worker identifier from validated claims. It
// tries an ordered list of strategies and returns the first hit; a strategy
// that errors is logged and skipped, never fatal, because the directory is a
// best-effort enrichment rather than the source of truth.
type Resolver struct {
	Directory DirectoryClient

	// Timeout bounds the whole fallback chain. Defaults to defaultResolveTimeout.
	Timeout time.Duration
}

// NewResolver creates a resolver backed by the given directory client.
func NewResolver(directory DirectoryClient) *Resolver {
	return &Resolver{Directory: directory, Timeout: defaultResolveTimeout}
}

// Resolve returns the worker identifier for the claims, or
// ErrWorkerIDNotResolved when no strategy succeeds.
func (r *Resolver) Resolve(ctx context.Context, claims *Claims) (string, error) {
	zap.L().Info("resolving worker id", zap.Strings("claims", claims.ClaimNames()))

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for _, s := range r.strategies(claims) {
		result := s.run(lookupCtx)
		switch result.outcome {
		case outcomeFound:
			return result.workerID, nil
		case outcomeError:
			zap.L().Warn("worker id strategy failed",
				zap.String("strategy", s.name), zap.Error(result.err))
		}
	}

	return "", ErrWorkerIDNotResolved
}

func (r *Resolver) strategies(claims *Claims) []strategy {
	username := claims.Username()

	return []strategy{
		{
			name: "directory-by-username",
			run: func(ctx context.Context) strategyResult {
				if username == "" {
					return notFound
				}
				return r.lookup(ctx, username)
			},
		},
		{
			name: "directory-by-object-id",
			run: func(ctx context.Context) strategyResult {
				if claims.ObjectID == "" {
					return notFound
				}
				return r.lookup(ctx, claims.ObjectID)
			},
		},
		{
			name: "employee-id-claim",
			run: func(ctx context.Context) strategyResult {
				if claims.EmployeeID == "" {
					return notFound
				}
				return found(claims.EmployeeID)
			},
		},
		{
			name: "username-local-part",
			run: func(ctx context.Context) strategyResult {
				if username == "" {
					return notFound
				}
				return found(localPart(username))
			},
		},
	}
}

func (r *Resolver) lookup(ctx context.Context, identifier string) strategyResult {
	if r.Directory == nil {
		return notFound
	}
	workerID, err := r.Directory.LookupEmployeeID(ctx, identifier)
	if err != nil {
		return failed(err)
	}
	if workerID == "" {
		return notFound
	}
	return found(workerID)
}
