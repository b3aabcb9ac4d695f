package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workday-mcp/pkg/client"
)

type fakeValidator struct {
	claims *Claims
	err    error
	calls  int
}

func (v *fakeValidator) Validate(ctx context.Context, token string) (*Claims, error) {
	v.calls++
	return v.claims, v.err
}

type fakeResolver struct {
	workerID string
	err      error
	calls    int
}

func (r *fakeResolver) Resolve(ctx context.Context, claims *Claims) (string, error) {
	r.calls++
	return r.workerID, r.err
}

type fakeTokenSource struct {
	token *Token
	err   error
	calls int
}

func (s *fakeTokenSource) GetAccessToken(ctx context.Context) (*Token, error) {
	s.calls++
	return s.token, s.err
}

type fakeWorkerFinder struct {
	worker *client.Worker
	err    error
	calls  int
}

func (f *fakeWorkerFinder) SearchWorker(ctx context.Context, accessToken, workerID string) (*client.Worker, error) {
	f.calls++
	return f.worker, f.err
}

func happyBuilder() (*Builder, *fakeValidator, *fakeResolver, *fakeTokenSource, *fakeWorkerFinder) {
	validator := &fakeValidator{claims: newClaims(jwt.MapClaims{"preferred_username": "alice@contoso.com"})}
	resolver := &fakeResolver{workerID: "E123"}
	tokens := &fakeTokenSource{token: &Token{AccessToken: "wd-token", TokenType: "Bearer"}}
	workers := &fakeWorkerFinder{worker: &client.Worker{ID: "wid-1", WorkerID: "E123", Descriptor: "Alice"}}

	builder := &Builder{Validator: validator, Resolver: resolver, Tokens: tokens, Workers: workers}
	return builder, validator, resolver, tokens, workers
}

func TestBuild(t *testing.T) {
	builder, _, _, _, _ := happyBuilder()

	wctx, err := builder.Build(context.Background(), "bearer-token")
	require.NoError(t, err)

	assert.Equal(t, "E123", wctx.WorkerID)
	assert.Equal(t, "wid-1", wctx.WorkdayID)
	assert.Equal(t, "wd-token", wctx.AccessToken)
	assert.Equal(t, "Alice", wctx.Worker.Descriptor)
}

func TestBuildWorkdayIDFallsBackToWorkerID(t *testing.T) {
	builder, _, _, _, workers := happyBuilder()
	workers.worker = &client.Worker{WorkerID: "E123"}

	wctx, err := builder.Build(context.Background(), "bearer-token")
	require.NoError(t, err)
	assert.Equal(t, "E123", wctx.WorkdayID)
}

func TestBuildFailsFast(t *testing.T) {
	t.Run("validation failure stops the chain", func(t *testing.T) {
		builder, validator, resolver, tokens, workers := happyBuilder()
		validator.claims = nil
		validator.err = ErrInvalidToken

		_, err := builder.Build(context.Background(), "bad-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Equal(t, 1, validator.calls)
		assert.Zero(t, resolver.calls)
		assert.Zero(t, tokens.calls)
		assert.Zero(t, workers.calls)
	})

	t.Run("resolution failure stops before credential exchange", func(t *testing.T) {
		builder, _, resolver, tokens, workers := happyBuilder()
		resolver.workerID = ""
		resolver.err = ErrWorkerIDNotResolved

		_, err := builder.Build(context.Background(), "bearer-token")
		assert.ErrorIs(t, err, ErrWorkerIDNotResolved)
		assert.Zero(t, tokens.calls)
		assert.Zero(t, workers.calls)
	})

	t.Run("exchange failure stops before worker search", func(t *testing.T) {
		builder, _, _, tokens, workers := happyBuilder()
		tokens.token = nil
		tokens.err = ErrCredentialExchange

		_, err := builder.Build(context.Background(), "bearer-token")
		assert.ErrorIs(t, err, ErrCredentialExchange)
		assert.Zero(t, workers.calls)
	})

	t.Run("worker search failure propagates unchanged", func(t *testing.T) {
		builder, _, _, _, workers := happyBuilder()
		workers.worker = nil
		workers.err = client.ErrWorkerNotFound

		_, err := builder.Build(context.Background(), "bearer-token")
		assert.ErrorIs(t, err, client.ErrWorkerNotFound)
	})
}

func TestBearerFromRequest(t *testing.T) {
	tests := map[string]struct {
		toolReq       *mcp.CallToolRequest
		expectedToken string
		expectedErr   error
	}{
		"valid bearer header": {
			toolReq: &mcp.CallToolRequest{
				Extra: &mcp.RequestExtra{Header: map[string][]string{"Authorization": {"Bearer abc123"}}},
			},
			expectedToken: "abc123",
		},
		"scheme is case insensitive": {
			toolReq: &mcp.CallToolRequest{
				Extra: &mcp.RequestExtra{Header: map[string][]string{"Authorization": {"bearer abc123"}}},
			},
			expectedToken: "abc123",
		},
		"nil request": {
			toolReq:     nil,
			expectedErr: ErrMissingCredential,
		},
		"missing header": {
			toolReq:     &mcp.CallToolRequest{Extra: &mcp.RequestExtra{Header: map[string][]string{}}},
			expectedErr: ErrMissingCredential,
		},
		"wrong scheme": {
			toolReq: &mcp.CallToolRequest{
				Extra: &mcp.RequestExtra{Header: map[string][]string{"Authorization": {"Basic abc123"}}},
			},
			expectedErr: ErrMissingCredential,
		},
		"empty token after scheme": {
			toolReq: &mcp.CallToolRequest{
				Extra: &mcp.RequestExtra{Header: map[string][]string{"Authorization": {"Bearer   "}}},
			},
			expectedErr: ErrMissingCredential,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			token, err := BearerFromRequest(test.toolReq)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.expectedToken, token)
			}
		})
	}
}

func TestFromRequestMissingCredentialSkipsValidation(t *testing.T) {
	builder, validator, _, _, _ := happyBuilder()

	_, err := builder.FromRequest(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Zero(t, validator.calls)
}
