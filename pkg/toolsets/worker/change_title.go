package worker

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

type changeTitleParams struct {
	ProposedBusinessTitle string `json:"proposedBusinessTitle" jsonschema:"the new business title to request"`
}

type changeTitleResult struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	ChangeDetails map[string]any `json:"changeDetails"`
}

// ChangeBusinessTitle submits a business title change request for the current
// worker. This is a mutation: a timeout leaves the outcome unknown and the
// call is never retried.
func (t *Tools) ChangeBusinessTitle(ctx context.Context, toolReq *mcp.CallToolRequest, params changeTitleParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	if params.ProposedBusinessTitle == "" {
		return nil, nil, fmt.Errorf("proposedBusinessTitle is required")
	}

	details, err := t.workday.ChangeBusinessTitle(ctx, wctx.AccessToken, wctx.WorkdayID, params.ProposedBusinessTitle)
	if err != nil {
		logger.Error("failed to submit business title change", zap.Error(err))
		return nil, nil, err
	}

	result, err := response.Create(changeTitleResult{
		Success:       true,
		Message:       "Business title change request submitted",
		ChangeDetails: details,
	})
	if err != nil {
		return nil, nil, err
	}

	return result, nil, nil
}
