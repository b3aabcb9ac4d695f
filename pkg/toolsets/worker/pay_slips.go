package worker

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

type paySlip struct {
	Gross      json.Number `json:"gross,omitempty"`
	Status     string      `json:"status,omitempty"`
	Net        json.Number `json:"net,omitempty"`
	Date       string      `json:"date,omitempty"`
	Descriptor string      `json:"descriptor,omitempty"`
}

type paySlipsResult struct {
	Success  bool      `json:"success"`
	PaySlips []paySlip `json:"paySlips"`
}

// GetPaySlips lists the current worker's recent pay slips.
func (t *Tools) GetPaySlips(ctx context.Context, toolReq *mcp.CallToolRequest, params emptyParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	slips, err := t.workday.PaySlips(ctx, wctx.AccessToken, wctx.WorkdayID)
	if err != nil {
		logger.Error("failed to fetch pay slips", zap.Error(err))
		return nil, nil, err
	}

	flattened := make([]paySlip, 0, len(slips))
	for _, item := range slips {
		flattened = append(flattened, paySlip{
			Gross:      item.Gross,
			Status:     item.Status.Descriptor,
			Net:        item.Net,
			Date:       item.Date,
			Descriptor: item.Descriptor,
		})
	}

	result, err := response.Create(paySlipsResult{Success: true, PaySlips: flattened})
	if err != nil {
		return nil, nil, err
	}

	return result, nil, nil
}
