package absence

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"workday-mcp/pkg/client"
	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

type timeOffEntry struct {
	Description   string      `json:"description,omitempty"`
	Date          string      `json:"date,omitempty"`
	Units         json.Number `json:"units,omitempty"`
	UnitOfTime    string      `json:"unitOfTime,omitempty"`
	TimeOffType   string      `json:"timeOffType,omitempty"`
	Plan          string      `json:"plan,omitempty"`
	RequestStatus string      `json:"requestStatus,omitempty"`
}

type timeOffEntriesResult struct {
	Success bool           `json:"success"`
	Entries []timeOffEntry `json:"timeOffEntries"`
}

// GetTimeOffEntries handles the get_time_off_entries tool call.
func (t *Tools) GetTimeOffEntries(ctx context.Context, toolReq *mcp.CallToolRequest, _ emptyParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	entries, err := t.workday.TimeOffEntries(ctx, wctx.AccessToken, wctx.WorkdayID)
	if err != nil {
		logger.Error("failed to get time off entries", zap.Error(err))
		return nil, nil, err
	}

	result := timeOffEntriesResult{Success: true, Entries: flattenTimeOffEntries(entries)}

	callResult, err := response.Create(result)
	return callResult, nil, err
}

func flattenTimeOffEntries(entries []client.TimeOffEntry) []timeOffEntry {
	out := make([]timeOffEntry, 0, len(entries))
	for _, item := range entries {
		out = append(out, timeOffEntry{
			Description:   item.Descriptor,
			Date:          item.Date,
			Units:         item.Units,
			UnitOfTime:    item.UnitOfTime.Descriptor,
			TimeOffType:   item.TimeOff.Descriptor,
			Plan:          item.TimeOff.Plan.Descriptor,
			RequestStatus: item.TimeOffRequest.Status,
		})
	}
	return out
}
