package worker

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

type inboxTask struct {
	Assigned       string `json:"assigned,omitempty"`
	Due            string `json:"due,omitempty"`
	Initiator      string `json:"initiator,omitempty"`
	Status         string `json:"status,omitempty"`
	StepType       string `json:"stepType,omitempty"`
	Subject        string `json:"subject,omitempty"`
	OverallProcess string `json:"overallProcess,omitempty"`
	Descriptor     string `json:"descriptor,omitempty"`
}

type inboxTasksResult struct {
	Success bool        `json:"success"`
	Tasks   []inboxTask `json:"tasks"`
}

// GetInboxTasks lists the current worker's pending Workday inbox tasks.
func (t *Tools) GetInboxTasks(ctx context.Context, toolReq *mcp.CallToolRequest, params emptyParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	tasks, err := t.workday.InboxTasks(ctx, wctx.AccessToken, wctx.WorkdayID)
	if err != nil {
		logger.Error("failed to fetch inbox tasks", zap.Error(err))
		return nil, nil, err
	}

	flattened := make([]inboxTask, 0, len(tasks))
	for _, item := range tasks {
		flattened = append(flattened, inboxTask{
			Assigned:       item.Assigned,
			Due:            item.Due,
			Initiator:      item.Initiator.Descriptor,
			Status:         item.Status.Descriptor,
			StepType:       item.StepType.Descriptor,
			Subject:        item.Subject.Descriptor,
			OverallProcess: item.OverallProcess.Descriptor,
			Descriptor:     item.Descriptor,
		})
	}

	result, err := response.Create(inboxTasksResult{Success: true, Tasks: flattened})
	if err != nil {
		return nil, nil, err
	}

	return result, nil, nil
}
