package learning

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"workday-mcp/pkg/client"
	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

type learningAssignment struct {
	Content  string `json:"content,omitempty"`
	Status   string `json:"status,omitempty"`
	DueDate  string `json:"dueDate,omitempty"`
	Overdue  bool   `json:"overdue"`
	Required bool   `json:"required"`
}

type assignmentsResult struct {
	Success     bool                 `json:"success"`
	Assignments []learningAssignment `json:"assignments"`
}

// GetLearningAssignments handles the get_learning_assignments tool call.
func (t *Tools) GetLearningAssignments(ctx context.Context, toolReq *mcp.CallToolRequest, _ emptyParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	assignments, err := t.workday.LearningAssignments(ctx, wctx.AccessToken, wctx.WorkdayID)
	if err != nil {
		logger.Error("failed to get learning assignments", zap.Error(err))
		return nil, nil, err
	}

	result := assignmentsResult{Success: true, Assignments: flattenAssignments(assignments)}

	callResult, err := response.Create(result)
	return callResult, nil, err
}

// flattenAssignments converts report rows into the tool result shape. The
// custom report encodes booleans as "1"/"0" strings.
func flattenAssignments(assignments []client.LearningAssignment) []learningAssignment {
	out := make([]learningAssignment, 0, len(assignments))
	for _, item := range assignments {
		out = append(out, learningAssignment{
			Content:  item.LearningContent,
			Status:   item.AssignmentStatus,
			DueDate:  item.DueDate,
			Overdue:  item.Overdue == "1",
			Required: item.Required == "1",
		})
	}
	return out
}
