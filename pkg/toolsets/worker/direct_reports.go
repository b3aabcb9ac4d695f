package worker

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

type directReport struct {
	IsManager                      bool   `json:"isManager"`
	PrimaryWorkPhone               string `json:"primaryWorkPhone,omitempty"`
	PrimaryWorkEmail               string `json:"primaryWorkEmail,omitempty"`
	PrimarySupervisoryOrganization string `json:"primarySupervisoryOrganization,omitempty"`
	BusinessTitle                  string `json:"businessTitle,omitempty"`
	Descriptor                     string `json:"descriptor,omitempty"`
}

type directReportsResult struct {
	Success       bool           `json:"success"`
	DirectReports []directReport `json:"directReports"`
}

// GetDirectReports lists the workers reporting to the current worker.
func (t *Tools) GetDirectReports(ctx context.Context, toolReq *mcp.CallToolRequest, params emptyParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	reports, err := t.workday.DirectReports(ctx, wctx.AccessToken, wctx.WorkdayID)
	if err != nil {
		logger.Error("failed to fetch direct reports", zap.Error(err))
		return nil, nil, err
	}

	flattened := make([]directReport, 0, len(reports))
	for _, item := range reports {
		flattened = append(flattened, directReport{
			IsManager:                      item.IsManager,
			PrimaryWorkPhone:               item.PrimaryWorkPhone,
			PrimaryWorkEmail:               item.PrimaryWorkEmail,
			PrimarySupervisoryOrganization: item.PrimarySupervisoryOrganization.Descriptor,
			BusinessTitle:                  item.BusinessTitle,
			Descriptor:                     item.Descriptor,
		})
	}

	result, err := response.Create(directReportsResult{Success: true, DirectReports: flattened})
	if err != nil {
		return nil, nil, err
	}

	return result, nil, nil
}
