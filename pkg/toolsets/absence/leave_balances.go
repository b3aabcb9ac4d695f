package absence

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"workday-mcp/pkg/client"
	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

type leaveBalancesResult struct {
	Success       bool             `json:"success"`
	Balances      []leaveBalance   `json:"balances"`
	AbsenceTypes  []absenceType    `json:"eligibleAbsenceTypes"`
	Leaves        []leaveOfAbsence `json:"leavesOfAbsence"`
	BookedTimeOff []bookedTimeOff  `json:"bookedTimeOff"`
}

// GetLeaveBalances handles the get_leave_balances tool call. The four absence
// reads are independent, so they run concurrently.
func (t *Tools) GetLeaveBalances(ctx context.Context, toolReq *mcp.CallToolRequest, _ emptyParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	var (
		balances []client.AbsenceBalance
		types    []client.AbsenceType
		leaves   []client.LeaveOfAbsence
		details  []client.TimeOffDetail
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		balances, err = t.workday.LeaveBalances(groupCtx, wctx.AccessToken, wctx.WorkdayID)
		return err
	})
	group.Go(func() error {
		var err error
		types, err = t.workday.EligibleAbsenceTypes(groupCtx, wctx.AccessToken, wctx.WorkdayID)
		return err
	})
	group.Go(func() error {
		var err error
		leaves, err = t.workday.LeavesOfAbsence(groupCtx, wctx.AccessToken, wctx.WorkdayID)
		return err
	})
	group.Go(func() error {
		var err error
		details, err = t.workday.TimeOffDetails(groupCtx, wctx.AccessToken, wctx.WorkdayID)
		return err
	})
	if err := group.Wait(); err != nil {
		logger.Error("failed to get absence data", zap.Error(err))
		return nil, nil, err
	}

	result := leaveBalancesResult{
		Success:       true,
		Balances:      flattenBalances(balances),
		AbsenceTypes:  flattenAbsenceTypes(types),
		Leaves:        flattenLeaves(leaves),
		BookedTimeOff: flattenTimeOffDetails(details),
	}

	callResult, err := response.Create(result)
	return callResult, nil, err
}
