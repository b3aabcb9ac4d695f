package absence

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"workday-mcp/pkg/client"
	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

type prepareLeaveParams struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Quantity  string `json:"quantity,omitempty"`
	Unit      string `json:"unit,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// requestParameters echoes the caller's leave request inputs with defaults
// applied, ready to feed into book_leave.
type requestParameters struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Quantity  string `json:"quantity"`
	Unit      string `json:"unit"`
	Reason    string `json:"reason"`
}

// bookingGuidance tells the model how to turn the prepared data into a
// book_leave call.
type bookingGuidance struct {
	TimeFormat          string `json:"timeFormat"`
	DefaultWorkingHours struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"defaultWorkingHours"`
	QuantityCalculation string `json:"quantityCalculation"`
}

type prepareRequestLeaveResult struct {
	Success       bool              `json:"success"`
	Parameters    requestParameters `json:"requestParameters"`
	AbsenceTypes  []absenceType     `json:"eligibleAbsenceTypes"`
	Balances      []leaveBalance    `json:"balances"`
	BookedTimeOff []bookedTimeOff   `json:"bookedTimeOff"`
	Guidance      bookingGuidance   `json:"bookingGuidance"`
}

// PrepareRequestLeave handles the prepare_request_leave tool call. It gathers
// everything a caller needs to construct a valid book_leave request; any
// parameters the caller omits are resolved to defaults and echoed back.
func (t *Tools) PrepareRequestLeave(ctx context.Context, toolReq *mcp.CallToolRequest, params prepareLeaveParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	resolved := resolveRequestParameters(params)

	var (
		types    []client.AbsenceType
		balances []client.AbsenceBalance
		details  []client.TimeOffDetail
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		types, err = t.workday.EligibleAbsenceTypes(groupCtx, wctx.AccessToken, wctx.WorkdayID)
		return err
	})
	group.Go(func() error {
		var err error
		balances, err = t.workday.LeaveBalances(groupCtx, wctx.AccessToken, wctx.WorkdayID)
		return err
	})
	group.Go(func() error {
		var err error
		details, err = t.workday.TimeOffDetails(groupCtx, wctx.AccessToken, wctx.WorkdayID)
		return err
	})
	if err := group.Wait(); err != nil {
		logger.Error("failed to prepare leave request data", zap.Error(err))
		return nil, nil, err
	}

	guidance := bookingGuidance{
		TimeFormat:          "ISO 8601, e.g. 2025-06-02T08:00:00.000Z",
		QuantityCalculation: "For Days, each booked day carries a daily quantity of 8 hours. For Hours, the quantity is applied to each day as given.",
	}
	guidance.DefaultWorkingHours.Start = "08:00"
	guidance.DefaultWorkingHours.End = "17:00"

	result := prepareRequestLeaveResult{
		Success:       true,
		Parameters:    resolved,
		AbsenceTypes:  flattenAbsenceTypes(types),
		Balances:      flattenBalances(balances),
		BookedTimeOff: flattenTimeOffDetails(details),
		Guidance:      guidance,
	}

	callResult, err := response.Create(result)
	return callResult, nil, err
}

// resolveRequestParameters fills absent parameters with the defaults:
// tomorrow for both dates, one day of vacation.
func resolveRequestParameters(params prepareLeaveParams) requestParameters {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(dateLayout)

	resolved := requestParameters{
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
		Quantity:  params.Quantity,
		Unit:      params.Unit,
		Reason:    params.Reason,
	}
	if resolved.StartDate == "" {
		resolved.StartDate = tomorrow
	}
	if resolved.EndDate == "" {
		resolved.EndDate = tomorrow
	}
	if resolved.Quantity == "" {
		resolved.Quantity = "1"
	}
	if resolved.Unit == "" {
		resolved.Unit = "Days"
	}
	if resolved.Reason == "" {
		resolved.Reason = "Vacation"
	}

	return resolved
}
