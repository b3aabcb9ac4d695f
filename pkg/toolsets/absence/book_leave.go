package absence

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"workday-mcp/pkg/client"
	"workday-mcp/pkg/response"
	"workday-mcp/pkg/utils"
)

const dateLayout = "2006-01-02"

type bookLeaveParams struct {
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	TimeOffTypeID string `json:"timeOffTypeId"`
	Quantity      string `json:"quantity,omitempty"`
	Unit          string `json:"unit,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

type bookLeaveResult struct {
	Success         bool           `json:"success"`
	Message         string         `json:"message"`
	BusinessProcess string         `json:"businessProcess,omitempty"`
	Status          string         `json:"status,omitempty"`
	Transaction     string         `json:"transactionStatus,omitempty"`
	DaysBooked      int            `json:"daysBooked"`
	TotalQuantity   float64        `json:"totalQuantity"`
	Unit            string         `json:"unit"`
	WorkdayResponse map[string]any `json:"workdayResponse,omitempty"`
}

// BookLeave handles the book_leave tool call. It expands the requested date
// range into per-day entries and submits a single time-off request. The
// submission is never retried: a timeout may still have been booked.
func (t *Tools) BookLeave(ctx context.Context, toolReq *mcp.CallToolRequest, params bookLeaveParams) (*mcp.CallToolResult, any, error) {
	logger := utils.NewChildLogger(toolReq, nil)

	wctx, err := t.auth.FromRequest(ctx, toolReq)
	if err != nil {
		logger.Error("failed to build worker context", zap.Error(err))
		return nil, nil, err
	}

	if params.StartDate == "" || params.EndDate == "" || params.TimeOffTypeID == "" {
		return nil, nil, fmt.Errorf("startDate, endDate and timeOffTypeId are required")
	}
	if params.Quantity == "" {
		params.Quantity = "8"
	}
	if params.Unit == "" {
		params.Unit = "Hours"
	}
	if params.Reason == "" {
		params.Reason = "Time off request"
	}

	days, err := daysForRange(params)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("booking leave",
		zap.String("startDate", params.StartDate),
		zap.String("endDate", params.EndDate),
		zap.Int("days", len(days)))

	booking, err := t.workday.RequestTimeOff(ctx, wctx.AccessToken, wctx.WorkdayID, client.TimeOffRequest{Days: days})
	if err != nil {
		logger.Error("failed to book leave", zap.Error(err))
		return nil, nil, err
	}

	var total float64
	for _, day := range days {
		quantity, err := strconv.ParseFloat(day.DailyQuantity, 64)
		if err != nil {
			continue
		}
		total += quantity
	}

	// the response's day list is authoritative when the API returns one
	daysBooked := len(booking.Days)
	if daysBooked == 0 {
		daysBooked = len(days)
	}

	result := bookLeaveResult{
		Success:         true,
		Message:         fmt.Sprintf("Leave request submitted for %s to %s", params.StartDate, params.EndDate),
		BusinessProcess: booking.BusinessProcessParameters.OverallBusinessProcess.Descriptor,
		Status:          booking.BusinessProcessParameters.OverallStatus,
		Transaction:     booking.BusinessProcessParameters.TransactionStatus.Descriptor,
		DaysBooked:      daysBooked,
		TotalQuantity:   total,
		Unit:            params.Unit,
		WorkdayResponse: booking.Raw,
	}

	callResult, err := response.Create(result)
	return callResult, nil, err
}

// daysForRange expands an inclusive date range into one entry per calendar
// day. When the unit is Days, each day carries a standard 8 hour quantity;
// otherwise the given quantity applies to each day as-is.
func daysForRange(params bookLeaveParams) ([]client.TimeOffDay, error) {
	start, err := time.Parse(dateLayout, params.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate %q: expected YYYY-MM-DD", params.StartDate)
	}
	end, err := time.Parse(dateLayout, params.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate %q: expected YYYY-MM-DD", params.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("endDate %s is before startDate %s", params.EndDate, params.StartDate)
	}

	dailyQuantity := params.Quantity
	if strings.EqualFold(params.Unit, "days") {
		dailyQuantity = "8"
	}

	var days []client.TimeOffDay
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(dateLayout)
		// the API expects the date as a timestamp, not a bare calendar day
		days = append(days, client.TimeOffDay{
			Date:          date + "T08:00:00.000Z",
			Start:         date + "T08:00:00.000Z",
			End:           date + "T17:00:00.000Z",
			DailyQuantity: dailyQuantity,
			Comment:       params.Reason,
			TimeOffType:   client.Ref{ID: params.TimeOffTypeID},
		})
	}
	return days, nil
}
