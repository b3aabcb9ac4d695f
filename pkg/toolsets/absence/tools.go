// Package absence implements the leave and time-off tools: balances, booked
// time off, leave request preparation, and leave booking.
package absence

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"workday-mcp/internal/auth"
	"workday-mcp/pkg/client"
)

type contextBuilder interface {
	FromRequest(ctx context.Context, toolReq *mcp.CallToolRequest) (*auth.WorkerContext, error)
}

// workdayAPI is the slice of the Workday client this toolset uses.
type workdayAPI interface {
	LeaveBalances(ctx context.Context, accessToken, workdayID string) ([]client.AbsenceBalance, error)
	EligibleAbsenceTypes(ctx context.Context, accessToken, workdayID string) ([]client.AbsenceType, error)
	LeavesOfAbsence(ctx context.Context, accessToken, workdayID string) ([]client.LeaveOfAbsence, error)
	TimeOffDetails(ctx context.Context, accessToken, workdayID string) ([]client.TimeOffDetail, error)
	TimeOffEntries(ctx context.Context, accessToken, workdayID string) ([]client.TimeOffEntry, error)
	RequestTimeOff(ctx context.Context, accessToken, workdayID string, request client.TimeOffRequest) (*client.BookingResponse, error)
}

// Tools contains the absence tools for the MCP server.
type Tools struct {
	auth    contextBuilder
	workday workdayAPI
}

// NewTools creates and returns a new Tools instance.
func NewTools(builder *auth.Builder, workday *client.Client) *Tools {
	return &Tools{auth: builder, workday: workday}
}

// AddTools registers the absence tools on the MCP server.
func (t *Tools) AddTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_leave_balances",
		Description: "Retrieve leave balances, eligible absence types, leaves of absence, and booked time off for the current worker."},
		t.GetLeaveBalances)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_time_off_entries",
		Description: "List time off entries for the current worker."},
		t.GetTimeOffEntries)
	mcp.AddTool(server, &mcp.Tool{
		Name: "prepare_request_leave",
		Description: `Prepare the data needed to submit a leave request: eligible absence types, balances, booked time off, and booking guidance.
Optional parameters (startDate, endDate, quantity, unit, reason) are resolved to defaults and echoed back as requestParameters.`},
		t.PrepareRequestLeave)
	mcp.AddTool(server, &mcp.Tool{
		Name: "book_leave",
		Description: `Submit a leave request to Workday for the current worker.
Parameters:
startDate (string): First day of leave, YYYY-MM-DD.
endDate (string): Last day of leave, YYYY-MM-DD.
timeOffTypeId (string): The absence type id, from prepare_request_leave.
quantity (string): Daily quantity. Ignored when unit is Days.
unit (string): Days or Hours.
reason (string): Comment attached to each day.`},
		t.BookLeave)
}

type emptyParams struct{}

// leaveBalance is the flattened view of one absence plan balance.
type leaveBalance struct {
	PlanName      string      `json:"planName,omitempty"`
	PlanID        string      `json:"planId,omitempty"`
	Balance       json.Number `json:"balance"`
	Unit          string      `json:"unit,omitempty"`
	EffectiveDate string      `json:"effectiveDate,omitempty"`
	TimeOffTypes  string      `json:"timeOffTypes,omitempty"`
}

type absenceType struct {
	Name     string `json:"name,omitempty"`
	ID       string `json:"id,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Category string `json:"category,omitempty"`
	Group    string `json:"group,omitempty"`
}

type leaveOfAbsence struct {
	ID               string `json:"id,omitempty"`
	LeaveType        string `json:"leaveType,omitempty"`
	Status           string `json:"status,omitempty"`
	FirstDayOfLeave  string `json:"firstDayOfLeave,omitempty"`
	LastDayOfWork    string `json:"lastDayOfWork,omitempty"`
	EstimatedLastDay string `json:"estimatedLastDay,omitempty"`
	Comment          string `json:"comment"`
}

type bookedTimeOff struct {
	Date        string      `json:"date,omitempty"`
	TimeOffType string      `json:"timeOffType,omitempty"`
	Quantity    json.Number `json:"quantity,omitempty"`
	Unit        string      `json:"unit,omitempty"`
	Status      string      `json:"status,omitempty"`
	Comment     string      `json:"comment"`
}

func flattenBalances(balances []client.AbsenceBalance) []leaveBalance {
	out := make([]leaveBalance, 0, len(balances))
	for _, item := range balances {
		balance := item.Quantity
		if balance == "" {
			balance = "0"
		}
		out = append(out, leaveBalance{
			PlanName:      item.AbsencePlan.Descriptor,
			PlanID:        item.AbsencePlan.ID,
			Balance:       balance,
			Unit:          item.Unit.Descriptor,
			EffectiveDate: item.EffectiveDate,
			TimeOffTypes:  item.AbsencePlan.TimeOffs,
		})
	}
	return out
}

func flattenAbsenceTypes(types []client.AbsenceType) []absenceType {
	out := make([]absenceType, 0, len(types))
	for _, item := range types {
		out = append(out, absenceType{
			Name:     item.Descriptor,
			ID:       item.ID,
			Unit:     item.UnitOfTime.Descriptor,
			Category: item.Category.Descriptor,
			Group:    item.AbsenceTypeGroup.Descriptor,
		})
	}
	return out
}

func flattenLeaves(leaves []client.LeaveOfAbsence) []leaveOfAbsence {
	out := make([]leaveOfAbsence, 0, len(leaves))
	for _, item := range leaves {
		out = append(out, leaveOfAbsence{
			ID:               item.ID,
			LeaveType:        item.LeaveType.Descriptor,
			Status:           item.Status.Descriptor,
			FirstDayOfLeave:  item.FirstDayOfLeave,
			LastDayOfWork:    item.LastDayOfWork,
			EstimatedLastDay: item.EstimatedLastDayOfLeave,
			Comment:          item.LatestLeaveComment,
		})
	}
	return out
}

func flattenTimeOffDetails(details []client.TimeOffDetail) []bookedTimeOff {
	out := make([]bookedTimeOff, 0, len(details))
	for _, item := range details {
		out = append(out, bookedTimeOff{
			Date:        item.Date,
			TimeOffType: item.TimeOffType.Descriptor,
			Quantity:    item.Quantity,
			Unit:        item.Unit.Descriptor,
			Status:      item.Status.Descriptor,
			Comment:     item.Comment,
		})
	}
	return out
}
