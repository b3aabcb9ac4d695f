// Package worker implements the worker-profile tools: profile, direct
// reports, inbox tasks, pay slips, and business title changes.
package worker

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"workday-mcp/internal/auth"
	"workday-mcp/pkg/client"
)

// contextBuilder is the per-call gate: it authenticates the inbound request
// and resolves the caller into a worker context before any business logic.
type contextBuilder interface {
	FromRequest(ctx context.Context, toolReq *mcp.CallToolRequest) (*auth.WorkerContext, error)
}

// workdayAPI is the slice of the Workday client this toolset uses.
type workdayAPI interface {
	DirectReports(ctx context.Context, accessToken, workdayID string) ([]client.DirectReport, error)
	InboxTasks(ctx context.Context, accessToken, workdayID string) ([]client.InboxTask, error)
	PaySlips(ctx context.Context, accessToken, workdayID string) ([]client.PaySlip, error)
	ChangeBusinessTitle(ctx context.Context, accessToken, workdayID, proposedTitle string) (map[string]any, error)
}

// Tools contains the worker tools for the MCP server.
type Tools struct {
	auth    contextBuilder
	workday workdayAPI
}

// NewTools creates and returns a new Tools instance.
func NewTools(builder *auth.Builder, workday *client.Client) *Tools {
	return &Tools{auth: builder, workday: workday}
}

// AddTools registers the worker tools on the MCP server.
func (t *Tools) AddTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_worker",
		Description: "Get the current Workday worker profile."},
		t.GetWorker)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_direct_reports",
		Description: "List direct reports for the current worker."},
		t.GetDirectReports)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_inbox_tasks",
		Description: "List Workday inbox tasks for the current worker."},
		t.GetInboxTasks)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_pay_slips",
		Description: "List recent Workday pay slips for the current worker."},
		t.GetPaySlips)
	mcp.AddTool(server, &mcp.Tool{
		Name: "change_business_title",
		Description: `Request a business title change for the current worker.
Parameters:
proposedBusinessTitle (string): The new business title to request.`},
		t.ChangeBusinessTitle)
}

// emptyParams is used by tools that take no arguments; the caller's identity
// comes from the transport-level bearer token, never from tool arguments.
type emptyParams struct{}
