package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workday-mcp/internal/auth"
	"workday-mcp/pkg/client"
)

var errDenied = errors.New("access token could not be validated")

type fakeBuilder struct {
	wctx  *auth.WorkerContext
	err   error
	calls int
}

func (b *fakeBuilder) FromRequest(ctx context.Context, toolReq *mcp.CallToolRequest) (*auth.WorkerContext, error) {
	b.calls++
	return b.wctx, b.err
}

type fakeWorkday struct {
	reports []client.DirectReport
	tasks   []client.InboxTask
	slips   []client.PaySlip
	titles  map[string]any
	err     error
	calls   int
}

func (f *fakeWorkday) DirectReports(ctx context.Context, accessToken, workdayID string) ([]client.DirectReport, error) {
	f.calls++
	return f.reports, f.err
}

func (f *fakeWorkday) InboxTasks(ctx context.Context, accessToken, workdayID string) ([]client.InboxTask, error) {
	f.calls++
	return f.tasks, f.err
}

func (f *fakeWorkday) PaySlips(ctx context.Context, accessToken, workdayID string) ([]client.PaySlip, error) {
	f.calls++
	return f.slips, f.err
}

func (f *fakeWorkday) ChangeBusinessTitle(ctx context.Context, accessToken, workdayID, proposedTitle string) (map[string]any, error) {
	f.calls++
	return f.titles, f.err
}

func testRequest(name string) *mcp.CallToolRequest {
	return &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: name},
		Extra:  &mcp.RequestExtra{Header: map[string][]string{"Authorization": {"Bearer test-token"}}},
	}
}

func testWorkerContext() *auth.WorkerContext {
	return &auth.WorkerContext{
		WorkerID:    "E123",
		WorkdayID:   "wid-1",
		AccessToken: "wd-token",
		Worker: &client.Worker{
			ID:         "wid-1",
			WorkerID:   "E123",
			Descriptor: "Alice Smith",
		},
	}
}

func TestGetWorker(t *testing.T) {
	tools := Tools{auth: &fakeBuilder{wctx: testWorkerContext()}}

	result, _, err := tools.GetWorker(context.Background(), testRequest("get_worker"), emptyParams{})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"workdayId": "wid-1",
		"workerId": "E123",
		"name": "Alice Smith"
	}`, result.Content[0].(*mcp.TextContent).Text)
}

func TestGetWorkerAuthFailure(t *testing.T) {
	builder := &fakeBuilder{err: errDenied}
	workday := &fakeWorkday{}
	tools := Tools{auth: builder, workday: workday}

	_, _, err := tools.GetWorker(context.Background(), testRequest("get_worker"), emptyParams{})
	assert.ErrorIs(t, err, errDenied)
	assert.Zero(t, workday.calls, "no workday call without a worker context")
}

func TestGetDirectReports(t *testing.T) {
	workday := &fakeWorkday{
		reports: []client.DirectReport{{
			Descriptor:       "Bob Jones",
			IsManager:        false,
			PrimaryWorkEmail: "bob@contoso.com",
			BusinessTitle:    "Engineer",
			PrimarySupervisoryOrganization: client.Ref{
				Descriptor: "Platform Team",
			},
		}},
	}
	tools := Tools{auth: &fakeBuilder{wctx: testWorkerContext()}, workday: workday}

	result, _, err := tools.GetDirectReports(context.Background(), testRequest("get_direct_reports"), emptyParams{})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"success": true,
		"directReports": [{
			"isManager": false,
			"primaryWorkEmail": "bob@contoso.com",
			"primarySupervisoryOrganization": "Platform Team",
			"businessTitle": "Engineer",
			"descriptor": "Bob Jones"
		}]
	}`, result.Content[0].(*mcp.TextContent).Text)
}

func TestGetInboxTasks(t *testing.T) {
	workday := &fakeWorkday{
		tasks: []client.InboxTask{{
			Descriptor: "Approve Expense Report",
			Assigned:   "2026-08-20",
			Status:     client.Ref{Descriptor: "Awaiting Action"},
		}},
	}
	tools := Tools{auth: &fakeBuilder{wctx: testWorkerContext()}, workday: workday}

	result, _, err := tools.GetInboxTasks(context.Background(), testRequest("get_inbox_tasks"), emptyParams{})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"success": true,
		"tasks": [{
			"assigned": "2026-08-20",
			"status": "Awaiting Action",
			"descriptor": "Approve Expense Report"
		}]
	}`, result.Content[0].(*mcp.TextContent).Text)
}

func TestGetPaySlipsAPIError(t *testing.T) {
	workday := &fakeWorkday{err: &client.APIError{StatusCode: 403, Message: "access denied"}}
	tools := Tools{auth: &fakeBuilder{wctx: testWorkerContext()}, workday: workday}

	_, _, err := tools.GetPaySlips(context.Background(), testRequest("get_pay_slips"), emptyParams{})
	assert.ErrorContains(t, err, "access denied")
}

func TestChangeBusinessTitle(t *testing.T) {
	workday := &fakeWorkday{titles: map[string]any{"descriptor": "Title Change"}}
	tools := Tools{auth: &fakeBuilder{wctx: testWorkerContext()}, workday: workday}

	result, _, err := tools.ChangeBusinessTitle(context.Background(), testRequest("change_business_title"),
		changeTitleParams{ProposedBusinessTitle: "Principal Engineer"})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"success": true,
		"message": "Business title change request submitted",
		"changeDetails": {"descriptor": "Title Change"}
	}`, result.Content[0].(*mcp.TextContent).Text)
}

func TestChangeBusinessTitleMissingParam(t *testing.T) {
	workday := &fakeWorkday{}
	tools := Tools{auth: &fakeBuilder{wctx: testWorkerContext()}, workday: workday}

	_, _, err := tools.ChangeBusinessTitle(context.Background(), testRequest("change_business_title"), changeTitleParams{})
	assert.ErrorContains(t, err, "proposedBusinessTitle is required")
	assert.Zero(t, workday.calls)
}

func TestChangeBusinessTitleAuthGateRunsFirst(t *testing.T) {
	builder := &fakeBuilder{err: errDenied}
	workday := &fakeWorkday{}
	tools := Tools{auth: builder, workday: workday}

	// even with no arguments, the credential failure wins
	_, _, err := tools.ChangeBusinessTitle(context.Background(), testRequest("change_business_title"), changeTitleParams{})
	assert.ErrorIs(t, err, errDenied)
	assert.Equal(t, 1, builder.calls)
	assert.Zero(t, workday.calls)
}
