// Package learning implements the learning tools: required learning
// assignments and catalog search with lesson details.
package learning

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"workday-mcp/internal/auth"
	"workday-mcp/pkg/client"
)

type contextBuilder interface {
	FromRequest(ctx context.Context, toolReq *mcp.CallToolRequest) (*auth.WorkerContext, error)
}

type workdayAPI interface {
	LearningAssignments(ctx context.Context, accessToken, workdayID string) ([]client.LearningAssignment, error)
	SearchLearningContent(ctx context.Context, accessToken string, skills, topics []string) ([]client.LearningContent, error)
	Lessons(ctx context.Context, accessToken, contentID string) ([]client.Lesson, error)
}

// Tools contains the learning tools for the MCP server.
type Tools struct {
	auth    contextBuilder
	workday workdayAPI
}

// NewTools creates and returns a new Tools instance.
func NewTools(builder *auth.Builder, workday *client.Client) *Tools {
	return &Tools{auth: builder, workday: workday}
}

// AddTools registers the learning tools on the MCP server.
func (t *Tools) AddTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_learning_assignments",
		Description: "List required learning assignments for the current worker, including due dates and overdue status."},
		t.GetLearningAssignments)
	mcp.AddTool(server, &mcp.Tool{
		Name: "search_learning_content",
		Description: `Search the learning catalog by skills and topics.
Parameters:
skills (array of strings): Skill names to filter on.
topics (array of strings): Topic names to filter on.`},
		t.SearchLearningContent)
}

type emptyParams struct{}
