package toolsets

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"workday-mcp/internal/auth"
	"workday-mcp/pkg/client"
	"workday-mcp/pkg/toolsets/absence"
	"workday-mcp/pkg/toolsets/learning"
	"workday-mcp/pkg/toolsets/worker"
)

// toolsAdder is an interface for types that can add tools to an MCP server.
type toolsAdder interface {
	AddTools(mcpServer *mcp.Server)
}

// AddAllTools adds all available tools to the MCP server.
func AddAllTools(builder *auth.Builder, workday *client.Client, mcpServer *mcp.Server) {
	for _, ta := range allToolSets(builder, workday) {
		ta.AddTools(mcpServer)
	}
}

func allToolSets(builder *auth.Builder, workday *client.Client) []toolsAdder {
	return []toolsAdder{
		worker.NewTools(builder, workday),
		absence.NewTools(builder, workday),
		learning.NewTools(builder, workday),
	}
}
