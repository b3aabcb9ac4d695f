// Package response shapes tool payloads into MCP results.
package response

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Create marshals a tool payload into an MCP text result.
func Create(payload any) (*mcp.CallToolResult, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(encoded)}},
	}, nil
}
