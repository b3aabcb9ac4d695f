package toolsets

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workday-mcp/internal/auth"
	"workday-mcp/pkg/client"
)

func TestAllToolSets(t *testing.T) {
	adders := allToolSets(&auth.Builder{}, &client.Client{})
	assert.Len(t, adders, 3)
}

func TestAddAllTools(t *testing.T) {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "test-server",
		Version: "v1.0.0",
	}, nil)
	require.NotNil(t, mcpServer)

	AddAllTools(&auth.Builder{}, &client.Client{}, mcpServer)

	handler := mcp.NewStreamableHTTPHandler(func(request *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	server := &http.Server{Handler: handler}
	go func() {
		server.Serve(listener)
	}()
	defer server.Shutdown(context.Background())

	ctx := context.Background()
	transport := &mcp.StreamableClientTransport{
		Endpoint: "http://" + listener.Addr().String(),
	}
	mcpClient := mcp.NewClient(&mcp.Implementation{Name: "mcp-client", Version: "v1.0.0"}, nil)

	var cs *mcp.ClientSession
	assert.Eventually(t, func() bool {
		var err error
		cs, err = mcpClient.Connect(ctx, transport, nil)
		return err == nil
	}, 2*time.Second, 100*time.Millisecond, "server should start within 2 seconds")

	require.NotNil(t, cs)
	defer cs.Close()

	toolsResult, err := cs.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, 0, len(toolsResult.Tools))
	for _, tool := range toolsResult.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"get_worker",
		"get_direct_reports",
		"get_inbox_tasks",
		"get_pay_slips",
		"change_business_title",
		"get_leave_balances",
		"get_time_off_entries",
		"prepare_request_leave",
		"book_leave",
		"get_learning_assignments",
		"search_learning_content",
	}, names)
}
