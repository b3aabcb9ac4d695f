package cmd

import (
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"workday-mcp/internal/auth"
	"workday-mcp/internal/config"
	"workday-mcp/internal/middleware"
	"workday-mcp/pkg/client"
	"workday-mcp/pkg/toolsets"
	"workday-mcp/pkg/version"
)

var (
	transport      string
	host           string
	port           int
	authzServerURL string
	resourceURL    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long:  `Start the MCP server exposing the Workday tools over stdio or streamable HTTP`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&transport, "transport", "stdio", "Transport to serve on (stdio or http)")
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "Host to listen on (http transport)")
	serveCmd.Flags().IntVar(&port, "port", 8000, "Port to listen on (http transport)")

	serveCmd.Flags().StringVar(&authzServerURL, "authz-server-url", "", "Authorization Server URL - advertised in the protected resource metadata")
	serveCmd.Flags().StringVar(&resourceURL, "resource-url", "", "Resource URL for this server - this should be the address to access the MCP server")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	workday := client.NewClient(cfg)
	builder := auth.NewBuilder(cfg, workday)

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: "workday-mcp-server", Version: version.GetVersion()}, nil)
	toolsets.AddAllTools(builder, workday, mcpServer)

	switch transport {
	case "http":
		return serveHTTP(cmd, cfg, mcpServer)
	case "stdio":
		zap.L().Info("MCP server started", zap.String("transport", "stdio"))
		return mcpServer.Run(cmd.Context(), &mcp.StdioTransport{})
	default:
		return fmt.Errorf("unknown transport %q: expected stdio or http", transport)
	}
}

func serveHTTP(cmd *cobra.Command, cfg *config.Config, mcpServer *mcp.Server) error {
	handler := mcp.NewStreamableHTTPHandler(func(request *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{})

	authzURL := authzServerURL
	if authzURL == "" {
		authzURL = cfg.Entra.Issuer()
	}

	metadata := middleware.NewResourceMetadata(authzURL, resourceURL, []string{"workday_read"})

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/oauth-protected-resource", metadata.HandleProtectedResourceMetadata)
	mux.Handle("/", middleware.CORS(handler))

	addr := fmt.Sprintf("%s:%d", host, port)
	zap.L().Info("MCP server started", zap.String("transport", "http"), zap.String("addr", addr))

	return http.ListenAndServe(addr, mux)
}
