package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/onboard/internal/adapters/driving/mcp"
)

var mcpAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so other AI assistants can
resolve citations, highlight quotes and ask the onboarding assistant.

By default, the server communicates over stdio using JSON-RPC.
Use --addr to serve over HTTP instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  onboard mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  onboard mcp serve --addr :8090

Desktop assistant configuration:
  {
    "mcpServers": {
      "onboard": {
        "command": "/path/to/onboard",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringVarP(&mcpAddr, "addr", "a", "", "HTTP listen address (empty = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Chat:       chatService,
		Citation:   citationService,
		References: referenceService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if mcpAddr != "" {
		cmd.Printf("MCP server listening on http://%s\n", displayAddr(mcpAddr))
		return server.RunHTTP(cmd.Context(), mcpAddr)
	}

	return server.Run(cmd.Context())
}
