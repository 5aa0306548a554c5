package cli

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/onboard/internal/adapters/driving/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve the JSON API a browser chat widget talks to.

Endpoints:
  GET    /health
  GET    /api/v1/chat/messages
  POST   /api/v1/chat/messages              (409 while a reply is pending)
  GET    /api/v1/references
  GET    /api/v1/references/:index/highlight?quote=
  GET    /api/v1/documents[?role=]
  POST   /api/v1/documents                  (multipart file, or JSON text/url)
  GET    /api/v1/documents/:id
  DELETE /api/v1/documents/:id
  GET    /api/v1/roles
  POST   /api/v1/roles
  DELETE /api/v1/roles/:id`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from ONBOARD_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := serverConfig
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	server, err := web.NewServer(&web.Ports{
		Chat:       chatService,
		Citation:   citationService,
		References: referenceService,
		Documents:  documentService,
	}, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Serving onboard API on http://%s\n", displayAddr(server.Addr()))
	return server.Run(ctx)
}

// displayAddr turns ":8080" into "localhost:8080" for printing.
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
