package cmd

import (
	"os/signal"
	"syscall"

	"github.com/huangsam/dealsense/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP decision API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the decision pipelines over HTTP",
	Long: `Start an HTTP API that runs the decision pipelines on request.

Routes:
  GET  /healthz
  POST /v1/leads/dormancy
  POST /v1/leads/score
  POST /v1/deals/reversal
  POST /v1/deals/{dealID}/outcomes

Request bodies hold a single entity or a list. Invalid input returns 400 and
any other failure returns 500. Every response carries an X-Request-ID header.

Examples:
  # Serve on the default address with SQLite tracking
  dealsense serve --analysis-backend sqlite

  # Serve on another port and publish every decision
  dealsense serve --addr :9090 --publish-brokers localhost:9092`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return server.Serve(ctx, cfg.ServeAddr, server.NewRouter(cfg, storeManager))
	},
}
