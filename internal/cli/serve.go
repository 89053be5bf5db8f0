package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/captmoose/internal/logging"
	"github.com/ironsheep/captmoose/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the moose tools over MCP (JSON-RPC on stdin/stdout)",
		Long: `Starts the MCP server. Requests are read from stdin, one JSON-RPC
message per line, and responses are written to stdout. Logs go to stderr.

Configure it in your MCP client as a stdio server running "captmoose serve".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}

			srv, err := server.New(st, server.Options{
				Canvas:      a.canvas(),
				LatestLimit: a.cfg.Storage.LatestLimit,
				LegacyTrim:  a.cfg.Chat.UseLegacyTrim(),
				Version:     a.build.Version,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize server: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logging.Info("CLI", "captmoose %s serving store %s", a.build.Version, a.cfg.Storage.Dir)
			return srv.Run(ctx)
		},
	}
}
