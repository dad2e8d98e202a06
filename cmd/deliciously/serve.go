package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/deliciously/internal/command"
	"github.com/hammamikhairi/deliciously/internal/config"
	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/httpapi"
	"github.com/hammamikhairi/deliciously/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog as a JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Decode(v)
		if cfg.Log.File == "" {
			cfg.Log.File = "stderr"
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rt, err := wire(ctx, cfg, func(log *logger.Logger) domain.Notifier {
			return command.NewLogNotifier(log)
		})
		if err != nil {
			return err
		}
		defer rt.close()

		srv := httpapi.New(rt.app, rt.log,
			httpapi.WithMetrics(rt.metrics),
			httpapi.WithArtifacts(rt.blobs),
		)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start(cfg.HTTP.Addr) }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		rt.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
