package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/gatefold/internal/cli"
	httpAdapter "github.com/aretw0/gatefold/pkg/adapters/http"
	"github.com/aretw0/lifecycle"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the lowering API over HTTP. Library models are lowered on demand and
cached in the configured store; edits to the library invalidate their cache entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		eng, closeEngine, err := cli.CreateEngine(cli.EngineOptions{Config: cfg, Logger: logger, Registry: reg})
		if err != nil {
			return err
		}
		defer closeEngine()

		if err := cli.InvalidateOnChange(ctx, eng, logger); err != nil {
			logger.Warn("Library watch disabled", "error", err)
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: httpAdapter.NewHandler(eng, httpAdapter.WithMetrics(reg)),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		lifecycle.Go(ctx, func(ctx context.Context) error {
			logger.Info("Starting gatefold server", "address", srv.Addr, "library", cfg.Library.Dir, "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
			return nil
		})

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Start shutdown")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				return srv.Close()
			}
			logger.Info("gatefold server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
}
