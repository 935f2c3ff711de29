package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kode4food/relay/internal/server"
	"github.com/kode4food/relay/pkg/log"
)

func newServeCmd() *cobra.Command {
	flags := &locationFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workflow over HTTP",
		Long: `Starts the HTTP API on $API_HOST:$API_PORT. POST /run triggers a run,
GET /workflow returns the parsed definition, and GET /health reports status.
The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := newRelay(flags)
			if err != nil {
				return err
			}
			r.setupLogging(cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(
				cmd.Context(), syscall.SIGINT, syscall.SIGTERM,
			)
			defer stop()
			return r.serve(ctx)
		},
	}
	flags.register(cmd)
	return cmd
}

func (r *relay) serve(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", r.cfg.APIHost, r.cfg.APIPort),
		Handler: server.NewServer(r.engine).SetupRoutes(),
	}

	errs := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting",
			slog.String("addr", httpServer.Addr))
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		if err != nil {
			slog.Error("HTTP server error", log.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), r.cfg.ShutdownTimeout,
	)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", log.Error(err))
		return err
	}

	slog.Info("Server exited")
	return nil
}
