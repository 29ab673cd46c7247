package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kinlead/internal/platform/httpserver"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve health, readiness and metrics endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return ctx.withApp(runCtx, func(a *app) error {
				srv := httpserver.New(a.cfg.Ops.Addr, httpserver.Router(a.logger, a.metrics.platform, a.checks()...))
				errCh := make(chan error, 1)
				go func() {
					a.logger.InfoContext(runCtx, "ops server listening", "addr", a.cfg.Ops.Addr)
					errCh <- srv.ListenAndServe()
				}()

				select {
				case err := <-errCh:
					if errors.Is(err, http.ErrServerClosed) {
						return nil
					}
					return err
				case <-runCtx.Done():
				}

				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(runCtx), shutdownTimeout)
				defer cancel()
				a.logger.InfoContext(shutdownCtx, "ops server shutting down")
				return srv.Shutdown(shutdownCtx)
			})
		},
	}
}
