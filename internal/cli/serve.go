package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/okian/maulas/internal/adapters/http/api"
	"github.com/okian/maulas/internal/adapters/http/swagger"
	"github.com/okian/maulas/internal/config"
	"github.com/okian/maulas/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// maulas serve
func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rankings over HTTP",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve runs the pipeline once and exposes the result read-only:

			  GET /rounds                   ranked rounds and rounds missing results
			  GET /ranking/{round}?limit=N  ranking of one round
			  GET /forfeits                 forfeit assignments
			  GET /stats                    summary of the run
			  GET /healthz                  Prometheus metrics
			  GET /api-docs                 API reference

			The server stops on SIGINT or SIGTERM.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, _, err := run(cmd, nil)
			if err != nil {
				return err
			}
			defer func() { _ = p.Close(context.Background()) }()

			srv := newHTTPServer(p.cfg, p.svc)
			log := logger.Named("http")

			errCh := make(chan error, 1)
			go func() {
				log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
			}
			log.Info(ctx, "shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error(ctx, "server shutdown failed", logger.Error(err))
				return err
			}
			log.Info(ctx, "server stopped")
			return nil
		},
	}
	cmd.Flags().String(flagAddr, "", "listen address (default from config)")
	return cmd
}

type readService interface {
	api.Dependencies
	api.StatsProvider
}

func newHTTPServer(cfg *config.Config, svc readService) *http.Server {
	mux := http.NewServeMux()
	swagger.Register(context.Background(), mux)
	api.NewServer(svc, svc, cfg.MaxRankingLimit).Register(context.Background(), mux)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
