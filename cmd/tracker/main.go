package main

import (
	"context"
	"database/sql"
	"fmt"
	"lol-tracker/internal/config"
	"lol-tracker/internal/constants"
	fxmodules "lol-tracker/internal/fx"
	"lol-tracker/internal/middleware"
	"lol-tracker/internal/poller"
	"lol-tracker/internal/server"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runPoller),
		fx.Invoke(runServer),
	).Run()
}

func runPoller(lc fx.Lifecycle, p *poller.Poller, db *sql.DB, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Restore(ctx); err != nil {
				return fmt.Errorf("failed to restore trackers: %w", err)
			}
			// the start context is cancelled once startup completes
			p.Start(context.Background())
			logger.Info().Msg("poller started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Stop()
			logger.Info().Msg("poller stopped")
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
}

func runServer(
	lc fx.Lifecycle,
	status *server.StatusServer,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	requestIDMiddleware := middleware.RequestID(logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: requestIDMiddleware(c.Handler(status.Routes())),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
