package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jdewit/bettrack/internal/auth"
	"github.com/jdewit/bettrack/internal/notify"
	"github.com/jdewit/bettrack/internal/server"
	"github.com/jdewit/bettrack/internal/server/handler"
	"github.com/jdewit/bettrack/internal/service"
)

// shutdownTimeout bounds how long in-flight requests may run after SIGTERM.
const shutdownTimeout = 5 * time.Second

// ServeMode builds the service layer and runs the HTTP API until the context
// is cancelled.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode")

	minter, err := auth.NewMinter(a.cfg.Auth.SessionSecret)
	if err != nil {
		return fmt.Errorf("serve mode: session minter: %w", err)
	}
	verifier := auth.NewVerifier(a.cfg.Auth.GoogleClientID)

	// Services.
	authSvc := service.NewAuthService(
		verifier, minter, deps.SessionStore, deps.ProfileStore,
		a.cfg.Auth.SessionTTL.Duration, a.logger,
	)
	betSvc := service.NewBetService(deps.BetStore, deps.BetCache, deps.Notifier, a.logger)
	tipSvc := service.NewTipService(deps.TipStore, deps.BetStore, deps.ProfileStore, deps.Notifier, a.logger)
	statsSvc := service.NewStatsService(betSvc, a.logger)
	exportSvc := service.NewExportService(
		betSvc, deps.BlobWriter, deps.BlobReader, deps.LockManager,
		a.cfg.Export.KeyPrefix, deps.Notifier, a.logger,
	)
	if deps.BlobDeleter != nil {
		exportSvc = exportSvc.WithDeleter(deps.BlobDeleter)
	}
	if deps.BlobWriter == nil {
		a.logger.InfoContext(ctx, "serve mode: S3 disabled, export endpoints will answer 503")
	}

	handlers := server.Handlers{
		Health:    handler.NewHealthHandler(a.logger),
		Auth:      handler.NewAuthHandler(authSvc, a.logger),
		Bets:      handler.NewBetHandler(betSvc, statsSvc, a.logger),
		Dashboard: handler.NewDashboardHandler(statsSvc, a.logger),
		Tips:      handler.NewTipHandler(tipSvc, a.logger),
		Strategy:  handler.NewStrategyHandler(statsSvc, a.logger),
		Export:    handler.NewExportHandler(exportSvc, a.logger),
	}

	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
	}, handlers, authSvc, deps.RateLimiter, a.logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		title, message := notify.ErrorMessage(err)
		if nerr := deps.Notifier.Notify(context.Background(), notify.EventError, title, message); nerr != nil {
			a.logger.Warn("error notification failed", slog.String("error", nerr.Error()))
		}
		return err
	}
	return nil
}

// MigrateMode applies pending schema migrations and exits. The migrations
// themselves run during Wire; this mode exists so they can be run without
// starting the server.
func (a *App) MigrateMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "migrations applied",
		slog.String("mode", a.cfg.Mode),
	)
	return nil
}
