package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/homefindhq/homefind/internal"
	"github.com/homefindhq/homefind/internal/auth"
	authdb "github.com/homefindhq/homefind/internal/auth/db"
	"github.com/homefindhq/homefind/internal/auth/token"
	"github.com/homefindhq/homefind/internal/db"
	"github.com/homefindhq/homefind/internal/db/migrate"
	"github.com/homefindhq/homefind/internal/identity"
	"github.com/homefindhq/homefind/internal/listing"
	listingdb "github.com/homefindhq/homefind/internal/listing/db"
	"github.com/homefindhq/homefind/internal/web"
	"github.com/homefindhq/homefind/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Stderr))
}

func run(ctx context.Context, w io.Writer) int {
	logger := slog.New(slog.NewTextHandler(w, nil))

	cfg, err := configFromEnv()
	if err != nil {
		logger.Error("failed to get config from environment", "error", err)
		return 1
	}

	sqlDB, err := db.OpenSQLite(cfg.db.file, true)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return 1
	}

	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if cfg.db.migrate {
		migrations, err := migrate.RunFS(ctx, sqlDB, migrations.FS, migrate.Metadata{
			AppVersion: internal.BuildRevision,
			Timestamp:  internal.BuildRevisionTime,
		})
		if err != nil {
			logger.Error("failed to run migrations", "error", err)
			return 1
		}

		logger.Info("ran migrations", "count", len(migrations))
	}

	tokens, err := token.NewIssuer(cfg.token.secret, cfg.token.expiry)
	if err != nil {
		logger.Error("failed to create token issuer", "error", err)
		return 1
	}

	authSvc, err := auth.NewService(authdb.New(sqlDB), tokens, auth.ServiceConfig{
		HashCost: cfg.hashCost,
	})
	if err != nil {
		logger.Error("failed to create auth service", "error", err)
		return 1
	}

	listingSvc := listing.NewService(listingdb.New(sqlDB))

	srv := &http.Server{
		Addr:         cfg.http.addr,
		ReadTimeout:  cfg.http.readTimeout,
		WriteTimeout: cfg.http.writeTimeout,
		IdleTimeout:  cfg.http.idleTimeout,
		Handler: web.NewServer(&web.ServerDeps{
			Logger:   logger,
			Auth:     authSvc,
			Listings: listingSvc,
			Resolver: identity.NewResolver(tokens, authSvc, listingSvc),
		}, web.ServerConfig{
			SecureCookie: cfg.http.secureCookie,
		}),
	}

	// We need to run two tasks concurrently:
	// - Listen and serving of the HTTP server.
	// - Waiting for a signal to stop the server.

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server",
			"addr", cfg.http.addr,
			"buildRevision", internal.BuildRevision,
			"buildRevisionTime", internal.BuildRevisionTime,
			"buildLocalModified", internal.BuildLocalModified,
		)
		// ListenAndServe always returns a non-nil error,
		// g will cancel gCtx when an error is returned, so
		// this will also stop the other goroutine.
		return srv.ListenAndServe()
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("stopping http server")

		shutCtx, cancel := context.WithTimeout(context.Background(), cfg.http.shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutCtx)
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server stopped with error", "error", err)
		return 1
	}

	logger.Info("http server stopped successfully")

	return 0
}
