// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Shelfmark HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open storage: PostgreSQL or SQLite plus migrations, or in-memory repositories.
//  4. Connect to Redis when configured, for the distributed goal lock.
//  5. Load the JWT verification key.
//  6. Wire services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/taibuivan/shelfmark/internal/api"
	"github.com/taibuivan/shelfmark/internal/core/activity"
	"github.com/taibuivan/shelfmark/internal/core/book"
	"github.com/taibuivan/shelfmark/internal/core/goal"
	"github.com/taibuivan/shelfmark/internal/platform/config"
	"github.com/taibuivan/shelfmark/internal/platform/constants"
	"github.com/taibuivan/shelfmark/internal/platform/migration"
	pgstore "github.com/taibuivan/shelfmark/internal/platform/postgres"
	redisstore "github.com/taibuivan/shelfmark/internal/platform/redis"
	"github.com/taibuivan/shelfmark/internal/platform/sec"
	sqlitestore "github.com/taibuivan/shelfmark/internal/platform/sqlite"
)

// repositories bundles the storage implementations selected by STORAGE_DRIVER.
type repositories struct {
	books      book.BookRepository
	goals      goal.GoalRepository
	activities activity.ActivityRepository
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.String("day_boundary_tz", cfg.DayBoundaryTZ),
	)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
	defer startupCancel()

	health := api.HealthDependencies{}

	// ── 3. Storage ────────────────────────────────────────────────────────
	var repos repositories
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationsFor(cfg.StorageDriver), log), "run migrations")

		repos = repositories{
			books:      book.NewPostgresRepository(pool),
			goals:      goal.NewPostgresRepository(pool),
			activities: activity.NewPostgresRepository(pool),
		}
		health.CheckDatabase = func(context context.Context) error {
			return pgstore.Ping(context, pool)
		}

	case config.StorageDriverSQLite:
		db, err := sqlitestore.Open(startupCtx, cfg.SQLitePath, log)
		must(log, err, "open sqlite database")
		defer func() {
			log.Info("closing_sqlite_database")
			if cerr := db.Close(); cerr != nil {
				log.Error("sqlite_close_failed", slog.Any("error", cerr))
			}
		}()

		must(log, migration.RunUpSQLite(cfg.SQLitePath, cfg.MigrationsFor(cfg.StorageDriver), log), "run migrations")

		repos = repositories{
			books:      book.NewSQLiteRepository(db),
			goals:      goal.NewSQLiteRepository(db),
			activities: activity.NewSQLiteRepository(db),
		}
		health.CheckDatabase = func(context context.Context) error {
			return sqlitestore.Ping(context, db)
		}

	case config.StorageDriverMemory:
		log.Warn("memory_storage_enabled", slog.String("note", "data is lost on restart"))
		repos = repositories{
			books:      book.NewMemoryRepository(),
			goals:      goal.NewMemoryRepository(),
			activities: activity.NewMemoryRepository(),
		}
	}

	// ── 4. Goal Lock ──────────────────────────────────────────────────────
	var locker goal.Locker = goal.NewLocalLocker()
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		locker = redisstore.NewLocker(rdb, cfg.GoalLockTTL, log)
		health.CheckLock = func(context context.Context) error {
			return redisstore.Ping(context, rdb)
		}
	}

	// ── 5. Token Verification ─────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	goalService := goal.NewService(repos.goals, repos.books, locker, log)
	bookService := book.NewService(repos.books, goalService, cfg.AutoFinishOnLastPage, log)
	activityService := activity.NewService(repos.activities, repos.books, cfg.Location(), log)

	liveness, readiness := api.NewHealthHandlers(health, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Book:      book.NewHandler(bookService),
		Goal:      goal.NewHandler(goalService),
		Activity:  activity.NewHandler(activityService),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, tokens, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
