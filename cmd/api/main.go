// Package main is the entry point for the trip planner API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/config"
	"trip-planner-service/internal/handler"
	"trip-planner-service/internal/middleware"
	"trip-planner-service/internal/repo"
	"trip-planner-service/internal/routing"
	"trip-planner-service/internal/service"
	"trip-planner-service/migrations"
)

// maxRequestBodyBytes bounds incoming JSON bodies; plan requests are small.
const maxRequestBodyBytes = 1 << 20

func main() {
	// .env is a local development convenience; absence is not an error.
	_ = godotenv.Load()

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Routing provider -------------------------------------------------
	// Both the Redis cache and the ORS client are optional: without a key
	// the planner falls back to great-circle estimates for every leg and
	// cannot resolve address-only locations.
	var provider service.RouteProvider
	var geocoder service.Geocoder
	if cfg.ORSAPIKey != "" {
		var cache *routing.RouteCache
		if cfg.RedisURL != "" {
			opts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				slog.Error("invalid REDIS_URL", "error", err)
				os.Exit(1)
			}
			cache = routing.NewRouteCache(redis.NewClient(opts), logger)
			slog.Info("route cache enabled")
		}
		ors, err := routing.NewORSClient(cfg.ORSAPIKey, cfg.ORSBaseURL, cache, logger)
		if err != nil {
			slog.Error("failed to create route client", "error", err)
			os.Exit(1)
		}
		provider = ors
		geocoder = ors
		slog.Info("route provider enabled")
	} else {
		slog.Info("no ORS_API_KEY set, routes will use great-circle estimates")
	}

	// --- Wiring -----------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	dailyLogRepo := repo.NewDailyLogRepo(pool)
	logEntryRepo := repo.NewLogEntryRepo(pool)

	tripSvc := service.NewTripService(tripRepo, dailyLogRepo, provider, geocoder, cfg.AvgSpeedMPH, logger)
	logSvc := service.NewLogService(dailyLogRepo, logEntryRepo)
	cycleSvc := service.NewCycleService(tripRepo, logEntryRepo)

	srv := handler.NewServer(tripSvc, logSvc, cycleSvc, logger)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS →
	// body size cap. RequestID generates a unique trace ID per request;
	// RealIP sets r.RemoteAddr from X-Forwarded-For (safe behind a proxy);
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxRequestBodyBytes))

	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies any pending goose migrations from the embedded FS.
// goose needs a *sql.DB, so it gets its own short-lived connection via the
// pgx database/sql driver.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}

	results, err := provider.Up(context.Background())
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("applied migration", "migration", res.Source.Path)
	}
	return nil
}
