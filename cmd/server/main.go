package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/auth"
	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/config"
	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/handlers"
	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/logger"
	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/metrics"
	"github.com/Srinivas-Rao-au27/Expense-Tracker/internal/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsDevelopment(), logger.LogLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := storage.NewDB(cfg.DBPath, storage.WithMaxOpenConns(cfg.DBMaxOpenConns))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	log.Info("database ready", zap.String("path", cfg.DBPath), zap.Uint("schema_version", version))

	m := metrics.New()
	m.WatchDB(db.SQL(), "expenses")

	var opts []handlers.Option
	if issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL); issuer != nil {
		opts = append(opts, handlers.WithTokens(issuer, cfg.RequireToken))
		log.Info("bearer tokens enabled", zap.Bool("required", cfg.RequireToken), zap.Duration("ttl", cfg.TokenTTL))
	}
	h := handlers.NewHandlers(db, log, m, opts...)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(h, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// setupRouter configures the HTTP routes and middleware.
func setupRouter(h *handlers.Handlers, cfg *config.Config, log *zap.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		handlers.RequestID(),
		handlers.Logger(log),
		handlers.CORS(cfg.CORSOrigin),
		h.Metrics(),
		handlers.Timeout(cfg.RequestTimeout),
	)
	h.Mount(r)
	return r
}
