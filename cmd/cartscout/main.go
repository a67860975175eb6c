package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/smartcart/cartscout/api"
	"github.com/smartcart/cartscout/browser"
	"github.com/smartcart/cartscout/cache"
	"github.com/smartcart/cartscout/compare"
	"github.com/smartcart/cartscout/config"
	"github.com/smartcart/cartscout/quality"
	"github.com/smartcart/cartscout/retailer"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	_ = godotenv.Load() // .env is optional; env vars win either way
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("cartscout starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
	)

	// ── 3. Launch the browser ───────────────────────────────────────
	mgr, err := browser.NewManager(cfg.Browser, cfg.Retail)
	if err != nil {
		slog.Error("failed to launch browser", "error", err)
		os.Exit(1)
	}
	defer mgr.Close()

	// ── 4. Wire the comparison core ─────────────────────────────────
	adapters := []retailer.Adapter{
		retailer.NewTesco(cfg.Retail.MaxRecords),
		retailer.NewSainsburys(cfg.Retail.MaxRecords),
	}
	queryCache := cache.New(cfg.Cache.MaxEntries, cfg.Cache.MaxAge)
	aggregator := compare.NewAggregator(adapters, quality.NewRandomScorer(), queryCache)

	// Closure adapter: browser/ never imports compare/, so the concrete
	// *browser.Session is lifted to the compare.Session interface here.
	provider := compare.SessionProviderFunc(func(ctx context.Context) (compare.Session, error) {
		return mgr.Acquire(ctx)
	})
	orchestrator := compare.NewOrchestrator(provider, aggregator, cfg.Retail.RequestTimeout)

	slog.Info("comparison core ready",
		"retailers", len(adapters),
		"maxRecords", cfg.Retail.MaxRecords,
		"requestTimeout", cfg.Retail.RequestTimeout,
	)

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(orchestrator, mgr, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// mgr.Close() runs via defer — kills Chrome.
	slog.Info("cartscout stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
