// The api server aggregates news from the configured providers and serves
// it, together with user accounts and preferences, over a REST API.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/api"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/config"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/aggregator"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/cache"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/scheduler"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/user"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/pkg/storage"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	uStore := user.NewStore(db)
	if err := uStore.Migrate(context.Background()); err != nil {
		slog.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	srcs := cfg.NewsSources(slog.Default())
	if len(srcs) == 0 {
		slog.Warn("no providers configured, news endpoints will return empty lists")
	}

	store := cache.New(cfg.TTL())
	agg := aggregator.New(store, srcs...)

	sched := scheduler.New(agg, store, cfg.RefreshInterval())
	sched.Start()
	defer sched.Stop()

	server := api.NewServer(uStore, agg, cfg.Server.JWTSecret)
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Routes(),
	}

	go func() {
		slog.Info("starting news aggregator API", "port", cfg.Server.Port, "providers", len(srcs))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
}
