package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jwebster45206/emberfall/internal/config"
	"github.com/jwebster45206/emberfall/internal/handlers"
	"github.com/jwebster45206/emberfall/internal/logger"
	"github.com/jwebster45206/emberfall/internal/middleware"
	"github.com/jwebster45206/emberfall/internal/storage"
	"github.com/jwebster45206/emberfall/pkg/campaign"
	"github.com/jwebster45206/emberfall/pkg/oracle"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Emberfall API",
		"port", cfg.Port,
		"environment", cfg.Environment)

	// Campaign content: DATA_DIR override falls back to the bundled campaign.
	c, err := loadCampaign(cfg)
	if err != nil {
		log.Error("Failed to load campaign", "error", err)
		os.Exit(1)
	}
	log.Info("Campaign loaded", "id", c.ID, "scenes", len(c.Scenes))

	// Session storage: Redis when reachable, otherwise local-only memory mode.
	var store storage.Storage
	redisStore, err := storage.NewRedisStorage(cfg.RedisURL, log)
	if err != nil {
		log.Warn("Invalid Redis configuration, using in-memory sessions", "error", err)
		store = storage.NewMemoryStorage()
	} else {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisStore.Ping(pingCtx); err != nil {
			log.Warn("Redis unreachable, using in-memory sessions; progress will not survive restarts", "error", err)
			store = storage.NewMemoryStorage()
		} else {
			log.Info("Storage connection established")
			store = redisStore
		}
		pingCancel()
	}

	registry := oracle.NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, log))
	mux.Handle("/v1/campaign", handlers.NewCampaignHandler(c, log))
	mux.Handle("/v1/oracle", handlers.NewOracleHandler(registry, log))

	progressHandler := handlers.NewProgressHandler(store, log)
	mux.Handle("/v1/progress/", progressHandler)

	sessionsHandler := handlers.NewSessionsHandler(c, store, registry, log)
	mux.Handle("/v1/sessions/", sessionsHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Logger(log, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}

func loadCampaign(cfg *config.Config) (*campaign.Campaign, error) {
	if cfg.DataDir == "" {
		return campaign.Default()
	}
	return campaign.LoadFile(filepath.Join(cfg.DataDir, "campaign.json"))
}
