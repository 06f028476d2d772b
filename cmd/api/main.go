package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lotto645-backend/api/routes"
	"github.com/ArowuTest/lotto645-backend/internal/app"
	"github.com/ArowuTest/lotto645-backend/internal/config"
	"github.com/ArowuTest/lotto645-backend/internal/handlers"
	"github.com/ArowuTest/lotto645-backend/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}
	logger.Init(&logger.Options{Level: logger.ParseLevel(cfg.LogLevel)})

	// Wire repositories, cache, events and services
	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize application", "error", err)
	}
	defer a.Close()

	if err := a.AuthService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		slog.Error("Failed to seed admin account", "error", err)
	}

	// Load the dataset; an empty store still serves requests
	if _, err := a.DrawService.Reload(ctx); err != nil {
		slog.Error("Initial draw load failed", "error", err)
	}
	if cfg.LottoAPI.SyncOnBoot {
		go func() {
			syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if _, err := a.DrawService.SyncOfficial(syncCtx, 0, 0); err != nil {
				slog.Error("Startup sync failed", "error", err)
			}
		}()
	}

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(a.AuthService),
		DrawHandler:         handlers.NewDrawHandler(a.DrawService, cfg.Engine.DefaultWindow, cfg.Engine.HighThreshold),
		StatsHandler:        handlers.NewStatsHandler(a.DrawService, cfg.Engine.DefaultWindow),
		SuggestionHandler:   handlers.NewSuggestionHandler(a.CombinationService, a.PredictionService),
		FeaturedDrawHandler: handlers.NewFeaturedDrawHandler(a.DrawService),
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := routes.SetupRouter(cfg, handlerDeps)

	// Start the server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port, "draws", a.Store.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}
