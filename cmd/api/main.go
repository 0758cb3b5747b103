package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"planbook/internal/config"
	"planbook/internal/http"
	"planbook/internal/planner"
	"planbook/internal/storage"
	"planbook/internal/web"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Load both collections into the planner service
	ctx := context.Background()
	collections := storage.NewCollectionRepo(db)
	plannerService := planner.NewService(ctx, collections)
	slog.Info("Planner state loaded",
		"documents", len(plannerService.Documents(ctx)),
		"events", len(plannerService.Events(ctx)))

	// Create router with dependencies
	deps := &http.Deps{
		Planner:   plannerService,
		DB:        db,
		IndexHTML: web.IndexHTML,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
