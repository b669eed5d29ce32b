// scambait - conversational scam honeypot server
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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/honeylab/scambait/internal/api"
	"github.com/honeylab/scambait/internal/config"
	"github.com/honeylab/scambait/internal/middleware"
	"github.com/honeylab/scambait/internal/orchestrator"
	"github.com/honeylab/scambait/internal/persona"
	"github.com/honeylab/scambait/internal/report"
	"github.com/honeylab/scambait/internal/session"
	"github.com/honeylab/scambait/internal/store"
	"github.com/honeylab/scambait/internal/stream"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server",
		"port", cfg.Port,
		"max_turns", cfg.MaxTurns,
		"reporting", cfg.ReportingEnabled(),
		"archive", cfg.ArchiveEnabled())

	// Report archive is optional housekeeping; the conversation core is
	// fully in memory.
	var archive store.Repository
	if cfg.ArchiveEnabled() {
		archive, err = store.NewSQLite(cfg.DBPath)
		if err != nil {
			slog.Error("Failed to initialize report archive", "error", err)
			os.Exit(1)
		}
		defer func() {
			if closeErr := archive.Close(); closeErr != nil {
				slog.Error("Failed to close report archive", "error", closeErr)
			}
		}()

		if err := archive.Ping(context.Background()); err != nil {
			slog.Error("Report archive health check failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Report archive connected", "path", cfg.DBPath)
	}

	// Initialize the conversation pipeline.
	sessions := session.New(cfg.SessionTTL)
	engine := persona.New(persona.Config{
		MaxTurns:         cfg.MaxTurns,
		MinArtifactTypes: cfg.MinArtifactTypes,
		EngageThreshold:  cfg.EngageThreshold,
	})

	var sink report.Sink
	if cfg.ReportingEnabled() {
		sink = report.NewDispatcher(cfg.CallbackURL, archive)
	} else {
		slog.Warn("CALLBACK_URL not set, final reports will not be delivered")
	}

	orch := orchestrator.New(sessions, engine, sink, cfg.TurnTimeout)

	// Initialize handlers.
	baseHandler := api.NewHandler(orch, sessions, archive)
	turnHandler := api.NewTurnHandler(baseHandler)
	healthHandler := api.NewHealthHandler(baseHandler)
	wsHandler := stream.NewHandler(orch, cfg.AllowedOrigins)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public routes.
	healthHandler.RegisterHealth(r)

	// Conversation routes behind the API key.
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(cfg.APIKey))
		turnHandler.RegisterRoutes(r)
		r.Get("/ws/conversation", wsHandler.ServeHTTP)
	})

	// Create server.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the session eviction worker.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions.StartEvictionWorker(ctx, cfg.EvictInterval, cfg.SessionTTL)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
