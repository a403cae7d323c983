package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/tourgent/go-trip-planner/app/db"
	appLogger "github.com/tourgent/go-trip-planner/app/logger"
	"github.com/tourgent/go-trip-planner/app/observability/metrics"
	"github.com/tourgent/go-trip-planner/app/tracer"
	"github.com/tourgent/go-trip-planner/config"
	generativeAI "github.com/tourgent/go-trip-planner/internal/api/generative_ai"
	"github.com/tourgent/go-trip-planner/internal/api/hotels"
	"github.com/tourgent/go-trip-planner/internal/api/itinerary"
	"github.com/tourgent/go-trip-planner/internal/api/places"
	"github.com/tourgent/go-trip-planner/internal/api/planner"
	"github.com/tourgent/go-trip-planner/internal/api/pricing"
	"github.com/tourgent/go-trip-planner/internal/router"
)

func main() {
	// --- Initial Loading ---
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	// --- Logger Setup ---
	logger := setupLogger(cfg.Mode)
	slog.SetDefault(logger)

	// --- Application Context & Shutdown ---
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability Setup ---
	tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port)
	metrics.InitAppMetrics()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Run migrations *before* initializing the main pool
	err = database.RunMigrations(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Provider Clients ---
	placesClient := places.NewHTTPClient(cfg.Providers.Places.BaseURL, cfg.Providers.Places.APIKey, logger)
	pricingClient := pricing.NewHTTPClient(cfg.Providers.Pricing.Endpoint, cfg.Providers.Pricing.APIKey, logger)
	aiClient, err := generativeAI.NewAIClient(ctx, cfg.Providers.Gemini.APIKey, cfg.Providers.Gemini.Model)
	if err != nil {
		logger.Error("Failed to initialize AI client", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Dependency Injection ---
	hotelService := hotels.NewServiceImpl(placesClient, pricingClient, logger)
	hotelHandler := hotels.NewHotelHandler(hotelService, logger)

	itineraryRepo := itinerary.NewItineraryRepository(pool, logger)
	itineraryService := itinerary.NewServiceImpl(itineraryRepo, cfg.Output.ArchiveDir, cfg.Output.LatestDir, logger)
	itineraryHandler := itinerary.NewItineraryHandler(itineraryService, itineraryRepo, logger)

	plannerService := planner.NewServiceImpl(aiClient, hotelService, logger)
	plannerHandler := planner.NewPlannerHandler(plannerService, logger)

	// --- Router Setup ---
	routerConfig := &router.Config{
		HotelHandler:     hotelHandler,
		ItineraryHandler: itineraryHandler,
		PlannerHandler:   plannerHandler,
	}
	mainRouter := router.SetupRouter(routerConfig)

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(60 * time.Second))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	srv := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// --- Start Server Goroutine ---
	go func() {
		logger.Info("Starting HTTP server", slog.String("address", cfg.Server.HTTPPort))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	// --- Wait for Shutdown Signal ---
	<-ctx.Done()

	// --- Graceful Shutdown ---
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger(mode string) *slog.Logger {
	var logger *slog.Logger

	if mode == "development" || mode == "" {
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
