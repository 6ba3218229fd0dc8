package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"legalscan/docs"
	"legalscan/internal/ai"
	"legalscan/internal/config"
	"legalscan/internal/database"
	"legalscan/internal/database/migration"
	"legalscan/internal/extract"
	handlers "legalscan/internal/http/handler"
	"legalscan/internal/http/middleware"
	"legalscan/internal/otel"
	"legalscan/internal/repository/postgres"
	"legalscan/internal/service"
	"legalscan/internal/storage"
)

// @title Legal Document Analyzer API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Auth.Validate(); err != nil {
		log.Fatalf("invalid auth configuration: %v", err)
	}
	loc := time.UTC
	ctx := context.Background()

	// Tracing is a no-op when OTEL_SDK_DISABLED=true
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// PostgreSQL connection (pooled, instrumented driver)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Text extraction, with OCR fallback for scanned PDFs when enabled
	var ocrEngine extract.OCREngine
	if cfg.OCR.Enabled {
		ocrEngine = extract.NewTesseractEngine(cfg.OCR.Languages, cfg.OCR.DPI)
	}
	extractor := extract.NewService(ocrEngine, cfg.OCR.DPI)

	// Optional AI summarizer; the heuristic fallback covers it when absent
	var summarizer ai.Summarizer
	if cfg.Analyzer.AIEnabled {
		summarizer, err = ai.NewOpenAISummarizer(cfg.Analyzer)
		if err != nil {
			log.Fatalf("failed to initialize ai summarizer: %v", err)
		}
	}

	// Repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	analysisRepo := postgres.NewAnalysisPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	activityRepo := postgres.NewActivityPostgres(db)

	authSvc := service.NewAuthService(userRepo, activityRepo, cfg.Auth)

	// Owner accounts are never created through registration, only seeded here
	if cfg.Auth.OwnerEmail != "" {
		if err := authSvc.EnsureOwner(ctx, cfg.Auth.OwnerEmail, cfg.Auth.OwnerPassword); err != nil {
			log.Fatalf("failed to provision owner account: %v", err)
		}
	}

	docSvc := service.NewDocumentService(objStore, docRepo, activityRepo)
	analysisSvc := service.NewAnalysisService(docRepo, analysisRepo, activityRepo, objStore, extractor, summarizer, cfg.Analyzer.SummarySentences)
	compareSvc := service.NewCompareService(docRepo, objStore, extractor, activityRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Global middleware: request IDs, JSON request logs, traces, metrics
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())

	docs.SwaggerInfo.Host = cfg.AppHost

	handlers.RegisterRoutes(app, db, handlers.Services{
		Auth:      authSvc,
		Documents: docSvc,
		Analyses:  analysisSvc,
		Compare:   compareSvc,
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
