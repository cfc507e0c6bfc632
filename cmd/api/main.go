package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/handlers"
	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zl.Sync()
	zl.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	// Language data is loaded once and shared read-only. A failure here only
	// disables scoring; extraction and the API keep running.
	cache := services.NewCacheStorage(cfg.LanguageData.Path)
	fetcher := services.NewCorpusFetcher(cfg.LanguageData.URL, cfg.LanguageData.FetchTimeout,
		logger.WithFields(zl, zap.String("component", "corpus_fetcher")))
	languageData := services.NewLanguageDataProvider(cache, fetcher, cfg.LanguageData.AllowFetch,
		logger.WithFields(zl, zap.String("component", "language_data")))

	initCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	if _, err := languageData.Get(initCtx); err != nil {
		zl.Error("❌ Scoring disabled until language data is available", zap.Error(err))
	}
	cancel()

	// Initialize services
	pdfParser := services.NewPDFParserService(zl)
	scorer := services.NewScorer(cfg.Match.StrongThreshold, cfg.Match.ModerateThreshold)
	analyzer := services.NewAnalyzerService(pdfParser, languageData, scorer,
		logger.WithFields(zl, zap.String("component", "analyzer")))
	zl.Info("✅ Services initialized successfully")

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, cfg.Storage.MaxFileSize, zl)
	scoreHandler := handlers.NewScoreHandler(analyzer)
	healthHandler := handlers.NewHealthHandler(languageData)
	zl.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Ranker API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		// Several resumes may share one request.
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 10,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", healthHandler.HandleHealth)
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/score", scoreHandler.HandleScore)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Ranker API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/health",
				"POST /api/v1/analyze",
				"POST /api/v1/score",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zl.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("❌ Failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
