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

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/handlers"
	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New("resume-matcher-api", cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}
	defer zlog.Sync()

	if err := cfg.Validate(); err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
	}
	zlog.Info("config loaded", zap.String("env", cfg.Server.Env))

	// Initialize database
	db, err := config.InitDatabase(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	shortlistRepo := repositories.NewShortlistRepository(db)

	// Initialize model providers; missing credentials stop the process here.
	ctx := context.Background()
	parserProvider, err := services.NewModelProvider(ctx, providerOptions(cfg, cfg.LLM.ParserProvider), zlog)
	if err != nil {
		zlog.Fatal("failed to initialize resume parser model", zap.Error(err))
	}
	scorerProvider, err := services.NewModelProvider(ctx, providerOptions(cfg, cfg.LLM.ScorerProvider), zlog)
	if err != nil {
		zlog.Fatal("failed to initialize scoring model", zap.Error(err))
	}
	zlog.Info("model providers initialized",
		zap.String("parser", parserProvider.Name()+"/"+parserProvider.Model()),
		zap.String("scorer", scorerProvider.Name()+"/"+scorerProvider.Model()),
	)

	// Initialize services
	pdfParser := services.NewPDFParserService()
	resumeParser := services.NewResumeParserService(pdfParser, parserProvider, zlog.Named("resume_parser"))
	scorer := services.NewScorerService(scorerProvider, zlog.Named("scorer"))
	matcher := services.NewMatcherService(
		jobRepo,
		resumeRepo,
		shortlistRepo,
		resumeParser,
		scorer,
		cfg.Match.Threshold,
		zlog.Named("matcher"),
	)
	storageService := services.NewStorageService(cfg.Storage.MaxFileSize)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
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
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.Register(app, handlers.Handlers{
		Match:  handlers.NewMatchHandler(matcher, shortlistRepo, zlog.Named("http")),
		Job:    handlers.NewJobHandler(jobRepo, zlog.Named("http")),
		Resume: handlers.NewResumeHandler(resumeRepo, storageService, zlog.Named("http")),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func providerOptions(cfg *config.Config, name string) services.ProviderOptions {
	opts := services.ProviderOptions{Name: name, Timeout: cfg.LLM.Timeout}
	switch name {
	case config.ProviderGemini:
		opts.APIKey = cfg.LLM.Gemini.APIKey
		opts.Model = cfg.LLM.Gemini.Model
	case config.ProviderMistral:
		opts.APIKey = cfg.LLM.Mistral.APIKey
		opts.Model = cfg.LLM.Mistral.Model
		opts.BaseURL = cfg.LLM.Mistral.BaseURL
	}
	return opts
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
