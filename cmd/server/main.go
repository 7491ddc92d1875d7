package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/chatask-service/internal/ai"
	"github.com/SAP-F-2025/chatask-service/internal/cache"
	"github.com/SAP-F-2025/chatask-service/internal/config"
	"github.com/SAP-F-2025/chatask-service/internal/formimport"
	"github.com/SAP-F-2025/chatask-service/internal/handlers"
	"github.com/SAP-F-2025/chatask-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/chatask-service/internal/services"
	"github.com/SAP-F-2025/chatask-service/internal/utils"
	"github.com/SAP-F-2025/chatask-service/internal/validator"
	"github.com/SAP-F-2025/chatask-service/pkg"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := logger.Slog()

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	if err := postgres.AutoMigrate(db); err != nil {
		log.Fatalf("%v", err)
	}
	repo := postgres.NewRepository(db)
	defer repo.Close()

	cacheService := cache.NewNoopCache()
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, running without cache", "error", err)
	} else {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		log.Fatalf("failed to create event publisher: %v", err)
	}
	defer publisher.Close()

	var generator ai.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("failed to create AI client: %v", err)
		}
		generator = gemini
	} else {
		logger.Warn("GEMINI_API_KEY is not set, interview endpoints are disabled")
	}

	fetcher := formimport.NewFetcher(&http.Client{}, formimport.FetcherConfig{
		UserAgent:      cfg.Import.UserAgent,
		AcceptLanguage: cfg.Import.AcceptLanguage,
		Timeout:        cfg.Import.Timeout,
		MaxBodyBytes:   cfg.Import.MaxBodyBytes,
	})
	importer := formimport.NewImporter(fetcher, formimport.LabelsFor(cfg.Import.Locale), slogger)

	v := validator.New()
	surveyService := services.NewSurveyService(repo, cacheService, publisher, v, slogger, cfg.SurveyCacheTTL)
	serviceManager := services.NewServiceManager(
		surveyService,
		services.NewResponseService(repo, surveyService, publisher, v, slogger),
		services.NewExportService(repo, surveyService, slogger),
		services.NewImportService(importer, surveyService, publisher, v, slogger),
		services.NewInterviewService(generator, surveyService, publisher, v, slogger, cfg.Interview.MaxTurns),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestID(), utils.LoggerMiddleware(logger), utils.ContextLogger(logger))
	handlers.NewHandlerManager(serviceManager, v, logger).SetupRoutes(router)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", utils.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", utils.RequestIDHeader},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server is running", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
}
