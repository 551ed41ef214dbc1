package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeMatch/app/echo-server/router"
	"homeMatch/business/recommend"
	"homeMatch/business/scoring"
	"homeMatch/business/taste"
	"homeMatch/internal/middleware"
	psqlRepo "homeMatch/internal/repository/postgres"
	redisRepo "homeMatch/internal/repository/redis"
	"homeMatch/internal/rest"
	"homeMatch/pkg/config"
	"homeMatch/pkg/database"
	redisdb "homeMatch/pkg/database/redis"
	"homeMatch/pkg/logger"
	"homeMatch/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting HomeMatch", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()

	// Init repo
	tasteStore := psqlRepo.NewTasteConfigRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)

	var tasteRepo taste.TasteConfigRepository = tasteStore
	var tasteWriter recommend.TasteConfigWriter = tasteStore
	if cfg.Redis.Enabled {
		redisClient, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer func() {
			if err := redisdb.CloseRedisClient(redisClient); err != nil {
				logger.Error("Redis close error", "error", err)
			}
		}()
		logger.Info("Redis connected successfully")

		tasteCache := redisRepo.NewTasteConfigCache(tasteStore, redisClient, cfg.Redis.TasteCacheTTL)
		tasteRepo = tasteCache
		tasteWriter = tasteCache
	}

	// Init service
	tasteService := taste.NewService(tasteRepo)

	scoringCfg := scoring.DefaultConfig()
	scoringCfg.MinScoreFloor = cfg.Recommend.MinScoreFloor
	scorer := scoring.NewScorer(scoring.NewBuilder(), scoringCfg)

	recommendService := recommend.NewService(tasteService, productRepo, tasteWriter, scorer, recommend.Config{
		TopKDefault:   cfg.Recommend.TopKDefault,
		TopKMax:       cfg.Recommend.TopKMax,
		CandidateCap:  cfg.Recommend.CandidateCap,
		MinScoreFloor: cfg.Recommend.MinScoreFloor,
	})

	// Init handler
	recommendHandler := rest.NewRecommendHandler(recommendService)
	tasteHandler := rest.NewTasteHandler(tasteService)
	adminHandler := rest.NewRecommendAdminHandler(recommendService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Metrics())

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupRecommendationRoutes(api, recommendHandler)
	router.SetupTasteRoutes(api, tasteHandler)
	router.SetupAdminRoutes(api, adminHandler)
	router.SetupMetricsRoute(e)
	router.SetupHealthRoute(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
