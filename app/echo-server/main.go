package main

import (
	"context"
	"fmt"
	"log"
	"movieReco/app/echo-server/router"
	"movieReco/business/recommender"
	"movieReco/internal/middleware"
	"movieReco/internal/repository/tmdb"
	"movieReco/internal/rest"
	"movieReco/pkg/config"
	"movieReco/pkg/logger"
	"movieReco/pkg/metrics"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ML recommendation service", "version", cfg.App.Version)

	metrics.Init()

	// Init catalog repo
	tmdbRepo := tmdb.NewTMDBRepository(tmdb.TMDBConfig{
		APIKey:  cfg.TMDB.APIKey,
		BaseURL: cfg.TMDB.BaseURL,
	})

	// Init service
	recommenderService := recommender.NewService(
		tmdbRepo,
		recommender.NewReasonGenerator(),
		recommender.Config{
			TopN:                   cfg.Reco.TopN,
			GenreScoreThreshold:    cfg.Reco.GenreScoreThreshold,
			DetailedScoreThreshold: cfg.Reco.DetailedScoreThreshold,
		},
	)

	// Init handler
	recommendHandler := rest.NewRecommendHandler(recommenderService, cfg.App.Name, cfg.App.Version)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:5000"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Setup routes
	ml := e.Group("/ml")
	router.SetupRecommendationRoutes(ml, recommendHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

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

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
