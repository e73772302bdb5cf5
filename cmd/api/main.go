package main

// @title Parking Microservice API
// @version 1.0.0
// @description Микросервис агрегации парковочных мест вокруг координат пользователя. Объединяет данные OpenStreetMap (Overpass API), Google Places и краудсорсинговые отчёты пользователей в одну коллекцию.
// @description
// @description Основные возможности:
// @description - Агрегация парковок из OSM и Google Places с кешированием по гео-сигнатуре запроса
// @description - Краудсорсинговые места и отчёты о статусе free/occupied
// @description - Выборка коллекции с фильтром по статусу и сортировкой по удалённости

// @contact.name API Support
// @contact.email support@parking-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/parking-microservice/docs/swagger"
	"github.com/parking-microservice/internal/config"
	httpDelivery "github.com/parking-microservice/internal/delivery/http"
	"github.com/parking-microservice/internal/delivery/http/handler"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/infrastructure/googleplaces"
	"github.com/parking-microservice/internal/infrastructure/overpass"
	"github.com/parking-microservice/internal/pkg/logger"
	"github.com/parking-microservice/internal/repository/cache"
	"github.com/parking-microservice/internal/repository/memory"
	"github.com/parking-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Parking Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	// 3. Initialize provider query cache
	var cacheRepo repository.CacheRepository
	if cfg.Cache.Backend == "redis" {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Health(ctx); err != nil {
			log.Fatal("Redis health check failed", zap.Error(err))
		}

		cacheRepo = cache.NewRedisRepository(redisClient)
	} else {
		cacheRepo = cache.NewMemoryRepository(log)
	}

	// 4. Initialize repositories and provider clients
	spotRepo := memory.NewSpotRepository(log)
	osmClient := overpass.NewClient(&cfg.OSM, cacheRepo, log)
	placesClient := googleplaces.NewClient(&cfg.Places, cacheRepo, log)

	if cfg.Places.APIKey == "" {
		log.Warn("Google Maps API key not configured, Places provider disabled")
	}

	log.Info("Repositories initialized")

	// 5. Initialize use cases
	aggregatorUC := usecase.NewAggregatorUseCase(
		osmClient,
		placesClient,
		spotRepo,
		log,
		cfg.OSM.Radius,
		cfg.Places.Radius,
	)
	spotUC := usecase.NewSpotUseCase(spotRepo, log)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP handlers and server
	spotHandler := handler.NewSpotHandler(aggregatorUC, spotUC, log)
	server := httpDelivery.NewServer(cfg, log, spotHandler)

	log.Info("HTTP server initialized")

	// 7. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
