package main

// @title LPG Station Service API
// @version 1.0.0
// @description Сервис поиска заправочных станций LPG. Предоставляет API для радиусного поиска станций с ранжированием по доступности и расстоянию, управления станциями, ценами и назначениями менеджеров, а также статистику посещений.
// @description
// @description Основные возможности:
// @description - Поиск активных станций в радиусе от точки (сначала доступные, затем недоступные)
// @description - Управление станциями: доступность, цены, постоянное открытие/закрытие
// @description - Журнал назначений менеджеров с инвариантом "один активный менеджер на станцию"
// @description - История цен с экспортом в XLSX
// @description - Статистика посещений API

// @contact.name API Support
// @contact.email support@lpg-station-service.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/lpg-station-service/docs"
	"github.com/lpg-station-service/internal/config"
	httpDelivery "github.com/lpg-station-service/internal/delivery/http"
	"github.com/lpg-station-service/internal/delivery/http/handler"
	"github.com/lpg-station-service/internal/pkg/logger"
	"github.com/lpg-station-service/internal/repository/cache"
	"github.com/lpg-station-service/internal/repository/postgres"
	redisRepo "github.com/lpg-station-service/internal/repository/redis"
	"github.com/lpg-station-service/internal/usecase"
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

	log.Info("Starting LPG Station Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	stationRepo := postgres.NewStationRepository(db)
	assignmentRepo := postgres.NewAssignmentRepository(db)
	userRepo := postgres.NewUserRepository(db)
	visitorRepo := postgres.NewVisitorRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	nearbyUC := usecase.NewNearbyUseCase(
		stationRepo,
		cacheRepo,
		log,
		cfg.Cache.NearbyCacheTTL,
	)

	stationUC := usecase.NewStationUseCase(
		stationRepo,
		cacheRepo,
		log,
	)

	assignmentUC := usecase.NewAssignmentUseCase(
		assignmentRepo,
		stationRepo,
		userRepo,
		log,
	)

	authUC := usecase.NewAuthUseCase(
		userRepo,
		log,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
	)

	managerUC := usecase.NewManagerUseCase(
		userRepo,
		log,
	)

	analyticsUC := usecase.NewAnalyticsUseCase(
		visitorRepo,
		log,
		cfg.Analytics.RetentionDays,
	)

	accessPolicy := usecase.NewAccessPolicy(assignmentRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authUC, log)
	stationHandler := handler.NewStationHandler(stationUC, nearbyUC, accessPolicy, log)
	assignmentHandler := handler.NewAssignmentHandler(assignmentUC, log)
	managerHandler := handler.NewManagerHandler(managerUC, log)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		db,
		redisClient,
		streamRepo,
		authUC,
		authHandler,
		stationHandler,
		assignmentHandler,
		managerHandler,
		analyticsHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
