package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/lpg-station-service/internal/config"
	"github.com/lpg-station-service/internal/delivery/http/handler"
	"github.com/lpg-station-service/internal/delivery/http/middleware"
	"github.com/lpg-station-service/internal/domain/repository"
)

// HealthChecker - проверка живости зависимости (PostgreSQL, Redis)
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	dbHealth    HealthChecker
	redisHealth HealthChecker
	streamRepo  repository.StreamRepository

	// Handlers
	authHandler       *handler.AuthHandler
	stationHandler    *handler.StationHandler
	assignmentHandler *handler.AssignmentHandler
	managerHandler    *handler.ManagerHandler
	analyticsHandler  *handler.AnalyticsHandler

	authenticator middleware.Authenticator
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	dbHealth HealthChecker,
	redisHealth HealthChecker,
	streamRepo repository.StreamRepository,
	authenticator middleware.Authenticator,
	authHandler *handler.AuthHandler,
	stationHandler *handler.StationHandler,
	assignmentHandler *handler.AssignmentHandler,
	managerHandler *handler.ManagerHandler,
	analyticsHandler *handler.AnalyticsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "LPG Station Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		dbHealth:          dbHealth,
		redisHealth:       redisHealth,
		streamRepo:        streamRepo,
		authHandler:       authHandler,
		stationHandler:    stationHandler,
		assignmentHandler: assignmentHandler,
		managerHandler:    managerHandler,
		analyticsHandler:  analyticsHandler,
		authenticator:     authenticator,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(middleware.Metrics())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	s.app.Use(middleware.TrackVisitor(s.streamRepo, s.config.Worker.VisitorStream, s.logger))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus metrics
	s.app.Get("/metrics", middleware.MetricsHandler())

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.healthCheck)

	// Auth routes
	api.Post("/auth/register", s.authHandler.Register)
	api.Post("/auth/login", s.authHandler.Login)

	// Protected auth routes
	auth := middleware.Auth(s.authenticator)
	admin := middleware.RequireAdmin()

	api.Get("/auth/me", auth, s.authHandler.Me)
	api.Post("/auth/refresh", auth, s.authHandler.Refresh)
	api.Post("/auth/logout", auth, s.authHandler.Logout)

	// Public station routes
	api.Get("/stations/nearby", s.stationHandler.GetNearby)
	api.Get("/stations", s.stationHandler.List)
	api.Get("/stations/:id", s.stationHandler.GetByID)
	api.Get("/stations/:id/price-history", s.stationHandler.PriceHistory)

	// Protected station routes
	api.Post("/stations", auth, admin, s.stationHandler.Create)
	api.Patch("/stations/:id", auth, admin, s.stationHandler.Update)
	api.Delete("/stations/:id", auth, admin, s.stationHandler.Delete)

	// Менеджер станции или администратор, решает AccessPolicy в handler
	api.Patch("/stations/:id/status", auth, s.stationHandler.SetActive)
	api.Patch("/stations/:id/availability", auth, s.stationHandler.SetAvailability)
	api.Patch("/stations/:id/price", auth, s.stationHandler.SetPrice)
	api.Get("/stations/:id/price-history/export", auth, s.stationHandler.ExportPriceHistory)

	// Manager assignment routes
	api.Post("/stations/:id/manager", auth, admin, s.assignmentHandler.Assign)
	api.Delete("/stations/:id/manager", auth, admin, s.assignmentHandler.Remove)
	api.Get("/stations/:id/manager", auth, s.assignmentHandler.Current)
	api.Get("/stations/:id/manager/history", auth, s.assignmentHandler.History)

	// Manager administration routes
	api.Get("/managers", auth, admin, s.managerHandler.List)
	api.Post("/managers", auth, admin, s.managerHandler.Create)
	api.Get("/managers/:id", auth, admin, s.managerHandler.GetByID)
	api.Patch("/managers/:id", auth, admin, s.managerHandler.Update)
	api.Delete("/managers/:id", auth, admin, s.managerHandler.Delete)

	// Analytics routes
	api.Get("/analytics/visitors", auth, admin, s.analyticsHandler.Stats)
	api.Delete("/analytics/visitors", auth, admin, s.analyticsHandler.Clear)
}

// healthCheck проверяет живость сервиса и его зависимостей
func (s *Server) healthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := fiber.Map{
		"postgres": "ok",
		"redis":    "ok",
	}

	if err := s.dbHealth.Health(ctx); err != nil {
		checks["postgres"] = err.Error()
		status = fiber.StatusServiceUnavailable
	}
	if err := s.redisHealth.Health(ctx); err != nil {
		checks["redis"] = err.Error()
		status = fiber.StatusServiceUnavailable
	}

	healthy := "healthy"
	if status != fiber.StatusOK {
		healthy = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": healthy,
		"checks": checks,
		"time":   time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
