// Package server contains the HTTP handlers for the engagement API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lovecorner/internal/config"
	"lovecorner/internal/database"
	"lovecorner/internal/kvstore"
	"lovecorner/internal/middleware"
	"lovecorner/internal/models"
	"lovecorner/internal/notifications"
	"lovecorner/internal/thread"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	store          kvstore.Store
	db             *gorm.DB       // set for sqlite/postgres backends
	redis          *kvstore.Redis // set for the redis backend
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	thread         *thread.Service
	feed           *notifications.Feed
}

// NewServer creates a server instance, opening the store backend selected by
// STORE_BACKEND.
func NewServer(cfg *config.Config) (*Server, error) {
	server := &Server{config: cfg}

	switch cfg.StoreBackend {
	case config.StoreMemory:
		server.store = kvstore.NewMemory()
	case config.StoreRedis:
		r, err := kvstore.OpenRedis(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		server.redis = r
		server.store = r
	case config.StoreSQLite, config.StorePostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		g, err := kvstore.NewGorm(db)
		if err != nil {
			return nil, fmt.Errorf("store migration failed: %w", err)
		}
		server.db = db
		server.store = g
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	server.finishInit()
	return server, nil
}

// NewServerWithStore creates a Server over an already-initialized store. Use
// this in tests or when a bootstrap layer owns the store lifecycle.
func NewServerWithStore(cfg *config.Config, store kvstore.Store) *Server {
	server := &Server{config: cfg, store: store}
	server.finishInit()
	return server
}

func (s *Server) finishInit() {
	middleware.InitMiddleware(s.config)
	s.promMiddleware = middleware.InitMetrics("lovecorner-api")
	s.feed = notifications.NewFeed(s.store)
	s.thread = thread.NewService(s.store, s.feed)
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for correlation
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context middleware to propagate request ID and username
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Love Corner Metrics Dashboard",
	}))

	// Public reads
	posts := api.Group("/pickup-lines")
	posts.Get("/:id/comments", s.GetComments)
	posts.Get("/:id", s.GetPickupLine)

	// Protected mutations; a missing identity answers 401 with a login
	// redirect.
	posts.Post("/:id/comments", middleware.AuthRequired, s.CreateComment)
	posts.Post("/:id/comments/:commentId/replies", middleware.AuthRequired, s.CreateReply)
	posts.Post("/:id/reactions", middleware.AuthRequired, s.React)

	notifs := api.Group("/notifications", middleware.AuthRequired)
	notifs.Get("/unread-count", s.GetUnreadCount)
	notifs.Get("/", s.GetNotifications)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests: the selected store backend
// must answer.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	storeStatus := "healthy"
	switch {
	case s.redis != nil:
		if err := s.redis.Ping(ctx); err != nil {
			storeStatus = "unhealthy"
		}
	case s.db != nil:
		sqlDB, err := s.db.DB()
		if err != nil {
			storeStatus = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			storeStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	if storeStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": storeStatus,
		"checks": fiber.Map{
			"store": fiber.Map{
				"backend": s.config.StoreBackend,
				"status":  storeStatus,
			},
		},
		"time": time.Now(),
	})
}

// optionalUser extracts the viewer identity from the Authorization header
// but does not enforce it. Page reads work for anonymous visitors; only
// mutations require login.
func (s *Server) optionalUser(c *fiber.Ctx) (models.User, bool) {
	return middleware.UserFromBearer(c.Get("Authorization"))
}

// NewApp builds the Fiber application with the shared error envelope. Errors
// returned from handlers, including Fiber's own routing errors, all pass
// through RespondWithError so clients always see the same response shape.
func (s *Server) NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   "Love Corner API",
		BodyLimit: 1 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return models.RespondWithError(c, fiberErr.Code, err)
			}
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
}

// Start builds the app, wires middleware and routes, and listens.
func (s *Server) Start() error {
	app := s.NewApp()
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and closes the store backend.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
