// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"product-pulse-service/internal/app/service"
	"product-pulse-service/internal/transport/httpserver/handler"
	"product-pulse-service/internal/transport/httpserver/middleware"
	"product-pulse-service/internal/transport/ws"
	"product-pulse-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	contentSvc *service.ContentService,
	syncSvc *service.SyncService,
	hub *ws.Hub,
	db *gorm.DB,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "product-pulse-service",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(db))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS())
	app.Use(compress.New())

	// Create handlers
	contentHandler := handler.NewContentHandler(contentSvc, v, logger)
	trendingHandler := handler.NewTrendingHandler(contentSvc, v, logger)
	adminHandler := handler.NewAdminHandler(syncSvc, contentSvc, hub, v, logger)

	registerRoutes(app, contentHandler, trendingHandler, adminHandler, hub, logger)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	contentHandler *handler.ContentHandler,
	trendingHandler *handler.TrendingHandler,
	adminHandler *handler.AdminHandler,
	hub *ws.Hub,
	logger *zap.Logger,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	// Realtime updates
	app.Use("/ws", ws.UpgradeMiddleware())
	app.Get("/ws", ws.Handler(hub, logger))

	// API v1 routes
	v1 := app.Group("/api/v1")

	// Per-product ranked content
	products := v1.Group("/products")
	products.Get("/:id/social-posts", contentHandler.RankedPosts)
	products.Get("/:id/video-reviews", contentHandler.RankedVideos)
	products.Get("/:id/video-reviews/top", contentHandler.MostImpactfulVideo)

	// Catalog-wide trending
	trending := v1.Group("/trending")
	trending.Get("/social-posts", trendingHandler.TrendingPosts)
	trending.Get("/video-reviews", trendingHandler.TrendingVideos)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Post("/sync", adminHandler.SyncAll)
	admin.Post("/sync/:provider", adminHandler.SyncProvider)
	admin.Get("/providers", adminHandler.Providers)
	admin.Post("/notify", adminHandler.Notify)
	admin.Get("/stats", adminHandler.Stats)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		// Log based on status code - 404s are common and not server errors
		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
