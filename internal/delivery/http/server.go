package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"go.uber.org/zap"

	"github.com/geosql-kit/internal/config"
	"github.com/geosql-kit/internal/delivery/http/handler"
	"github.com/geosql-kit/internal/delivery/http/middleware"
	"github.com/geosql-kit/internal/pkg/errors"
	"github.com/geosql-kit/internal/pkg/utils"
)

// Server is the Fiber HTTP front for the spatial search API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	searchHandler *handler.SearchHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	searchHandler *handler.SearchHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "GeoSQL Kit API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		searchHandler: searchHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/search/nearby", s.searchHandler.SearchNearby)
	api.Post("/search/within", s.searchHandler.SearchWithin)
	api.Get("/places/:id", s.searchHandler.GetPlace)
}

// Start begins serving on the configured address.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown drains connections and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("Unhandled request error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.ErrInternalServer,
		})
	}
}
