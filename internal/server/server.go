// Package server wires the HTTP surface: middleware, routes, and the form
// handlers behind each view.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"prooffolio/internal/config"
	"prooffolio/internal/middleware"
	"prooffolio/internal/repository"
	"prooffolio/internal/service"
	"prooffolio/internal/storage"
	"prooffolio/internal/view"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config   *config.Config
	kv       storage.KV
	profiles repository.ProfileRepository
	sessions repository.SessionRepository
	svc      *service.ProfileService
	renderer *view.Renderer
}

// New creates a server instance, opening the storage backend from config.
// Redis is used when REDIS_URL is set; a failed Redis connection falls back
// to the file store with a logged warning.
func New(cfg *config.Config) (*Server, error) {
	var kv storage.KV
	if cfg.RedisURL != "" {
		rkv, err := storage.NewRedisKV(cfg.RedisURL)
		if err != nil {
			slog.Warn("redis connection failed, falling back to file store",
				"redis_url", cfg.RedisURL, "data_file", cfg.DataFile, "error", err)
			if cfg.DataFile == "" {
				return nil, fmt.Errorf("redis unavailable and no DATA_FILE fallback: %w", err)
			}
			kv = storage.NewFileKV(cfg.DataFile)
		} else {
			kv = rkv
		}
	} else {
		kv = storage.NewFileKV(cfg.DataFile)
	}

	return NewWithKV(cfg, kv)
}

// NewWithKV creates a Server over an already-opened storage backend.
// Use this in tests.
func NewWithKV(cfg *config.Config, kv storage.KV) (*Server, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("template parsing failed: %w", err)
	}

	profiles := repository.NewProfileRepository(kv)
	sessions := repository.NewSessionRepository(kv)

	return &Server{
		config:   cfg,
		kv:       kv,
		profiles: profiles,
		sessions: sessions,
		svc:      service.NewProfileService(profiles, sessions),
		renderer: renderer,
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate request ID into the request context for the logger
	app.Use(middleware.ContextMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (120 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health", s.HealthCheck)

	app.Get("/", s.Home)
	app.Get("/resolve", s.LegacyAddress)
	app.Get("/create", s.CreateForm)
	app.Post("/create", s.CreateProfile)
	app.Post("/logout", s.Logout)

	edit := app.Group("/edit")
	edit.Get("/:username", s.EditProfile)
	edit.Post("/:username/profile", s.SaveProfileInfo)
	edit.Get("/:username/entries/new", s.NewEntryForm)
	edit.Post("/:username/entries", s.SaveEntry)
	// Define the specific /:id/delete route BEFORE the generic /:id route
	edit.Get("/:username/entries/:id/delete", s.ConfirmDeleteEntry)
	edit.Post("/:username/entries/:id/delete", s.DeleteEntry)
	edit.Get("/:username/entries/:id", s.EditEntryForm)
	edit.Get("/:username/delete", s.ConfirmDeleteProfile)
	edit.Post("/:username/delete", s.DeleteProfile)

	// The generic public profile route must be last so it cannot shadow
	// the fixed routes above.
	app.Get("/:username", s.PublicProfile)
}

// Shutdown releases server resources, closing the storage backend when it
// holds a connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if closer, ok := s.kv.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// HealthCheck reports liveness.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
