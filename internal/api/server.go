// Package api exposes the batch pipeline over HTTP: upload a batch,
// poll its status, download the report and the filed archive.
package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog/log"

	"github.com/Juangranados89/certificados-app/internal/config"
	"github.com/Juangranados89/certificados-app/internal/jobs"
	"github.com/Juangranados89/certificados-app/internal/middleware"
)

// Server represents the HTTP server.
type Server struct {
	app    *fiber.App
	config *config.Config
	store  *jobs.Store
	runner *jobs.Runner
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Config, store *jobs.Store, runner *jobs.Runner) *Server {
	app := fiber.New(fiber.Config{
		ServerHeader:          "Certificados",
		AppName:               "Certificados v1.0.0",
		BodyLimit:             cfg.Server.BodyLimit,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           cfg.Server.IdleTimeout,
		DisableStartupMessage: !cfg.Debug,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())

	s := &Server{app: app, config: cfg, store: store, runner: runner}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.handleHealth)

	api := s.app.Group("/api")
	api.Post("/jobs", s.handleCreateJob)
	api.Get("/jobs/:id", s.handleGetJob)
	api.Get("/jobs/:id/"+jobs.ReportName, s.handleDownloadReport)
	api.Get("/jobs/:id/"+jobs.ArchiveName, s.handleDownloadArchive)
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	return s.app.Listen(s.config.Server.Address)
}

// Shutdown gracefully shuts down the server. Running batch workers are not
// cancelled; they finish on their own.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		log.Error().Err(err).Str("path", c.Path()).Msg("Server error")
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}
