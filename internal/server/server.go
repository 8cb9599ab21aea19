package server

import (
	"log"
	"path/filepath"
	"strings"

	"notes-repository-be/internal/bootstrap"
	"notes-repository-be/internal/config"
	"notes-repository-be/internal/controller"
	"notes-repository-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	app.Use(cors.New(cors.Config{
		// the extract-text function answers CORS itself with a wildcard origin
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), controller.ExtractTextPath)
		},
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Local object storage is published under /uploads/<bucket>/<key>.
	if cfg.Storage.Backend == "" || cfg.Storage.Backend == "local" {
		app.Static("/uploads", filepath.Clean(cfg.Storage.LocalDir))
	}

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.ExtractTextController.RegisterRoutes(app)

	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.CatalogController.RegisterRoutes(api, c.JwtMiddleware)
	c.SubjectController.RegisterRoutes(api, c.JwtMiddleware)
	c.NoteController.RegisterRoutes(api, c.JwtMiddleware)

	c.RealtimeHandler.RegisterRoutes(api)
}
