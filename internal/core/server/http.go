// Package server provides HTTP server lifecycle management.
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"

	"github.com/solatis/menukeeper/internal/core/api"
	"github.com/solatis/menukeeper/internal/core/auth"
	"github.com/solatis/menukeeper/internal/core/config"
)

// HTTPServer manages the fiber app lifecycle.
type HTTPServer struct {
	app    *fiber.App
	config *config.ServerConfig
}

// NewHTTPServer creates the fiber app with middleware and routes.
// actorSecret may be nil (actor extraction disabled, all requests
// anonymous); authenticator may be nil, in which case the admin
// endpoints are not registered.
func NewHTTPServer(cfg *config.ServerConfig, service *api.Service, authenticator *auth.Authenticator, actorSecret []byte, log *logrus.Logger) (*HTTPServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if log == nil {
		return nil, fmt.Errorf("log cannot be nil")
	}

	app := fiber.New(fiber.Config{
		AppName:      "MenuKeeper",
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(requestid.New())
	app.Use(recover.New())

	allowOrigins := []string{"*"}
	if cfg.CORSOrigins != "*" {
		allowOrigins = strings.Split(cfg.CORSOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-ID"},
	}))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/v1", auth.ActorMiddleware(actorSecret))
	v1.Get("/menu", service.GetMenu)
	v1.Get("/menu/user", service.GetUserMenu)

	if authenticator != nil {
		admin := app.Group("/v1/admin", authenticator.Middleware(log))
		admin.Post("/cache/clear", service.ClearCache)
	} else {
		log.Warn("admin endpoints disabled (no HMAC secrets or database configured)")
	}

	return &HTTPServer{app: app, config: cfg}, nil
}

// App exposes the fiber app for handler tests.
func (s *HTTPServer) App() *fiber.App {
	return s.app
}

// Start binds the listener and serves requests. Blocks until Shutdown.
func (s *HTTPServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	return s.app.Listen(addr, fiber.ListenConfig{
		DisableStartupMessage: true,
		GracefulContext:       ctx,
	})
}

// Shutdown gracefully stops the server with a 30-second timeout.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(ctx)
}
