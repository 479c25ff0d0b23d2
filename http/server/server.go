// Package server provides the Fiber based HTTP server that exposes commands.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// HTTPServer is a Fiber app with prioritized middlewares and a uniform error response.
type HTTPServer struct {
	cfg    Config
	router *fiber.App
}

// NewHTTPServer creates the server. Middlewares are applied by descending priority.
func NewHTTPServer(cfg Config, middlewares ...Middleware) *HTTPServer {
	router := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          errorHandler(cfg.HideErrorDetails),
		DisableStartupMessage: true,
		Immutable:             true,
		BodyLimit:             cfg.BodyLimit,
	})

	applyMiddlewares(router, middlewares)

	return &HTTPServer{cfg: cfg, router: router}
}

// RegisterRouter lets registerFunc add routes.
func (s *HTTPServer) RegisterRouter(registerFunc func(r fiber.Router)) {
	registerFunc(s.router)
}

// App returns the underlying Fiber app.
func (s *HTTPServer) App() *fiber.App {
	return s.router
}

// Start listens on the configured address until Stop is called.
func (s *HTTPServer) Start() error {
	return s.router.Listen(s.cfg.Address())
}

// Stop shuts the server down gracefully.
func (s *HTTPServer) Stop() error {
	return s.router.Shutdown()
}
