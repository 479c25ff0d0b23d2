package server

import (
	"cmp"
	"slices"

	"github.com/gofiber/fiber/v2"
)

// Middleware is a fiber handler with a priority. Higher priorities run first.
type Middleware struct {
	Priority int
	Handler  fiber.Handler
}

func applyMiddlewares(app *fiber.App, middlewares []Middleware) {
	sorted := slices.Clone(middlewares)
	slices.SortStableFunc(sorted, func(a, b Middleware) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	for _, mw := range sorted {
		if mw.Handler != nil {
			app.Use(mw.Handler)
		}
	}
}
