package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "storekeeper/internal/log"
)

// NewApp builds the fiber app with middlewares and every route.
func NewApp(deps *Deps, bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        NewViews(),
		ErrorHandler: ErrorHandler,
		BodyLimit:    bodyLimit,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(AccessLog())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/media/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	Register(app, deps)
	return app
}

func Register(app *fiber.App, deps *Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Pages
	app.Get("/", deps.PageHandler.List)
	app.Get("/product/:id", deps.PageHandler.Detail)
	app.Post("/product/:id/delete", deps.PageHandler.Delete)
	app.Get("/media/*", deps.MediaHandler.Serve)

	// API
	api := app.Group("/api/v1")
	api.Get("/summary", deps.ProductHandler.Summary)
	api.Get("/products", deps.ProductHandler.List)
	api.Post("/products", deps.ProductHandler.Create)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Patch("/products/:id", deps.ProductHandler.Update)
	api.Delete("/products/:id", deps.ProductHandler.Delete)
	api.Post("/products/:id/photo", deps.PhotoHandler.Attach)
	api.Delete("/products/:id/photo", deps.PhotoHandler.Remove)

	app.Use(func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return notFoundPage(c, "Page not found")
	})
}

// AccessLog writes one entry per request after the handler chain ran.
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the error handler set the final status before logging.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		applog.Info(c, "http.access", map[string]any{"latency_ms": time.Since(start).Milliseconds()})
		return nil
	}
}
