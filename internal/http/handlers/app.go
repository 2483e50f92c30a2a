package handlers

import (
	"errors"
	"strings"
	"time"

	"schoolbooks/internal/config"
	applog "schoolbooks/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrorHandler logs the failure and shows a friendly page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < 500 {
		status = fe.Code
		msg = fe.Message
	}
	applog.Error(c, "server.error", err, map[string]any{"status": status})
	if rerr := c.Status(status).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}

// NewApp builds the server: middleware, static assets, health and metrics
// endpoints, the application routes and the 404 fallback.
func NewApp(cfg config.Config, views fiber.Views, d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: ErrorHandler,
		BodyLimit:    1 << 20,
	})

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(LoadOperator(d.Auth))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			c.Status(fiber.StatusTooManyRequests)
			return render(c, "notfound", fiber.Map{"Message": "Too many requests. Please slow down."})
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ContextKey:     "csrf",
		Expiration:     time.Hour,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			c.Status(fiber.StatusForbidden)
			return render(c, "notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	if cfg.StaticDir != "" {
		app.Static("/static", cfg.StaticDir)
	}
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	Mount(app, d)

	app.Use(func(c *fiber.Ctx) error {
		c.Status(fiber.StatusNotFound)
		return render(c, "notfound", fiber.Map{"Message": "Page not found"})
	})
	return app
}
