package handlers

import (
	"time"

	applog "schoolbooks/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Mount registers the storefront, login and back-office routes. Middleware
// and the 404 fallback stay with the caller.
func Mount(app *fiber.App, d *Deps) {
	// Storefront
	app.Get("/", d.StoreHandler.Home)
	app.Get("/shop", limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|shop"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.shop.hit", nil)
			c.Status(fiber.StatusTooManyRequests)
			return render(c, "notfound", fiber.Map{"Message": "Too many searches. Please slow down."})
		},
	}), d.StoreHandler.Shop)
	app.Get("/books/:id", d.StoreHandler.Book)
	app.Get("/categories", d.StoreHandler.Categories)
	app.Get("/about", d.StoreHandler.About)
	app.Get("/contact", d.ContactHandler.Form)
	app.Post("/contact", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|contact"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.contact.hit", nil)
			c.Status(fiber.StatusTooManyRequests)
			return render(c, "notfound", fiber.Map{"Message": "Too many messages. Please try again later."})
		},
	}), d.ContactHandler.Submit)

	// Auth routes (login throttled)
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			c.Status(fiber.StatusTooManyRequests)
			return render(c, "login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/logout", d.AuthHandler.Logout)

	// Back-office
	admin := app.Group("/admin", RequireOperator(d.Auth))
	admin.Get("/", d.AdminHandler.Dashboard)
	admin.Get("/analytics", d.AdminHandler.Analytics)
	admin.Get("/settings", d.AdminHandler.Settings)
	admin.Get("/messages", d.AdminHandler.Messages)
	admin.Post("/messages/:id/handled", d.AdminHandler.MarkHandled)

	books := admin.Group("/books")
	books.Get("/", d.BookAdmin.List)
	books.Get("/new", d.BookAdmin.New)
	books.Post("/", d.BookAdmin.Create)
	books.Get("/:id", d.BookAdmin.Show)
	books.Get("/:id/edit", d.BookAdmin.Edit)
	books.Post("/:id", d.BookAdmin.Update)
	books.Post("/:id/delete", d.BookAdmin.Delete)
	books.Post("/:id/stock", d.BookAdmin.Stock)

	cats := admin.Group("/categories")
	cats.Get("/", d.CategoryAdmin.List)
	cats.Get("/new", d.CategoryAdmin.New)
	cats.Post("/", d.CategoryAdmin.Create)
	cats.Get("/:id", d.CategoryAdmin.Show)
	cats.Get("/:id/edit", d.CategoryAdmin.Edit)
	cats.Post("/:id", d.CategoryAdmin.Update)
	cats.Post("/:id/delete", d.CategoryAdmin.Delete)

	customers := admin.Group("/customers")
	customers.Get("/", d.CustomerAdmin.List)
	customers.Get("/new", d.CustomerAdmin.New)
	customers.Post("/", d.CustomerAdmin.Create)
	customers.Get("/:id", d.CustomerAdmin.Show)
	customers.Get("/:id/edit", d.CustomerAdmin.Edit)
	customers.Post("/:id", d.CustomerAdmin.Update)
	customers.Post("/:id/delete", d.CustomerAdmin.Delete)

	orders := admin.Group("/orders")
	orders.Get("/", d.OrderAdmin.List)
	orders.Get("/new", d.OrderAdmin.New)
	orders.Post("/", d.OrderAdmin.Create)
	orders.Get("/:id", d.OrderAdmin.Show)
	orders.Post("/:id/status", d.OrderAdmin.UpdateStatus)
	orders.Post("/:id/payment-status", d.OrderAdmin.UpdatePaymentStatus)
	orders.Post("/:id/cancel", d.OrderAdmin.Cancel)

	users := admin.Group("/users")
	users.Get("/", d.UserAdmin.List)
	users.Get("/new", d.UserAdmin.New)
	users.Post("/", d.UserAdmin.Create)
	users.Get("/:id", d.UserAdmin.Show)
	users.Get("/:id/edit", d.UserAdmin.Edit)
	users.Post("/:id", d.UserAdmin.Update)
	users.Post("/:id/delete", d.UserAdmin.Delete)
	users.Post("/:id/password", d.UserAdmin.Password)
}
