package handlers

import (
	applog "schoolbooks/internal/log"
	"schoolbooks/internal/services"

	"github.com/gofiber/fiber/v2"
)

// LoadOperator attaches the signed-in operator, if any, for templates and logs.
func LoadOperator(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if op, err := auth.CurrentOperator(sid); err == nil && op != nil {
				c.Locals("operator", op)
			}
		}
		return c.Next()
	}
}

// RequireOperator guards the back-office. Anonymous visitors are sent to the
// login page; a stale or unknown session is refused.
func RequireOperator(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "anonymous"})
			return c.Redirect("/login")
		}
		op, err := auth.CurrentOperator(sid)
		if err != nil || op == nil || op.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			c.Status(fiber.StatusForbidden)
			return render(c, "notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("operator", op)
		return c.Next()
	}
}
