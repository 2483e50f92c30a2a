package handlers

import (
	"time"

	applog "schoolbooks/internal/log"
	"schoolbooks/internal/services"
	"schoolbooks/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth         *services.AuthService
	CookieSecure bool
}

func (h *AuthHandler) setSID(c *fiber.Ctx, sid string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.CookieSecure,
		Expires:  expires,
	})
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if operator(c) != nil {
		return c.Redirect("/admin")
	}
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		c.Status(fiber.StatusUnauthorized)
		return render(c, "login", fiber.Map{"Err": "Invalid email or password", "Email": email})
	}
	if !validate.Password(pass) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		c.Status(fiber.StatusUnauthorized)
		return render(c, "login", fiber.Map{"Err": "Invalid email or password", "Email": email})
	}

	sid, op, err := h.Auth.Login(c.Cookies("sid"), email, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		c.Status(fiber.StatusUnauthorized)
		return render(c, "login", fiber.Map{"Err": "Invalid email or password", "Email": email})
	}
	h.setSID(c, sid, h.Auth.SessionExpiry())
	c.Locals("operator", op)

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return done(c, "Welcome back", "/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		_ = h.Auth.Logout(sid)
	}
	h.setSID(c, "", time.Now().Add(-time.Hour))
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return done(c, "You have been signed out", "/")
}
