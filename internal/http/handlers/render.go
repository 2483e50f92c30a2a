package handlers

import (
	"context"
	"net/url"
	"strings"
	"time"

	"schoolbooks/internal/api"
	"schoolbooks/internal/domain"

	"github.com/gofiber/fiber/v2"
)

const (
	flashCookie  = "flash"
	flashSuccess = "success"
	flashError   = "error"
)

type Flash struct {
	Kind    string
	Message string
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if op := operator(c); op != nil {
		data["Operator"] = op
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// The cookie still carries a usable token when Locals was not populated.
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	if f, ok := popFlash(c); ok {
		data["Flash"] = f
	}
	data["Path"] = c.Path()
	return c.Render(tmpl, data)
}

func operator(c *fiber.Ctx) *domain.Operator {
	op, _ := c.Locals("operator").(*domain.Operator)
	return op
}

// reqCtx carries the operator to the backend authorizer.
func reqCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if op := operator(c); op != nil {
		ctx = api.WithPrincipal(ctx, api.Principal{Subject: op.Email, Role: op.Role})
	}
	return ctx
}

func setFlash(c *fiber.Ctx, kind, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func popFlash(c *fiber.Ctx) (Flash, bool) {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return Flash{}, false
	}
	c.Cookie(&fiber.Cookie{Name: flashCookie, Value: "", Path: "/", HTTPOnly: true, Expires: time.Now().Add(-time.Hour)})
	val, err := url.QueryUnescape(raw)
	if err != nil {
		return Flash{}, false
	}
	kind, msg, ok := strings.Cut(val, "|")
	if !ok || msg == "" || (kind != flashSuccess && kind != flashError) {
		return Flash{}, false
	}
	return Flash{Kind: kind, Message: msg}, true
}

// done flashes a success message and redirects (post/redirect/get).
func done(c *fiber.Ctx, msg, to string) error {
	setFlash(c, flashSuccess, msg)
	return c.Redirect(to)
}
