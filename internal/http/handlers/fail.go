package handlers

import (
	"errors"
	"net/http"
	"time"

	"schoolbooks/internal/api"
	applog "schoolbooks/internal/log"
	"schoolbooks/internal/services"
	"schoolbooks/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// endSession handles a backend 401: the operator is signed out and sent to the login page.
func endSession(c *fiber.Ctx, auth *services.AuthService) error {
	sid := c.Cookies("sid")
	if auth != nil && sid != "" {
		_ = auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{Name: "sid", Value: "", Path: "/", HTTPOnly: true, SameSite: fiber.CookieSameSiteLaxMode, Expires: time.Now().Add(-time.Hour)})
	c.Locals("operator", nil)
	applog.Security(c, "auth.session.expired", map[string]any{"sid": sid})
	setFlash(c, flashError, "Your session has expired. Please sign in again.")
	return c.Redirect("/login")
}

func unauthorized(auth *services.AuthService, err error) bool {
	return auth != nil && errors.Is(err, api.ErrUnauthorized)
}

// pageFail renders the error page for a read that failed. Missing records are
// a 404; anything else the backend did wrong is a 502.
func pageFail(c *fiber.Ctx, auth *services.AuthService, err error, action, msg string) error {
	if unauthorized(auth, err) {
		return endSession(c, auth)
	}
	status := http.StatusBadGateway
	if errors.Is(err, api.ErrNotFound) {
		status = http.StatusNotFound
	}
	applog.Error(c, action, err, map[string]any{"status": status})
	c.Status(status)
	return render(c, "notfound", fiber.Map{"Message": api.Message(err, msg)})
}

// redirectFail reports a failed mutation through the flash banner.
func redirectFail(c *fiber.Ctx, auth *services.AuthService, err error, action, fallback, to string) error {
	if unauthorized(auth, err) {
		return endSession(c, auth)
	}
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		applog.Security(c, "validation.fail", map[string]any{"action": action, "fields": verrs.Map()})
		setFlash(c, flashError, verrs.First())
		return c.Redirect(to)
	}
	applog.Error(c, action, err, nil)
	setFlash(c, flashError, api.Message(err, fallback))
	return c.Redirect(to)
}

// formFail re-renders a form with the submitted values and the error, so
// nothing typed is lost.
func formFail(c *fiber.Ctx, auth *services.AuthService, err error, action, fallback, tmpl string, data fiber.Map) error {
	if unauthorized(auth, err) {
		return endSession(c, auth)
	}
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		applog.Security(c, "validation.fail", map[string]any{"action": action, "fields": verrs.Map()})
		data["Errors"] = verrs.Map()
		data["Error"] = verrs.First()
		c.Status(http.StatusUnprocessableEntity)
		return render(c, tmpl, data)
	}
	applog.Error(c, action, err, nil)
	data["Error"] = api.Message(err, fallback)
	status := http.StatusBadGateway
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		status = apiErr.Status
	}
	c.Status(status)
	return render(c, tmpl, data)
}

// badForm answers a body that could not even be parsed into the form struct.
func badForm(c *fiber.Ctx, action, tmpl string, data fiber.Map, err error) error {
	applog.Security(c, "validation.fail", map[string]any{"action": action, "reason": "parse", "err": err.Error()})
	data["Error"] = "Please check the form: some values are not valid numbers."
	c.Status(http.StatusBadRequest)
	return render(c, tmpl, data)
}
