package handlers

import (
	"errors"
	"strconv"

	"schoolbooks/internal/config"
	"schoolbooks/internal/domain"
	applog "schoolbooks/internal/log"
	"schoolbooks/internal/repos"
	"schoolbooks/internal/services"
	"schoolbooks/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Dash    *services.DashboardService
	Contact *services.ContactService
	Auth    *services.AuthService
	Config  config.Config
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	v, err := h.Dash.Dashboard(reqCtx(c))
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.dashboard.fail", "Failed to load dashboard data")
	}
	return render(c, "admin_dashboard", fiber.Map{"D": v})
}

// GET /admin/analytics?start=&end=&limit=
func (h *AdminHandler) Analytics(c *fiber.Ctx) error {
	rng := validate.DateRangeForm{Start: c.Query("start"), End: c.Query("end")}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit > 50 {
		limit = 50
	}
	v, err := h.Dash.Analytics(reqCtx(c), rng, limit)
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		applog.Security(c, "validation.fail", map[string]any{"action": "admin.analytics", "fields": verrs.Map()})
		// Show the rest of the report without the range.
		v, err = h.Dash.Analytics(reqCtx(c), validate.DateRangeForm{}, limit)
		v.Range = rng
		if err == nil {
			c.Status(fiber.StatusUnprocessableEntity)
			return render(c, "admin_analytics", fiber.Map{"A": v, "Error": verrs.First(), "Errors": verrs.Map()})
		}
	}
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.analytics.fail", "Failed to load analytics")
	}
	return render(c, "admin_analytics", fiber.Map{"A": v})
}

type setting struct {
	Key, Value string
}

// GET /admin/settings
func (h *AdminHandler) Settings(c *fiber.Ctx) error {
	cfg := h.Config
	rows := []setting{
		{"API_BASE_URL", cfg.APIBaseURL},
		{"API_TOKEN", config.Mask(cfg.APIToken)},
		{"API_JWT_SECRET", config.Mask(cfg.APIJWTSecret)},
		{"API_TIMEOUT", cfg.APITimeout.String()},
		{"API_RPS", strconv.Itoa(cfg.APIRPS)},
		{"API_RETRIES", strconv.Itoa(cfg.APIRetries)},
		{"DB_DSN", cfg.DBDSN},
		{"KAFKA_BROKERS", cfg.KafkaBrokers},
		{"CONTACT_TOPIC", cfg.ContactTopic},
		{"LOW_STOCK_THRESHOLD", strconv.Itoa(cfg.LowStockThreshold)},
		{"COOKIE_SECURE", strconv.FormatBool(cfg.CookieSecure)},
		{"LOG_FILE", cfg.LogFile},
	}
	ops, err := h.Auth.ListOperators()
	if err != nil {
		applog.Error(c, "admin.settings.operators.fail", err, nil)
	}
	return render(c, "admin_settings", fiber.Map{"Settings": rows, "Operators": ops})
}

// GET /admin/messages?status=
func (h *AdminHandler) Messages(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != domain.MessageNew && status != domain.MessageHandled {
		status = ""
	}
	msgs, err := h.Contact.List(status)
	if err != nil {
		applog.Error(c, "admin.messages.list.fail", err, nil)
		c.Status(fiber.StatusInternalServerError)
		return render(c, "notfound", fiber.Map{"Message": "Could not load messages"})
	}
	return render(c, "admin_messages", fiber.Map{"Messages": msgs, "Status": status, "Subjects": h.Contact.Subjects()})
}

// POST /admin/messages/:id/handled
func (h *AdminHandler) MarkHandled(c *fiber.Ctx) error {
	id := c.Params("id")
	m, err := h.Contact.MarkHandled(id)
	if err != nil {
		if errors.Is(err, repos.ErrMessageNotFound) {
			setFlash(c, flashError, "Message not found")
		} else {
			applog.Error(c, "admin.messages.handled.fail", err, map[string]any{"id": id})
			setFlash(c, flashError, "Could not update message")
		}
		return c.Redirect("/admin/messages")
	}
	applog.Audit(c, "admin.messages.handled", map[string]any{"id": id, "subject": m.Subject})
	return done(c, "Message marked as handled", "/admin/messages")
}
