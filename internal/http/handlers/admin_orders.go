package handlers

import (
	"strconv"

	"schoolbooks/internal/domain"
	applog "schoolbooks/internal/log"
	"schoolbooks/internal/services"
	"schoolbooks/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderAdmin struct {
	Orders *services.OrderService
	Auth   *services.AuthService
}

// GET /admin/orders?status=&q=
func (h *OrderAdmin) List(c *fiber.Ctx) error {
	q := c.Query("q")
	status := domain.OrderStatus(c.Query("status"))
	if !domain.OneOf(status, domain.OrderStatuses) {
		status = ""
	}
	orders, err := h.Orders.List(reqCtx(c), status, q)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.orders.list.fail", "Failed to fetch orders")
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders, "Q": q, "Status": string(status)})
}

// GET /admin/orders/:id
func (h *OrderAdmin) Show(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Order not found")
	}
	o, err := h.Orders.Get(reqCtx(c), id)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.orders.get.fail", "Failed to fetch order")
	}
	return render(c, "admin_order", fiber.Map{"Order": o})
}

func (h *OrderAdmin) formData(c *fiber.Ctx, form *validate.OrderForm) (fiber.Map, error) {
	opts, err := h.Orders.FormOptions(reqCtx(c))
	if err != nil {
		return nil, err
	}
	// Always offer a few blank lines to fill in.
	rows := len(form.BookIDs)
	if rows < 3 {
		rows = 3
	}
	return fiber.Map{"Form": form, "Customers": opts.Customers, "Books": opts.Books, "Rows": seq(0, rows-1)}, nil
}

// GET /admin/orders/new
func (h *OrderAdmin) New(c *fiber.Ctx) error {
	form := validate.OrderForm{PaymentMethod: string(domain.PayCashOnDelivery)}
	if id, ok := validate.ID(c.Query("customer")); ok {
		form.CustomerID = id
	}
	data, err := h.formData(c, &form)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.orders.form.fail", "Failed to load customers and books")
	}
	return render(c, "admin_order_form", data)
}

// POST /admin/orders
func (h *OrderAdmin) Create(c *fiber.Ctx) error {
	var form validate.OrderForm
	parseErr := c.BodyParser(&form)
	data, err := h.formData(c, &form)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.orders.form.fail", "Failed to load customers and books")
	}
	if parseErr != nil {
		return badForm(c, "admin.orders.create", "admin_order_form", data, parseErr)
	}
	o, err := h.Orders.Create(reqCtx(c), form)
	if err != nil {
		return formFail(c, h.Auth, err, "admin.orders.create.fail", "Failed to create order", "admin_order_form", data)
	}
	applog.Audit(c, "admin.orders.create", map[string]any{"order_id": o.ID, "customer_id": o.CustomerID, "lines": len(o.OrderItems)})
	return done(c, "Order "+o.OrderNumber+" created", orderPath(o.ID))
}

func orderPath(id int64) string { return "/admin/orders/" + strconv.FormatInt(id, 10) }

// POST /admin/orders/:id/status
func (h *OrderAdmin) UpdateStatus(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Order not found")
	}
	form := validate.OrderStatusForm{Status: c.FormValue("status")}
	if _, err := h.Orders.UpdateStatus(reqCtx(c), id, form); err != nil {
		return redirectFail(c, h.Auth, err, "admin.orders.status.fail", "Failed to update order status", orderPath(id))
	}
	applog.Audit(c, "admin.orders.status", map[string]any{"order_id": id, "status": form.Status})
	return done(c, "Order status updated", orderPath(id))
}

// POST /admin/orders/:id/payment-status
func (h *OrderAdmin) UpdatePaymentStatus(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Order not found")
	}
	form := validate.PaymentStatusForm{PaymentStatus: c.FormValue("paymentStatus")}
	if _, err := h.Orders.UpdatePaymentStatus(reqCtx(c), id, form); err != nil {
		return redirectFail(c, h.Auth, err, "admin.orders.payment.fail", "Failed to update payment status", orderPath(id))
	}
	applog.Audit(c, "admin.orders.payment", map[string]any{"order_id": id, "payment_status": form.PaymentStatus})
	return done(c, "Payment status updated", orderPath(id))
}

// POST /admin/orders/:id/cancel
func (h *OrderAdmin) Cancel(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Order not found")
	}
	if err := h.Orders.Cancel(reqCtx(c), id); err != nil {
		return redirectFail(c, h.Auth, err, "admin.orders.cancel.fail", "Failed to cancel order", orderPath(id))
	}
	applog.Audit(c, "admin.orders.cancel", map[string]any{"order_id": id})
	return done(c, "Order cancelled", orderPath(id))
}
