package handlers

import (
	applog "schoolbooks/internal/log"
	"schoolbooks/internal/services"
	"schoolbooks/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CustomerAdmin struct {
	Customers *services.CustomerService
	Auth      *services.AuthService
}

// GET /admin/customers?q=
func (h *CustomerAdmin) List(c *fiber.Ctx) error {
	q := c.Query("q")
	cs, err := h.Customers.List(reqCtx(c), q)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.customers.list.fail", "Failed to fetch customers")
	}
	return render(c, "admin_customers", fiber.Map{"Customers": cs, "Q": q})
}

// GET /admin/customers/new
func (h *CustomerAdmin) New(c *fiber.Ctx) error {
	return render(c, "admin_customer_form", fiber.Map{"Mode": "new", "Form": &validate.CustomerForm{CustomerType: "INDIVIDUAL", Country: "India", IsActive: true}})
}

func (h *CustomerAdmin) Show(c *fiber.Ctx) error { return h.load(c, "view") }

func (h *CustomerAdmin) Edit(c *fiber.Ctx) error { return h.load(c, "edit") }

func (h *CustomerAdmin) load(c *fiber.Ctx, mode string) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Customer not found")
	}
	cu, err := h.Customers.Get(reqCtx(c), id)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.customers.get.fail", "Failed to fetch customer")
	}
	form := validate.CustomerFormFrom(cu)
	data := fiber.Map{"Mode": mode, "ID": id, "Form": &form, "Customer": cu}
	if mode == "view" {
		// Order history is a nicety; the record itself already loaded.
		if orders, err := h.Customers.Orders(reqCtx(c), id); err == nil {
			data["Orders"] = orders
		} else {
			applog.Error(c, "admin.customers.orders.fail", err, map[string]any{"customer_id": id})
		}
	}
	return render(c, "admin_customer_form", data)
}

// POST /admin/customers
func (h *CustomerAdmin) Create(c *fiber.Ctx) error {
	var form validate.CustomerForm
	data := fiber.Map{"Mode": "new", "Form": &form}
	if err := c.BodyParser(&form); err != nil {
		return badForm(c, "admin.customers.create", "admin_customer_form", data, err)
	}
	cu, err := h.Customers.Create(reqCtx(c), form)
	if err != nil {
		return formFail(c, h.Auth, err, "admin.customers.create.fail", "Failed to save customer", "admin_customer_form", data)
	}
	applog.Audit(c, "admin.customers.create", map[string]any{"customer_id": cu.ID})
	return done(c, "Customer created successfully", "/admin/customers")
}

// POST /admin/customers/:id
func (h *CustomerAdmin) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Customer not found")
	}
	var form validate.CustomerForm
	data := fiber.Map{"Mode": "edit", "ID": id, "Form": &form}
	if err := c.BodyParser(&form); err != nil {
		return badForm(c, "admin.customers.update", "admin_customer_form", data, err)
	}
	if _, err := h.Customers.Update(reqCtx(c), id, form); err != nil {
		return formFail(c, h.Auth, err, "admin.customers.update.fail", "Failed to save customer", "admin_customer_form", data)
	}
	applog.Audit(c, "admin.customers.update", map[string]any{"customer_id": id})
	return done(c, "Customer updated successfully", "/admin/customers")
}

// POST /admin/customers/:id/delete
func (h *CustomerAdmin) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Customer not found")
	}
	if err := h.Customers.Delete(reqCtx(c), id); err != nil {
		return redirectFail(c, h.Auth, err, "admin.customers.delete.fail", "Failed to delete customer", "/admin/customers")
	}
	applog.Audit(c, "admin.customers.delete", map[string]any{"customer_id": id})
	return done(c, "Customer deleted successfully", "/admin/customers")
}
