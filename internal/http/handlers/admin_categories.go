package handlers

import (
	applog "schoolbooks/internal/log"
	"schoolbooks/internal/services"
	"schoolbooks/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryAdmin struct {
	Categories *services.CategoryService
	Auth       *services.AuthService
}

// GET /admin/categories?q=
func (h *CategoryAdmin) List(c *fiber.Ctx) error {
	q := c.Query("q")
	cats, err := h.Categories.List(reqCtx(c), q)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.categories.list.fail", "Failed to fetch categories")
	}
	return render(c, "admin_categories", fiber.Map{"Categories": cats, "Q": q})
}

// GET /admin/categories/new
func (h *CategoryAdmin) New(c *fiber.Ctx) error {
	return render(c, "admin_category_form", fiber.Map{"Mode": "new", "Form": &validate.CategoryForm{IsActive: true}})
}

func (h *CategoryAdmin) Show(c *fiber.Ctx) error { return h.load(c, "view") }

func (h *CategoryAdmin) Edit(c *fiber.Ctx) error { return h.load(c, "edit") }

func (h *CategoryAdmin) load(c *fiber.Ctx, mode string) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Category not found")
	}
	cat, err := h.Categories.Get(reqCtx(c), id)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.categories.get.fail", "Failed to fetch category")
	}
	form := validate.CategoryFormFrom(cat)
	return render(c, "admin_category_form", fiber.Map{"Mode": mode, "ID": id, "Form": &form, "Category": cat})
}

// POST /admin/categories
func (h *CategoryAdmin) Create(c *fiber.Ctx) error {
	var form validate.CategoryForm
	data := fiber.Map{"Mode": "new", "Form": &form}
	if err := c.BodyParser(&form); err != nil {
		return badForm(c, "admin.categories.create", "admin_category_form", data, err)
	}
	cat, err := h.Categories.Create(reqCtx(c), form)
	if err != nil {
		return formFail(c, h.Auth, err, "admin.categories.create.fail", "Failed to save category", "admin_category_form", data)
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category_id": cat.ID, "name": cat.Name})
	return done(c, "Category created successfully", "/admin/categories")
}

// POST /admin/categories/:id
func (h *CategoryAdmin) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Category not found")
	}
	var form validate.CategoryForm
	data := fiber.Map{"Mode": "edit", "ID": id, "Form": &form}
	if err := c.BodyParser(&form); err != nil {
		return badForm(c, "admin.categories.update", "admin_category_form", data, err)
	}
	if _, err := h.Categories.Update(reqCtx(c), id, form); err != nil {
		return formFail(c, h.Auth, err, "admin.categories.update.fail", "Failed to save category", "admin_category_form", data)
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category_id": id})
	return done(c, "Category updated successfully", "/admin/categories")
}

// POST /admin/categories/:id/delete
func (h *CategoryAdmin) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Category not found")
	}
	if err := h.Categories.Delete(reqCtx(c), id); err != nil {
		return redirectFail(c, h.Auth, err, "admin.categories.delete.fail", "Failed to delete category", "/admin/categories")
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category_id": id})
	return done(c, "Category deleted successfully", "/admin/categories")
}
