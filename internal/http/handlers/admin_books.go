package handlers

import (
	"schoolbooks/internal/domain"
	applog "schoolbooks/internal/log"
	"schoolbooks/internal/services"
	"schoolbooks/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type BookAdmin struct {
	Books *services.BookService
	Auth  *services.AuthService
}

func pathID(c *fiber.Ctx) (int64, bool) {
	return validate.ID(c.Params("id"))
}

func missing(c *fiber.Ctx, msg string) error {
	c.Status(fiber.StatusNotFound)
	return render(c, "notfound", fiber.Map{"Message": msg})
}

// GET /admin/books?q=
func (h *BookAdmin) List(c *fiber.Ctx) error {
	q := c.Query("q")
	books, err := h.Books.List(reqCtx(c), q)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.books.list.fail", "Failed to fetch books")
	}
	return render(c, "admin_books", fiber.Map{"Books": books, "Q": q})
}

func (h *BookAdmin) formData(c *fiber.Ctx, mode string, id int64, form *validate.BookForm) fiber.Map {
	cats, err := h.Books.Categories(reqCtx(c))
	if err != nil {
		// The form still works with a bare category id.
		applog.Error(c, "admin.books.categories.fail", err, nil)
	}
	return fiber.Map{"Mode": mode, "ID": id, "Form": form, "Categories": cats}
}

// GET /admin/books/new
func (h *BookAdmin) New(c *fiber.Ctx) error {
	form := validate.BookForm{Board: string(domain.BoardCBSE), Grade: 1, IsActive: true}
	return render(c, "admin_book_form", h.formData(c, "new", 0, &form))
}

// GET /admin/books/:id
func (h *BookAdmin) Show(c *fiber.Ctx) error { return h.load(c, "view") }

// GET /admin/books/:id/edit
func (h *BookAdmin) Edit(c *fiber.Ctx) error { return h.load(c, "edit") }

func (h *BookAdmin) load(c *fiber.Ctx, mode string) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Book not found")
	}
	b, err := h.Books.Get(reqCtx(c), id)
	if err != nil {
		return pageFail(c, h.Auth, err, "admin.books.get.fail", "Failed to fetch book")
	}
	form := validate.BookFormFrom(b)
	data := h.formData(c, mode, id, &form)
	data["Book"] = b
	return render(c, "admin_book_form", data)
}

// POST /admin/books
func (h *BookAdmin) Create(c *fiber.Ctx) error {
	var form validate.BookForm
	data := h.formData(c, "new", 0, &form)
	if err := c.BodyParser(&form); err != nil {
		return badForm(c, "admin.books.create", "admin_book_form", data, err)
	}
	b, err := h.Books.Create(reqCtx(c), form)
	if err != nil {
		return formFail(c, h.Auth, err, "admin.books.create.fail", "Failed to save book", "admin_book_form", data)
	}
	applog.Audit(c, "admin.books.create", map[string]any{"book_id": b.ID, "title": b.Title})
	return done(c, "Book created successfully", "/admin/books")
}

// POST /admin/books/:id
func (h *BookAdmin) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Book not found")
	}
	var form validate.BookForm
	data := h.formData(c, "edit", id, &form)
	if err := c.BodyParser(&form); err != nil {
		return badForm(c, "admin.books.update", "admin_book_form", data, err)
	}
	if _, err := h.Books.Update(reqCtx(c), id, form); err != nil {
		return formFail(c, h.Auth, err, "admin.books.update.fail", "Failed to save book", "admin_book_form", data)
	}
	applog.Audit(c, "admin.books.update", map[string]any{"book_id": id})
	return done(c, "Book updated successfully", "/admin/books")
}

// POST /admin/books/:id/delete
func (h *BookAdmin) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Book not found")
	}
	if err := h.Books.Delete(reqCtx(c), id); err != nil {
		return redirectFail(c, h.Auth, err, "admin.books.delete.fail", "Failed to delete book", "/admin/books")
	}
	applog.Audit(c, "admin.books.delete", map[string]any{"book_id": id})
	return done(c, "Book deleted successfully", "/admin/books")
}

// POST /admin/books/:id/stock
func (h *BookAdmin) Stock(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return missing(c, "Book not found")
	}
	var form validate.StockForm
	if err := c.BodyParser(&form); err != nil {
		setFlash(c, flashError, "Quantity must be a whole number")
		return c.Redirect("/admin/books")
	}
	if err := h.Books.UpdateStock(reqCtx(c), id, form); err != nil {
		return redirectFail(c, h.Auth, err, "admin.books.stock.fail", "Failed to update stock", "/admin/books")
	}
	applog.Audit(c, "admin.books.stock", map[string]any{"book_id": id, "quantity": form.Quantity})
	return done(c, "Stock updated", "/admin/books")
}
