package handlers

import (
	"strconv"

	applog "schoolbooks/internal/log"
	"schoolbooks/internal/services"
	"schoolbooks/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	Contact *services.ContactService
	Store   *services.StoreService
}

// GET /contact[?book=ID]
func (h *ContactHandler) Form(c *fiber.Ctx) error {
	form := validate.ContactForm{Subject: "general"}
	data := fiber.Map{"Form": &form}
	if id, ok := validate.ID(c.Query("book")); ok {
		// An unknown book just means no prefill.
		if b, err := h.Store.Book(reqCtx(c), id); err == nil {
			form.BookID = b.ID
			form.Subject = "books"
			form.Message = "I would like to order \"" + b.Title + "\" (" + b.Board.Label() + ", Grade " + strconv.Itoa(b.Grade) + ")."
			data["Book"] = b
		}
	}
	return render(c, "contact", data)
}

// POST /contact
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var form validate.ContactForm
	data := fiber.Map{"Form": &form}
	if err := c.BodyParser(&form); err != nil {
		return badForm(c, "contact.submit", "contact", data, err)
	}
	m, err := h.Contact.Submit(reqCtx(c), form)
	if err != nil {
		return formFail(c, nil, err, "contact.submit.fail", "We could not send your message. Please try again.", "contact", data)
	}
	applog.Audit(c, "contact.submit", map[string]any{"id": m.ID, "subject": m.Subject, "book_id": m.BookID})
	return done(c, "Thank you! Your message has been sent. We will get back to you soon.", "/contact")
}
