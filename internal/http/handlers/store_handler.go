package handlers

import (
	"sort"
	"strings"

	"schoolbooks/internal/catalog"
	"schoolbooks/internal/domain"
	applog "schoolbooks/internal/log"
	"schoolbooks/internal/services"
	"schoolbooks/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type StoreHandler struct {
	Store *services.StoreService
}

// GET /
func (h *StoreHandler) Home(c *fiber.Ctx) error {
	v, err := h.Store.Home(reqCtx(c))
	if err != nil {
		return pageFail(c, nil, err, "store.home.fail", "Could not load the catalog. Please try again.")
	}
	return render(c, "home", fiber.Map{"Featured": v.Featured, "Categories": v.Categories})
}

// ShopParams is the shop page state as carried in the query string.
type ShopParams struct {
	Search  string
	Board   string
	Grade   int
	Subject string
	Min     string
	Max     string
	Sort    string
	View    string
}

// GET /shop
func (h *StoreHandler) Shop(c *fiber.Ctx) error {
	p := ShopParams{
		Board:   c.Query("board"),
		Subject: strings.TrimSpace(c.Query("subject")),
		Sort:    c.Query("sort", catalog.SortName),
		View:    c.Query("view", "grid"),
	}
	hints := map[string]string{}
	q := services.ShopQuery{Sort: p.Sort}

	if s, ok := validate.Q(c.Query("search")); ok {
		p.Search = s
		q.Filter.Query = s
	}
	if p.Board != "" {
		if domain.OneOf(domain.Board(p.Board), domain.Boards) {
			q.Filter.Board = domain.Board(p.Board)
		} else {
			p.Board = ""
		}
	}
	if g, ok := validate.Int(c.Query("grade")); ok {
		p.Grade = g
		q.Filter.Grade = g
	} else {
		hints["grade"] = "Grade must be a number"
	}
	q.Filter.Subject = p.Subject
	if v, ok := validate.Price(c.Query("min")); ok {
		q.Filter.MinPrice = v
		p.Min = deref(v)
	} else {
		hints["min"] = "Minimum price must be a number"
	}
	if v, ok := validate.Price(c.Query("max")); ok {
		q.Filter.MaxPrice = v
		p.Max = deref(v)
	} else {
		hints["max"] = "Maximum price must be a number"
	}
	if p.View != "list" {
		p.View = "grid"
	}
	if len(hints) > 0 {
		fields := make([]string, 0, len(hints))
		for f := range hints {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		applog.Security(c, "validation.fail", map[string]any{"fields": fields})
	}

	v, err := h.Store.Shop(reqCtx(c), q)
	if err != nil {
		return pageFail(c, nil, err, "store.shop.fail", "Could not load books. Please try again.")
	}
	return render(c, "shop", fiber.Map{
		"Books":    v.Books,
		"Shown":    len(v.Books),
		"Total":    v.Total,
		"Subjects": v.Subjects,
		"Grades":   v.Grades,
		"P":        p,
		"Hints":    hints,
	})
}

// GET /books/:id
func (h *StoreHandler) Book(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		c.Status(fiber.StatusNotFound)
		return render(c, "notfound", fiber.Map{"Message": "This book is not available"})
	}
	b, err := h.Store.Book(reqCtx(c), id)
	if err != nil {
		return pageFail(c, nil, err, "store.book.fail", "This book is not available")
	}
	if !b.Active() {
		c.Status(fiber.StatusNotFound)
		return render(c, "notfound", fiber.Map{"Message": "This book is not available"})
	}
	return render(c, "book", fiber.Map{"Book": b, "Stock": catalog.StockLevel(b.Quantity)})
}

// GET /categories
func (h *StoreHandler) Categories(c *fiber.Ctx) error {
	q, _ := validate.Q(c.Query("q"))
	v, err := h.Store.Categories(reqCtx(c), q)
	if err != nil {
		return pageFail(c, nil, err, "store.categories.fail", "Could not load categories. Please try again.")
	}
	return render(c, "categories", fiber.Map{"Groups": v.Groups, "Grades": v.Grades, "Total": v.Total, "Q": q})
}

// GET /about
func (h *StoreHandler) About(c *fiber.Ctx) error {
	return render(c, "about", nil)
}
