package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"schoolbooks/internal/api"
	"schoolbooks/internal/catalog"
	"schoolbooks/internal/domain"
	"schoolbooks/internal/validate"
)

type OrderService struct {
	API *api.Client
}

var reOrderNumber = regexp.MustCompile(`^(?i)ORD-[0-9A-Z-]+$`)

// List filters by status on the backend and by q locally. A q shaped like an
// order number is looked up directly.
func (s *OrderService) List(ctx context.Context, status domain.OrderStatus, q string) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)
	q = strings.TrimSpace(q)
	if status == "" && reOrderNumber.MatchString(q) {
		o, err := s.API.Orders.GetByNumber(ctx, strings.ToUpper(q))
		switch {
		case errors.Is(err, api.ErrNotFound):
			return []domain.Order{}, nil
		case err != nil:
			return nil, fmt.Errorf("order %s: %w", q, err)
		}
		return []domain.Order{o}, nil
	}
	if status != "" {
		orders, err = s.API.Orders.ListByStatus(ctx, status)
	} else {
		orders, err = s.API.Orders.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return catalog.FilterOrders(orders, q), nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (domain.Order, error) {
	return s.API.Orders.Get(ctx, id)
}

type OrderFormOptions struct {
	Customers []domain.Customer
	Books     []domain.Book
}

// FormOptions loads the customer and book pickers for the create form.
func (s *OrderService) FormOptions(ctx context.Context) (OrderFormOptions, error) {
	var o OrderFormOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { o.Customers, err = s.API.Customers.List(gctx); return })
	g.Go(func() (err error) { o.Books, err = s.API.Books.List(gctx); return })
	if err := g.Wait(); err != nil {
		return OrderFormOptions{}, fmt.Errorf("order form: %w", err)
	}
	o.Books = catalog.SortBooks(o.Books, catalog.SortName)
	return o, nil
}

func (s *OrderService) Create(ctx context.Context, f validate.OrderForm) (domain.Order, error) {
	f.Collect()
	if err := s.listPrices(ctx, f.Lines); err != nil {
		return domain.Order{}, err
	}
	if errs := validate.Form(f); len(errs) > 0 {
		return domain.Order{}, errs
	}
	return s.API.Orders.Create(ctx, f.Request())
}

// listPrices fills a blank unit price with the book's selling price.
func (s *OrderService) listPrices(ctx context.Context, lines []validate.OrderLineForm) error {
	blank := false
	for _, l := range lines {
		if l.BookID > 0 && l.UnitPrice == 0 {
			blank = true
		}
	}
	if !blank {
		return nil
	}
	books, err := s.API.Books.List(ctx)
	if err != nil {
		return err
	}
	price := make(map[int64]float64, len(books))
	for _, b := range books {
		price[b.ID] = b.Price
	}
	for i := range lines {
		if lines[i].BookID > 0 && lines[i].UnitPrice == 0 {
			lines[i].UnitPrice = price[lines[i].BookID]
		}
	}
	return nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, f validate.OrderStatusForm) (domain.Order, error) {
	if errs := validate.Form(f); len(errs) > 0 {
		return domain.Order{}, errs
	}
	return s.API.Orders.UpdateStatus(ctx, id, domain.OrderStatus(f.Status))
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id int64, f validate.PaymentStatusForm) (domain.Order, error) {
	if errs := validate.Form(f); len(errs) > 0 {
		return domain.Order{}, errs
	}
	return s.API.Orders.UpdatePaymentStatus(ctx, id, domain.PaymentStatus(f.PaymentStatus))
}

func (s *OrderService) Cancel(ctx context.Context, id int64) error {
	return s.API.Orders.Cancel(ctx, id)
}
