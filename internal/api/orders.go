package api

import (
	"context"
	"net/http"
	"net/url"

	"schoolbooks/internal/domain"
)

type OrderService struct{ c *Client }

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return call[[]domain.Order](ctx, s.c, http.MethodGet, "/orders", nil, nil)
}

func (s *OrderService) Get(ctx context.Context, id int64) (domain.Order, error) {
	return call[domain.Order](ctx, s.c, http.MethodGet, idPath("/orders", id), nil, nil)
}

func (s *OrderService) GetByNumber(ctx context.Context, number string) (domain.Order, error) {
	return call[domain.Order](ctx, s.c, http.MethodGet, "/orders/order-number/"+seg(number), nil, nil)
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return call[[]domain.Order](ctx, s.c, http.MethodGet, idPath("/orders/customer", customerID), nil, nil)
}

func (s *OrderService) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return call[[]domain.Order](ctx, s.c, http.MethodGet, "/orders/status/"+seg(string(status)), nil, nil)
}

func (s *OrderService) Recent(ctx context.Context) ([]domain.Order, error) {
	return call[[]domain.Order](ctx, s.c, http.MethodGet, "/orders/recent", nil, nil)
}

func (s *OrderService) Search(ctx context.Context, r domain.SearchRequest) (domain.Page[domain.Order], error) {
	return call[domain.Page[domain.Order]](ctx, s.c, http.MethodGet, "/orders/search", searchQuery(r), nil)
}

func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	return call[domain.Order](ctx, s.c, http.MethodPost, "/orders", nil, req)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	q := url.Values{"status": {string(status)}}
	return call[domain.Order](ctx, s.c, http.MethodPut, idPath("/orders", id)+"/status", q, nil)
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (domain.Order, error) {
	q := url.Values{"paymentStatus": {string(status)}}
	return call[domain.Order](ctx, s.c, http.MethodPut, idPath("/orders", id)+"/payment-status", q, nil)
}

// Cancel is a DELETE on the order; the backend keeps the row and marks it cancelled.
func (s *OrderService) Cancel(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, idPath("/orders", id), nil, nil, nil)
}

func (s *OrderService) TotalSales(ctx context.Context) (float64, error) {
	return call[float64](ctx, s.c, http.MethodGet, "/orders/analytics/total-sales", nil, nil)
}

// SalesByDateRange takes dates in the backend's ISO format (YYYY-MM-DD or full timestamps).
func (s *OrderService) SalesByDateRange(ctx context.Context, start, end string) (float64, error) {
	q := url.Values{"startDate": {start}, "endDate": {end}}
	return call[float64](ctx, s.c, http.MethodGet, "/orders/analytics/sales-by-date-range", q, nil)
}
