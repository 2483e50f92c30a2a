package api

import (
	"context"
	"net/http"
	"net/url"

	"schoolbooks/internal/domain"
)

type CustomerService struct{ c *Client }

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return call[[]domain.Customer](ctx, s.c, http.MethodGet, "/customers", nil, nil)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (domain.Customer, error) {
	return call[domain.Customer](ctx, s.c, http.MethodGet, idPath("/customers", id), nil, nil)
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	return call[domain.Customer](ctx, s.c, http.MethodGet, "/customers/email/"+seg(email), nil, nil)
}

func (s *CustomerService) ListByType(ctx context.Context, t domain.CustomerType) ([]domain.Customer, error) {
	return call[[]domain.Customer](ctx, s.c, http.MethodGet, "/customers/type/"+seg(string(t)), nil, nil)
}

func (s *CustomerService) Search(ctx context.Context, r domain.SearchRequest) (domain.Page[domain.Customer], error) {
	return call[domain.Page[domain.Customer]](ctx, s.c, http.MethodGet, "/customers/search", searchQuery(r), nil)
}

func (s *CustomerService) Create(ctx context.Context, cu domain.Customer) (domain.Customer, error) {
	return call[domain.Customer](ctx, s.c, http.MethodPost, "/customers", nil, cu)
}

func (s *CustomerService) Update(ctx context.Context, id int64, cu domain.Customer) (domain.Customer, error) {
	return call[domain.Customer](ctx, s.c, http.MethodPut, idPath("/customers", id), nil, cu)
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, idPath("/customers", id), nil, nil, nil)
}

func (s *CustomerService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	return call[bool](ctx, s.c, http.MethodGet, "/customers/check-email", url.Values{"email": {email}}, nil)
}
