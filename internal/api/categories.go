package api

import (
	"context"
	"net/http"
	"net/url"

	"schoolbooks/internal/domain"
)

type CategoryService struct{ c *Client }

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return call[[]domain.Category](ctx, s.c, http.MethodGet, "/categories", nil, nil)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (domain.Category, error) {
	return call[domain.Category](ctx, s.c, http.MethodGet, idPath("/categories", id), nil, nil)
}

func (s *CategoryService) GetByName(ctx context.Context, name string) (domain.Category, error) {
	return call[domain.Category](ctx, s.c, http.MethodGet, "/categories/name/"+seg(name), nil, nil)
}

func (s *CategoryService) ListByType(ctx context.Context, t domain.CategoryType) ([]domain.Category, error) {
	return call[[]domain.Category](ctx, s.c, http.MethodGet, "/categories/type/"+seg(string(t)), nil, nil)
}

func (s *CategoryService) ListWithBooks(ctx context.Context) ([]domain.Category, error) {
	return call[[]domain.Category](ctx, s.c, http.MethodGet, "/categories/with-books", nil, nil)
}

func (s *CategoryService) Create(ctx context.Context, cat domain.Category) (domain.Category, error) {
	return call[domain.Category](ctx, s.c, http.MethodPost, "/categories", nil, cat)
}

func (s *CategoryService) Update(ctx context.Context, id int64, cat domain.Category) (domain.Category, error) {
	return call[domain.Category](ctx, s.c, http.MethodPut, idPath("/categories", id), nil, cat)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, idPath("/categories", id), nil, nil, nil)
}

func (s *CategoryService) NameAvailable(ctx context.Context, name string) (bool, error) {
	return call[bool](ctx, s.c, http.MethodGet, "/categories/check-name", url.Values{"name": {name}}, nil)
}
