package api

import (
	"context"
	"net/http"
	"net/url"

	"schoolbooks/internal/domain"
)

type UserService struct{ c *Client }

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return call[[]domain.User](ctx, s.c, http.MethodGet, "/users", nil, nil)
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	return call[domain.User](ctx, s.c, http.MethodGet, idPath("/users", id), nil, nil)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return call[domain.User](ctx, s.c, http.MethodGet, "/users/email/"+seg(email), nil, nil)
}

func (s *UserService) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return call[[]domain.User](ctx, s.c, http.MethodGet, "/users/role/"+seg(string(role)), nil, nil)
}

func (s *UserService) Active(ctx context.Context) ([]domain.User, error) {
	return call[[]domain.User](ctx, s.c, http.MethodGet, "/users/active", nil, nil)
}

func (s *UserService) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return call[domain.User](ctx, s.c, http.MethodPost, "/users", nil, u)
}

func (s *UserService) Update(ctx context.Context, id int64, u domain.User) (domain.User, error) {
	return call[domain.User](ctx, s.c, http.MethodPut, idPath("/users", id), nil, u)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, idPath("/users", id), nil, nil, nil)
}

type passwordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *UserService) UpdatePassword(ctx context.Context, id int64, current, next string) error {
	return s.c.do(ctx, http.MethodPut, idPath("/users", id)+"/password", nil, passwordChange{current, next}, nil)
}

func (s *UserService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	return call[bool](ctx, s.c, http.MethodGet, "/users/check-email", url.Values{"email": {email}}, nil)
}
