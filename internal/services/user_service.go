package services

import (
	"context"
	"fmt"
	"strings"

	"schoolbooks/internal/api"
	"schoolbooks/internal/catalog"
	"schoolbooks/internal/domain"
	"schoolbooks/internal/validate"
)

// UserService manages backend staff accounts, not local operators.
type UserService struct {
	API *api.Client
}

// List asks the backend for one role when role is set and filters q locally.
func (s *UserService) List(ctx context.Context, q string, role domain.Role) ([]domain.User, error) {
	var (
		users []domain.User
		err   error
	)
	if role != "" {
		users, err = s.API.Users.ListByRole(ctx, role)
	} else {
		users, err = s.API.Users.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return catalog.FilterUsers(users, q, role), nil
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.API.Users.Get(ctx, id)
}

func (s *UserService) Create(ctx context.Context, f validate.UserForm) (domain.User, error) {
	if errs := f.ForCreate(); len(errs) > 0 {
		return domain.User{}, errs
	}
	free, err := s.API.Users.EmailAvailable(ctx, strings.TrimSpace(f.Email))
	if err != nil {
		return domain.User{}, err
	}
	if !free {
		return domain.User{}, validate.Errors{{Field: "email", Message: "A user with this email already exists"}}
	}
	return s.API.Users.Create(ctx, f.User())
}

// Update never sends a password; that goes through ChangePassword.
func (s *UserService) Update(ctx context.Context, id int64, f validate.UserForm) (domain.User, error) {
	f.Password = ""
	if errs := validate.Form(f); len(errs) > 0 {
		return domain.User{}, errs
	}
	u := f.User()
	u.ID = id
	return s.API.Users.Update(ctx, id, u)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.API.Users.Delete(ctx, id)
}

func (s *UserService) ChangePassword(ctx context.Context, id int64, f validate.PasswordForm) error {
	if errs := validate.Form(f); len(errs) > 0 {
		return errs
	}
	return s.API.Users.UpdatePassword(ctx, id, f.Current, f.New)
}
