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

type CustomerService struct {
	API *api.Client
}

func (s *CustomerService) List(ctx context.Context, q string) ([]domain.Customer, error) {
	cs, err := s.API.Customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return catalog.FilterCustomers(cs, q), nil
}

func (s *CustomerService) Get(ctx context.Context, id int64) (domain.Customer, error) {
	return s.API.Customers.Get(ctx, id)
}

// Orders lists a customer's order history for the detail page.
func (s *CustomerService) Orders(ctx context.Context, id int64) ([]domain.Order, error) {
	return s.API.Orders.ListByCustomer(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, f validate.CustomerForm) (domain.Customer, error) {
	if errs := validate.Form(f); len(errs) > 0 {
		return domain.Customer{}, errs
	}
	free, err := s.API.Customers.EmailAvailable(ctx, strings.TrimSpace(f.Email))
	if err != nil {
		return domain.Customer{}, err
	}
	if !free {
		return domain.Customer{}, validate.Errors{{Field: "email", Message: "A customer with this email already exists"}}
	}
	return s.API.Customers.Create(ctx, f.Customer())
}

func (s *CustomerService) Update(ctx context.Context, id int64, f validate.CustomerForm) (domain.Customer, error) {
	if errs := validate.Form(f); len(errs) > 0 {
		return domain.Customer{}, errs
	}
	c := f.Customer()
	c.ID = id
	return s.API.Customers.Update(ctx, id, c)
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return s.API.Customers.Delete(ctx, id)
}
