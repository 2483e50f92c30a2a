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

type CategoryService struct {
	API *api.Client
}

func (s *CategoryService) List(ctx context.Context, q string) ([]domain.Category, error) {
	cats, err := s.API.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return catalog.FilterCategories(cats, q, false), nil
}

func (s *CategoryService) Get(ctx context.Context, id int64) (domain.Category, error) {
	return s.API.Categories.Get(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, f validate.CategoryForm) (domain.Category, error) {
	if errs := validate.Form(f); len(errs) > 0 {
		return domain.Category{}, errs
	}
	free, err := s.API.Categories.NameAvailable(ctx, strings.TrimSpace(f.Name))
	if err != nil {
		return domain.Category{}, err
	}
	if !free {
		return domain.Category{}, validate.Errors{{Field: "name", Message: "A category with this name already exists"}}
	}
	return s.API.Categories.Create(ctx, f.Category())
}

func (s *CategoryService) Update(ctx context.Context, id int64, f validate.CategoryForm) (domain.Category, error) {
	if errs := validate.Form(f); len(errs) > 0 {
		return domain.Category{}, errs
	}
	c := f.Category()
	c.ID = id
	return s.API.Categories.Update(ctx, id, c)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.API.Categories.Delete(ctx, id)
}
