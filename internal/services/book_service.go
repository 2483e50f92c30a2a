package services

import (
	"context"
	"fmt"

	"schoolbooks/internal/api"
	"schoolbooks/internal/catalog"
	"schoolbooks/internal/domain"
	"schoolbooks/internal/validate"
)

// BookService is the back-office side of the catalog. Forms are validated
// before any backend call is made.
type BookService struct {
	API *api.Client
}

func (s *BookService) List(ctx context.Context, q string) ([]domain.Book, error) {
	books, err := s.API.Books.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return catalog.FilterAdminBooks(books, q), nil
}

func (s *BookService) Get(ctx context.Context, id int64) (domain.Book, error) {
	return s.API.Books.Get(ctx, id)
}

func (s *BookService) Create(ctx context.Context, f validate.BookForm) (domain.Book, error) {
	if errs := validate.Form(f); len(errs) > 0 {
		return domain.Book{}, errs
	}
	return s.API.Books.Create(ctx, f.Book())
}

func (s *BookService) Update(ctx context.Context, id int64, f validate.BookForm) (domain.Book, error) {
	if errs := validate.Form(f); len(errs) > 0 {
		return domain.Book{}, errs
	}
	b := f.Book()
	b.ID = id
	return s.API.Books.Update(ctx, id, b)
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	return s.API.Books.Delete(ctx, id)
}

func (s *BookService) UpdateStock(ctx context.Context, id int64, f validate.StockForm) error {
	if errs := validate.Form(f); len(errs) > 0 {
		return errs
	}
	return s.API.Books.UpdateStock(ctx, id, f.Quantity)
}

// Categories feeds the category select on the book form.
func (s *BookService) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.API.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FilterCategories(cats, "", true), nil
}
