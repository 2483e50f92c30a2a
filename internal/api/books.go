package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"schoolbooks/internal/domain"
)

type BookService struct{ c *Client }

func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	return call[[]domain.Book](ctx, s.c, http.MethodGet, "/books", nil, nil)
}

func (s *BookService) Get(ctx context.Context, id int64) (domain.Book, error) {
	return call[domain.Book](ctx, s.c, http.MethodGet, idPath("/books", id), nil, nil)
}

func (s *BookService) GetByISBN(ctx context.Context, isbn string) (domain.Book, error) {
	return call[domain.Book](ctx, s.c, http.MethodGet, "/books/isbn/"+seg(isbn), nil, nil)
}

func (s *BookService) ListByGrade(ctx context.Context, grade int) ([]domain.Book, error) {
	return call[[]domain.Book](ctx, s.c, http.MethodGet, "/books/grade/"+strconv.Itoa(grade), nil, nil)
}

func (s *BookService) ListBySubject(ctx context.Context, subject string) ([]domain.Book, error) {
	return call[[]domain.Book](ctx, s.c, http.MethodGet, "/books/subject/"+seg(subject), nil, nil)
}

func (s *BookService) ListByBoard(ctx context.Context, board domain.Board) ([]domain.Book, error) {
	return call[[]domain.Book](ctx, s.c, http.MethodGet, "/books/board/"+seg(string(board)), nil, nil)
}

func (s *BookService) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Book, error) {
	return call[[]domain.Book](ctx, s.c, http.MethodGet, idPath("/books/category", categoryID), nil, nil)
}

func (s *BookService) Search(ctx context.Context, r domain.SearchRequest) (domain.Page[domain.Book], error) {
	return call[domain.Page[domain.Book]](ctx, s.c, http.MethodGet, "/books/search", searchQuery(r), nil)
}

// LowStock lists books under threshold; zero lets the backend pick its default.
func (s *BookService) LowStock(ctx context.Context, threshold int) ([]domain.Book, error) {
	q := url.Values{}
	if threshold > 0 {
		q.Set("threshold", strconv.Itoa(threshold))
	}
	return call[[]domain.Book](ctx, s.c, http.MethodGet, "/books/low-stock", q, nil)
}

func (s *BookService) BestSellers(ctx context.Context, limit int) ([]domain.Book, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return call[[]domain.Book](ctx, s.c, http.MethodGet, "/books/bestsellers", q, nil)
}

func (s *BookService) Create(ctx context.Context, b domain.Book) (domain.Book, error) {
	return call[domain.Book](ctx, s.c, http.MethodPost, "/books", nil, b)
}

func (s *BookService) Update(ctx context.Context, id int64, b domain.Book) (domain.Book, error) {
	return call[domain.Book](ctx, s.c, http.MethodPut, idPath("/books", id), nil, b)
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, idPath("/books", id), nil, nil, nil)
}

func (s *BookService) UpdateStock(ctx context.Context, id int64, quantity int) error {
	q := url.Values{"quantity": {strconv.Itoa(quantity)}}
	return s.c.do(ctx, http.MethodPut, idPath("/books", id)+"/stock", q, nil, nil)
}
