package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolbooks/internal/api"
	"schoolbooks/internal/domain"
)

type seen struct {
	method, path, query string
}

// recorder answers every request with an empty success envelope.
func recorder(t *testing.T) (*api.Client, func() seen) {
	t.Helper()
	var (
		mu   sync.Mutex
		last seen
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		last = seen{r.Method, r.URL.EscapedPath(), r.URL.RawQuery}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":null,"message":"OK"}`))
	}))
	t.Cleanup(srv.Close)
	return api.New(srv.URL + "/api"), func() seen {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func TestLookupEndpoints(t *testing.T) {
	c, last := recorder(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		call  func() error
		path  string
		query string
	}{
		{"book by isbn", func() error { _, err := c.Books.GetByISBN(ctx, "81/7450-49x"); return err },
			"/api/books/isbn/81%2F7450-49x", ""},
		{"books by grade", func() error { _, err := c.Books.ListByGrade(ctx, 7); return err },
			"/api/books/grade/7", ""},
		{"books by subject", func() error { _, err := c.Books.ListBySubject(ctx, "Social Science"); return err },
			"/api/books/subject/Social%20Science", ""},
		{"books by board", func() error { _, err := c.Books.ListByBoard(ctx, domain.BoardCBSE); return err },
			"/api/books/board/CBSE", ""},
		{"books by category", func() error { _, err := c.Books.ListByCategory(ctx, 3); return err },
			"/api/books/category/3", ""},
		{"category by name", func() error { _, err := c.Categories.GetByName(ctx, "Maths/Science"); return err },
			"/api/categories/name/Maths%2FScience", ""},
		{"categories by type", func() error { _, err := c.Categories.ListByType(ctx, domain.CategorySubject); return err },
			"/api/categories/type/SUBJECT", ""},
		{"categories with books", func() error { _, err := c.Categories.ListWithBooks(ctx); return err },
			"/api/categories/with-books", ""},
		{"customer by email", func() error { _, err := c.Customers.GetByEmail(ctx, "a/b@school.test"); return err },
			"/api/customers/email/a%2Fb@school.test", ""},
		{"customers by type", func() error { _, err := c.Customers.ListByType(ctx, domain.CustomerSchool); return err },
			"/api/customers/type/SCHOOL", ""},
		{"customer search", func() error {
			_, err := c.Customers.Search(ctx, domain.SearchRequest{Page: 2, Size: 20})
			return err
		}, "/api/customers/search", "page=2&size=20"},
		{"order by number", func() error { _, err := c.Orders.GetByNumber(ctx, "ORD-0001"); return err },
			"/api/orders/order-number/ORD-0001", ""},
		{"recent orders", func() error { _, err := c.Orders.Recent(ctx); return err },
			"/api/orders/recent", ""},
		{"order search", func() error {
			_, err := c.Orders.Search(ctx, domain.SearchRequest{OrderNumber: "ORD-1", CustomerID: 4})
			return err
		}, "/api/orders/search", "customerId=4&orderNumber=ORD-1"},
		{"user by email", func() error { _, err := c.Users.GetByEmail(ctx, "sarah@schoolbooks.test"); return err },
			"/api/users/email/sarah@schoolbooks.test", ""},
		{"users by role", func() error { _, err := c.Users.ListByRole(ctx, domain.RoleStaff); return err },
			"/api/users/role/STAFF", ""},
		{"active users", func() error { _, err := c.Users.Active(ctx); return err },
			"/api/users/active", ""},
		{"user email check", func() error { _, err := c.Users.EmailAvailable(ctx, "a+b@x.test"); return err },
			"/api/users/check-email", "email=a%2Bb%40x.test"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.call())
			got := last()
			assert.Equal(t, http.MethodGet, got.method)
			assert.Equal(t, tc.path, got.path)
			assert.Equal(t, tc.query, got.query)
		})
	}
}
