package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolbooks/internal/api"
	"schoolbooks/internal/apitest"
	"schoolbooks/internal/domain"
)

func TestListBooksDecodesEnvelope(t *testing.T) {
	srv := apitest.New(t)
	c := api.New(srv.BaseURL())

	books, err := c.Books.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Mathematics Part 1", books[0].Title)
	assert.Equal(t, domain.BoardCBSE, books[0].Board)
}

func TestGetMissingBookIsNotFound(t *testing.T) {
	srv := apitest.New(t)
	c := api.New(srv.BaseURL())

	_, err := c.Books.Get(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, "Resource not found", api.Message(err, "fallback"))
}

func TestBackendMessageSurfaces(t *testing.T) {
	srv := apitest.New(t)
	srv.Fail(http.MethodPost, "/api/books", http.StatusConflict, "ISBN already exists")
	c := api.New(srv.BaseURL())

	_, err := c.Books.Create(context.Background(), domain.Book{Title: "Dup"})
	require.Error(t, err)
	assert.Equal(t, "ISBN already exists", api.Message(err, "Failed to save book"))

	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "/books", apiErr.Path)
}

func TestMessageFallsBackWithoutBackendText(t *testing.T) {
	assert.Equal(t, "Failed to load", api.Message(errors.New("dial tcp: refused"), "Failed to load"))
	assert.Equal(t, "Failed to load", api.Message(&api.Error{Status: 500}, "Failed to load"))
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	srv := apitest.New(t)
	srv.Fail(http.MethodGet, "/api/users", http.StatusUnauthorized, "token expired")
	c := api.New(srv.BaseURL())

	_, err := c.Users.List(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.NotErrorIs(t, err, api.ErrNotFound)
}

func TestSuccessFalseIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"data":null,"message":"Category is in use"}`))
	}))
	defer ts.Close()

	err := api.New(ts.URL).Categories.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "Category is in use", api.Message(err, ""))
}

func TestEmptyBodyIsSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	assert.NoError(t, api.New(ts.URL).Books.Delete(context.Background(), 3))
}

func TestSearchSendsOnlySetParams(t *testing.T) {
	srv := apitest.New(t)
	c := api.New(srv.BaseURL())

	page, err := c.Books.Search(context.Background(), domain.SearchRequest{Title: "science", Grade: 7, Size: 20})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)

	req, ok := srv.Last(http.MethodGet, "/api/books/search")
	require.True(t, ok)
	assert.Equal(t, "grade=7&size=20&title=science", req.Query)
}

func TestStockAndStatusUseQueryParams(t *testing.T) {
	srv := apitest.New(t)
	c := api.New(srv.BaseURL())
	ctx := context.Background()

	require.NoError(t, c.Books.UpdateStock(ctx, 2, 25))
	req, _ := srv.Last(http.MethodPut, "/api/books/2/stock")
	assert.Equal(t, "quantity=25", req.Query)
	assert.Empty(t, req.Body)

	o, err := c.Orders.UpdateStatus(ctx, 1, domain.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, o.Status)

	o, err = c.Orders.UpdatePaymentStatus(ctx, 1, domain.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, o.PaymentStatus)
}

func TestLowStockOmitsZeroThreshold(t *testing.T) {
	srv := apitest.New(t)
	c := api.New(srv.BaseURL())

	_, err := c.Books.LowStock(context.Background(), 0)
	require.NoError(t, err)
	req, _ := srv.Last(http.MethodGet, "/api/books/low-stock")
	assert.Empty(t, req.Query)

	low, err := c.Books.LowStock(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, low, 2)
}

func TestAvailabilityChecks(t *testing.T) {
	srv := apitest.New(t)
	c := api.New(srv.BaseURL())
	ctx := context.Background()

	free, err := c.Categories.NameAvailable(ctx, "mathematics")
	require.NoError(t, err)
	assert.False(t, free)

	free, err = c.Customers.EmailAvailable(ctx, "new@example.test")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestPasswordChangeBody(t *testing.T) {
	srv := apitest.New(t)
	c := api.New(srv.BaseURL())

	require.NoError(t, c.Users.UpdatePassword(context.Background(), 2, "old-pass", "new-pass1"))
	req, _ := srv.Last(http.MethodPut, "/api/users/2/password")
	assert.JSONEq(t, `{"currentPassword":"old-pass","newPassword":"new-pass1"}`, req.Body)
}

func TestSalesAnalytics(t *testing.T) {
	srv := apitest.New(t)
	c := api.New(srv.BaseURL())
	ctx := context.Background()

	total, err := c.Orders.TotalSales(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, total, 0.001)

	ranged, err := c.Orders.SalesByDateRange(ctx, "2025-01-01T00:00:00", "2025-01-31T23:59:59")
	require.NoError(t, err)
	assert.InDelta(t, 1234.5, ranged, 0.001)
}

func TestGetRetriesOnServerError(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[],"message":"OK"}`))
	}))
	defer ts.Close()

	c := api.New(ts.URL, api.WithRetries(2, time.Millisecond))
	_, err := c.Books.List(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, hits.Load())
}

func TestWritesAreNeverRetried(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := api.New(ts.URL, api.WithRetries(3, time.Millisecond))
	_, err := c.Books.Create(context.Background(), domain.Book{Title: "x"})
	require.Error(t, err)
	assert.EqualValues(t, 1, hits.Load())
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	c := api.New(ts.URL, api.WithRetries(3, time.Millisecond))
	_, err := c.Books.List(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 1, hits.Load())
}

func TestBearerTokenHeader(t *testing.T) {
	srv := apitest.New(t)
	c := api.New(srv.BaseURL(), api.WithAuthorizer(api.BearerToken("s3cret")))

	_, err := c.Categories.List(context.Background())
	require.NoError(t, err)
	req, _ := srv.Last(http.MethodGet, "/api/categories")
	assert.Equal(t, "Bearer s3cret", req.Auth)
}

func TestTimeoutSurfacesAsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c := api.New(ts.URL, api.WithTimeout(20*time.Millisecond))
	_, err := c.Books.List(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "GET /books"))
}

func TestMetricsCountByResource(t *testing.T) {
	srv := apitest.New(t)
	reg := prometheus.NewRegistry()
	m := api.NewMetrics(reg)
	c := api.New(srv.BaseURL(), api.WithMetrics(m))
	ctx := context.Background()

	_, _ = c.Books.List(ctx)
	_, _ = c.Books.Get(ctx, 1)
	_, _ = c.Books.Get(ctx, 404)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("books", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("books", "GET", "404")))
}
