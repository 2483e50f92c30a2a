// Package apitest runs an in-memory stand-in for the REST backend so handler
// and client tests can exercise real HTTP round trips.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"schoolbooks/internal/domain"
)

type Request struct {
	Method string
	Path   string
	Query  string
	Body   string
	Auth   string
}

type failure struct {
	status  int
	message string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	nextID    int64
	Books     map[int64]domain.Book
	Cats      map[int64]domain.Category
	Customers map[int64]domain.Customer
	Orders    map[int64]domain.Order
	Users     map[int64]domain.User
	requests  []Request
	failures  map[string]failure
}

// New starts a server seeded with a few records and closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		nextID:    100,
		Books:     map[int64]domain.Book{},
		Cats:      map[int64]domain.Category{},
		Customers: map[int64]domain.Customer{},
		Orders:    map[int64]domain.Order{},
		Users:     map[int64]domain.User{},
		failures:  map[string]failure{},
	}
	s.seed()
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// BaseURL is what api.New expects.
func (s *Server) BaseURL() string { return s.URL + "/api" }

// Fail makes every later call to method + path (e.g. "POST", "/api/books") answer with status and message.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status, message}
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Last returns the most recent request for method+path, if any.
func (s *Server) Last(method, path string) (Request, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Request{}, false
}

func (s *Server) seed() {
	cats := []domain.Category{
		{ID: 1, Name: "Mathematics", Description: "Maths textbooks", CategoryType: domain.CategorySubject},
		{ID: 2, Name: "Science", Description: "Physics, chemistry, biology", CategoryType: domain.CategorySubject},
		{ID: 3, Name: "Primary", Description: "Grades 1 to 5", CategoryType: domain.CategoryGradeLevel},
		{ID: 4, Name: "Archived", IsActive: boolp(false)},
	}
	for _, c := range cats {
		s.Cats[c.ID] = c
	}
	books := []domain.Book{
		{ID: 1, Title: "Mathematics Part 1", Author: "R. Sharma", Price: 250, MRP: 300, Quantity: 40, Grade: 5, Subject: "Mathematics", Board: domain.BoardCBSE, CategoryID: 1},
		{ID: 2, Title: "Science Explorer", Author: "A. Gupta", Price: 320, MRP: 320, Quantity: 4, Grade: 7, Subject: "Science", Board: domain.BoardICSE, CategoryID: 2},
		{ID: 3, Title: "English Reader", Author: "M. Iyer", Price: 180, MRP: 200, Quantity: 0, Grade: 3, Subject: "English", Board: domain.BoardCBSE},
	}
	for _, b := range books {
		s.Books[b.ID] = b
	}
	s.Customers[1] = domain.Customer{ID: 1, Name: "Green Valley School", Email: "office@greenvalley.test", Phone: "9876543210", CustomerType: domain.CustomerSchool}
	s.Customers[2] = domain.Customer{ID: 2, Name: "Asha Rao", Email: "asha@example.test", Phone: "9123456780", CustomerType: domain.CustomerIndividual}
	s.Orders[1] = domain.Order{ID: 1, OrderNumber: "ORD-0001", CustomerID: 1, Customer: ptr(s.Customers[1]), Status: domain.OrderPending,
		TotalAmount: 500, FinalAmount: 500, PaymentStatus: domain.PaymentPending,
		OrderItems: []domain.OrderItem{{ID: 1, BookID: 1, Quantity: 2, UnitPrice: 250, TotalPrice: 500}}}
	s.Users[1] = domain.User{ID: 1, Name: "Admin User", Email: "admin@schoolbooks.test", Role: domain.RoleAdmin}
	s.Users[2] = domain.User{ID: 2, Name: "Sarah Staff", Email: "sarah@schoolbooks.test", Role: domain.RoleStaff}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/books", func(w http.ResponseWriter, r *http.Request) { s.ok(w, sorted(s.Books)) })
	mux.HandleFunc("GET /api/books/{id}", func(w http.ResponseWriter, r *http.Request) { getByID(s, w, r, s.Books) })
	mux.HandleFunc("GET /api/books/board/{board}", func(w http.ResponseWriter, r *http.Request) {
		out := []domain.Book{}
		for _, b := range sorted(s.Books) {
			if string(b.Board) == r.PathValue("board") {
				out = append(out, b)
			}
		}
		s.ok(w, out)
	})
	mux.HandleFunc("GET /api/books/search", func(w http.ResponseWriter, r *http.Request) {
		title := strings.ToLower(r.URL.Query().Get("title"))
		var out []domain.Book
		for _, b := range sorted(s.Books) {
			if title == "" || strings.Contains(strings.ToLower(b.Title), title) {
				out = append(out, b)
			}
		}
		s.ok(w, domain.Page[domain.Book]{Content: out, TotalElements: len(out), TotalPages: 1, Size: len(out), First: true, Last: true, NumberOfElements: len(out), Empty: len(out) == 0})
	})
	mux.HandleFunc("GET /api/books/low-stock", func(w http.ResponseWriter, r *http.Request) {
		threshold := 10
		if v, err := strconv.Atoi(r.URL.Query().Get("threshold")); err == nil {
			threshold = v
		}
		var out []domain.Book
		for _, b := range sorted(s.Books) {
			if b.Quantity < threshold {
				out = append(out, b)
			}
		}
		s.ok(w, out)
	})
	mux.HandleFunc("GET /api/books/bestsellers", func(w http.ResponseWriter, r *http.Request) { s.ok(w, sorted(s.Books)) })
	mux.HandleFunc("POST /api/books", func(w http.ResponseWriter, r *http.Request) { create(s, w, r, s.Books, func(b *domain.Book, id int64) { b.ID = id }) })
	mux.HandleFunc("PUT /api/books/{id}", func(w http.ResponseWriter, r *http.Request) { update(s, w, r, s.Books, func(b *domain.Book, id int64) { b.ID = id }) })
	mux.HandleFunc("DELETE /api/books/{id}", func(w http.ResponseWriter, r *http.Request) { remove(s, w, r, s.Books) })
	mux.HandleFunc("PUT /api/books/{id}/stock", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		q, err := strconv.Atoi(r.URL.Query().Get("quantity"))
		s.mu.Lock()
		b, ok := s.Books[id]
		if ok && err == nil {
			b.Quantity = q
			s.Books[id] = b
		}
		s.mu.Unlock()
		if !ok {
			s.fail(w, http.StatusNotFound, "Book not found")
			return
		}
		s.ok(w, nil)
	})

	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) { s.ok(w, sorted(s.Cats)) })
	mux.HandleFunc("GET /api/categories/{id}", func(w http.ResponseWriter, r *http.Request) { getByID(s, w, r, s.Cats) })
	mux.HandleFunc("GET /api/categories/check-name", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		for _, c := range sorted(s.Cats) {
			if strings.EqualFold(c.Name, name) {
				s.ok(w, false)
				return
			}
		}
		s.ok(w, true)
	})
	mux.HandleFunc("POST /api/categories", func(w http.ResponseWriter, r *http.Request) { create(s, w, r, s.Cats, func(c *domain.Category, id int64) { c.ID = id }) })
	mux.HandleFunc("PUT /api/categories/{id}", func(w http.ResponseWriter, r *http.Request) { update(s, w, r, s.Cats, func(c *domain.Category, id int64) { c.ID = id }) })
	mux.HandleFunc("DELETE /api/categories/{id}", func(w http.ResponseWriter, r *http.Request) { remove(s, w, r, s.Cats) })

	mux.HandleFunc("GET /api/customers", func(w http.ResponseWriter, r *http.Request) { s.ok(w, sorted(s.Customers)) })
	mux.HandleFunc("GET /api/customers/{id}", func(w http.ResponseWriter, r *http.Request) { getByID(s, w, r, s.Customers) })
	mux.HandleFunc("GET /api/customers/check-email", func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		for _, c := range sorted(s.Customers) {
			if strings.EqualFold(c.Email, email) {
				s.ok(w, false)
				return
			}
		}
		s.ok(w, true)
	})
	mux.HandleFunc("POST /api/customers", func(w http.ResponseWriter, r *http.Request) { create(s, w, r, s.Customers, func(c *domain.Customer, id int64) { c.ID = id }) })
	mux.HandleFunc("PUT /api/customers/{id}", func(w http.ResponseWriter, r *http.Request) { update(s, w, r, s.Customers, func(c *domain.Customer, id int64) { c.ID = id }) })
	mux.HandleFunc("DELETE /api/customers/{id}", func(w http.ResponseWriter, r *http.Request) { remove(s, w, r, s.Customers) })

	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) { s.ok(w, sorted(s.Orders)) })
	mux.HandleFunc("GET /api/orders/{id}", func(w http.ResponseWriter, r *http.Request) { getByID(s, w, r, s.Orders) })
	mux.HandleFunc("GET /api/orders/status/{status}", func(w http.ResponseWriter, r *http.Request) {
		var out []domain.Order
		for _, o := range sorted(s.Orders) {
			if string(o.Status) == r.PathValue("status") {
				out = append(out, o)
			}
		}
		s.ok(w, out)
	})
	mux.HandleFunc("GET /api/orders/customer/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		out := []domain.Order{}
		for _, o := range sorted(s.Orders) {
			if o.CustomerID == id {
				out = append(out, o)
			}
		}
		s.ok(w, out)
	})
	mux.HandleFunc("GET /api/orders/order-number/{number}", func(w http.ResponseWriter, r *http.Request) {
		for _, o := range sorted(s.Orders) {
			if o.OrderNumber == r.PathValue("number") {
				s.ok(w, o)
				return
			}
		}
		s.fail(w, http.StatusNotFound, "Order not found")
	})
	mux.HandleFunc("GET /api/orders/recent", func(w http.ResponseWriter, r *http.Request) { s.ok(w, sorted(s.Orders)) })
	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		var req domain.CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.fail(w, http.StatusBadRequest, "Malformed order")
			return
		}
		s.mu.Lock()
		s.nextID++
		o := domain.Order{ID: s.nextID, OrderNumber: fmt.Sprintf("ORD-%04d", s.nextID), CustomerID: req.CustomerID,
			Status: domain.OrderPending, PaymentStatus: domain.PaymentPending, PaymentMethod: req.PaymentMethod,
			DeliveryAddress: req.DeliveryAddress, DeliveryCity: req.DeliveryCity, Notes: req.Notes}
		for _, l := range req.OrderItems {
			total := l.UnitPrice * float64(l.Quantity)
			o.OrderItems = append(o.OrderItems, domain.OrderItem{BookID: l.BookID, Quantity: l.Quantity, UnitPrice: l.UnitPrice, TotalPrice: total})
			o.TotalAmount += total
		}
		o.FinalAmount = o.TotalAmount
		s.Orders[o.ID] = o
		s.mu.Unlock()
		s.ok(w, o)
	})
	mux.HandleFunc("PUT /api/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		s.patchOrder(w, r, func(o *domain.Order) { o.Status = domain.OrderStatus(r.URL.Query().Get("status")) })
	})
	mux.HandleFunc("PUT /api/orders/{id}/payment-status", func(w http.ResponseWriter, r *http.Request) {
		s.patchOrder(w, r, func(o *domain.Order) { o.PaymentStatus = domain.PaymentStatus(r.URL.Query().Get("paymentStatus")) })
	})
	mux.HandleFunc("DELETE /api/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.patchOrder(w, r, func(o *domain.Order) { o.Status = domain.OrderCancelled })
	})
	mux.HandleFunc("GET /api/orders/analytics/total-sales", func(w http.ResponseWriter, r *http.Request) {
		total := 0.0
		for _, o := range sorted(s.Orders) {
			total += o.FinalAmount
		}
		s.ok(w, total)
	})
	mux.HandleFunc("GET /api/orders/analytics/sales-by-date-range", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("startDate") == "" || r.URL.Query().Get("endDate") == "" {
			s.fail(w, http.StatusBadRequest, "startDate and endDate are required")
			return
		}
		s.ok(w, 1234.5)
	})

	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) { s.ok(w, sorted(s.Users)) })
	mux.HandleFunc("GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request) { getByID(s, w, r, s.Users) })
	mux.HandleFunc("GET /api/users/role/{role}", func(w http.ResponseWriter, r *http.Request) {
		var out []domain.User
		for _, u := range sorted(s.Users) {
			if string(u.Role) == r.PathValue("role") {
				out = append(out, u)
			}
		}
		s.ok(w, out)
	})
	mux.HandleFunc("GET /api/users/check-email", func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		for _, u := range sorted(s.Users) {
			if strings.EqualFold(u.Email, email) {
				s.ok(w, false)
				return
			}
		}
		s.ok(w, true)
	})
	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		create(s, w, r, s.Users, func(u *domain.User, id int64) { u.ID = id; u.Password = "" })
	})
	mux.HandleFunc("PUT /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		update(s, w, r, s.Users, func(u *domain.User, id int64) { u.ID = id; u.Password = "" })
	})
	mux.HandleFunc("DELETE /api/users/{id}", func(w http.ResponseWriter, r *http.Request) { remove(s, w, r, s.Users) })
	mux.HandleFunc("PUT /api/users/{id}/password", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ CurrentPassword, NewPassword string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.CurrentPassword == "" {
			s.fail(w, http.StatusBadRequest, "Current password is incorrect")
			return
		}
		s.ok(w, nil)
	})

	return s.record(mux)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body), Auth: r.Header.Get("Authorization")})
		f, failing := s.failures[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if failing {
			s.fail(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) patchOrder(w http.ResponseWriter, r *http.Request, fn func(*domain.Order)) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	s.mu.Lock()
	o, ok := s.Orders[id]
	if ok {
		fn(&o)
		s.Orders[id] = o
	}
	s.mu.Unlock()
	if !ok {
		s.fail(w, http.StatusNotFound, "Order not found")
		return
	}
	s.ok(w, o)
}

func (s *Server) ok(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data, "message": "OK"})
}

func (s *Server) fail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "data": nil, "message": message})
}

func getByID[T any](s *Server, w http.ResponseWriter, r *http.Request, m map[int64]T) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	s.mu.Lock()
	v, ok := m[id]
	s.mu.Unlock()
	if err != nil || !ok {
		s.fail(w, http.StatusNotFound, "Resource not found")
		return
	}
	s.ok(w, v)
}

func create[T any](s *Server, w http.ResponseWriter, r *http.Request, m map[int64]T, setID func(*T, int64)) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed body")
		return
	}
	s.mu.Lock()
	s.nextID++
	setID(&v, s.nextID)
	m[s.nextID] = v
	s.mu.Unlock()
	s.ok(w, v)
}

func update[T any](s *Server, w http.ResponseWriter, r *http.Request, m map[int64]T, setID func(*T, int64)) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		s.fail(w, http.StatusBadRequest, "Malformed body")
		return
	}
	s.mu.Lock()
	_, ok := m[id]
	if ok {
		setID(&v, id)
		m[id] = v
	}
	s.mu.Unlock()
	if !ok {
		s.fail(w, http.StatusNotFound, "Resource not found")
		return
	}
	s.ok(w, v)
}

func remove[T any](s *Server, w http.ResponseWriter, r *http.Request, m map[int64]T) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	s.mu.Lock()
	_, ok := m[id]
	delete(m, id)
	s.mu.Unlock()
	if !ok {
		s.fail(w, http.StatusNotFound, "Resource not found")
		return
	}
	s.ok(w, nil)
}

func sorted[T any](m map[int64]T) []T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func boolp(b bool) *bool { return &b }

func ptr[T any](v T) *T { return &v }
