package services

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"schoolbooks/internal/api"
	"schoolbooks/internal/catalog"
	"schoolbooks/internal/domain"
	"schoolbooks/internal/repos"
	"schoolbooks/internal/validate"
)

const RecentCount = 5

type DashboardService struct {
	API       *api.Client
	Inbox     *repos.ContactRepo
	Threshold int
}

type DashboardView struct {
	BookCount     int
	CategoryCount int
	CustomerCount int
	OrderCount    int
	TotalSales    float64
	NewMessages   int
	LowStock      []domain.Book
	RecentBooks   []domain.Book
	Threshold     int
}

// Dashboard fetches every collection concurrently; any failure fails the page.
func (s *DashboardService) Dashboard(ctx context.Context) (DashboardView, error) {
	var (
		v         = DashboardView{Threshold: s.threshold()}
		books     []domain.Book
		cats      []domain.Category
		customers []domain.Customer
		orders    []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { books, err = s.API.Books.List(gctx); return })
	g.Go(func() (err error) { cats, err = s.API.Categories.List(gctx); return })
	g.Go(func() (err error) { customers, err = s.API.Customers.List(gctx); return })
	g.Go(func() (err error) { orders, err = s.API.Orders.List(gctx); return })
	g.Go(func() (err error) { v.TotalSales, err = s.API.Orders.TotalSales(gctx); return })
	if s.Inbox != nil {
		g.Go(func() (err error) { v.NewMessages, err = s.Inbox.CountNew(); return })
	}
	if err := g.Wait(); err != nil {
		return DashboardView{}, fmt.Errorf("dashboard: %w", err)
	}

	v.BookCount = len(books)
	v.CategoryCount = len(cats)
	v.CustomerCount = len(customers)
	v.OrderCount = len(orders)
	v.LowStock = catalog.LowStock(books, v.Threshold)
	v.RecentBooks = recent(books, RecentCount)
	return v, nil
}

func (s *DashboardService) threshold() int {
	if s.Threshold <= 0 {
		return 10
	}
	return s.Threshold
}

// recent orders by createdAt (ISO strings sort lexically), newest first, falling back to id.
func recent(books []domain.Book, n int) []domain.Book {
	out := append([]domain.Book(nil), books...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return catalog.Featured(out, n)
}

type StatusCount struct {
	Status domain.OrderStatus
	Count  int
}

type AnalyticsView struct {
	TotalSales  float64
	RangeSales  *float64
	Range       validate.DateRangeForm
	BestSellers []domain.Book
	LowStock    []domain.Book
	ByStatus    []StatusCount
	Limit       int
	Threshold   int
}

// Analytics loads the report page. A range is only queried when both dates are set and valid.
func (s *DashboardService) Analytics(ctx context.Context, rng validate.DateRangeForm, limit int) (AnalyticsView, error) {
	if limit <= 0 {
		limit = 5
	}
	v := AnalyticsView{Range: rng, Limit: limit, Threshold: s.threshold()}
	if rng.Start != "" || rng.End != "" {
		if errs := rng.Check(); len(errs) > 0 {
			return v, errs
		}
	}

	var orders []domain.Order
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { v.TotalSales, err = s.API.Orders.TotalSales(gctx); return })
	g.Go(func() (err error) { v.BestSellers, err = s.API.Books.BestSellers(gctx, limit); return })
	g.Go(func() (err error) { v.LowStock, err = s.API.Books.LowStock(gctx, v.Threshold); return })
	g.Go(func() (err error) { orders, err = s.API.Orders.List(gctx); return })
	if rng.Start != "" {
		g.Go(func() error {
			total, err := s.API.Orders.SalesByDateRange(gctx, rng.Start+"T00:00:00", rng.End+"T23:59:59")
			if err == nil {
				v.RangeSales = &total
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return AnalyticsView{Range: rng, Limit: limit, Threshold: v.Threshold}, fmt.Errorf("analytics: %w", err)
	}

	counts := map[domain.OrderStatus]int{}
	for _, o := range orders {
		counts[o.Status]++
	}
	for _, st := range domain.OrderStatuses {
		v.ByStatus = append(v.ByStatus, StatusCount{Status: st, Count: counts[st]})
	}
	if len(v.BestSellers) > limit {
		v.BestSellers = v.BestSellers[:limit]
	}
	return v, nil
}
