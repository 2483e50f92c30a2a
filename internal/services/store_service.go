package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"schoolbooks/internal/api"
	"schoolbooks/internal/catalog"
	"schoolbooks/internal/domain"
)

const FeaturedCount = 8

// StoreService backs the public storefront pages.
type StoreService struct {
	API *api.Client
}

type HomeView struct {
	Featured   []domain.Book
	Categories []domain.Category
}

func (s *StoreService) Home(ctx context.Context) (HomeView, error) {
	var v HomeView
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		books, err := s.API.Books.List(ctx)
		v.Featured = catalog.Featured(books, FeaturedCount)
		return err
	})
	g.Go(func() error {
		cats, err := s.API.Categories.List(ctx)
		v.Categories = catalog.FilterCategories(cats, "", true)
		return err
	})
	if err := g.Wait(); err != nil {
		return HomeView{}, fmt.Errorf("home: %w", err)
	}
	return v, nil
}

type ShopQuery struct {
	Filter catalog.BookFilter
	Sort   string
}

type ShopView struct {
	Books    []domain.Book
	Total    int
	Subjects []string
	Grades   []int
}

// Shop loads the full catalog and narrows it in memory; the select options
// come from the unfiltered list so a filter never hides its own choices.
// A board filter is answered by the backend's board listing.
func (s *StoreService) Shop(ctx context.Context, q ShopQuery) (ShopView, error) {
	var books, matched []domain.Book
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { books, err = s.API.Books.List(gctx); return })
	if q.Filter.Board != "" {
		g.Go(func() (err error) { matched, err = s.API.Books.ListByBoard(gctx, q.Filter.Board); return })
	}
	if err := g.Wait(); err != nil {
		return ShopView{}, fmt.Errorf("shop: %w", err)
	}
	if q.Filter.Board == "" {
		matched = books
	}
	return ShopView{
		Books:    catalog.SortBooks(catalog.FilterBooks(matched, q.Filter), q.Sort),
		Total:    len(books),
		Subjects: catalog.Subjects(books),
		Grades:   catalog.Grades(books),
	}, nil
}

func (s *StoreService) Book(ctx context.Context, id int64) (domain.Book, error) {
	b, err := s.API.Books.Get(ctx, id)
	if err != nil {
		return domain.Book{}, fmt.Errorf("book %d: %w", id, err)
	}
	return b, nil
}

type CategoryCard struct {
	domain.Category
	BookCount int
}

type CategoryGroupView struct {
	Type  string
	Label string
	Cards []CategoryCard
}

type CategoriesView struct {
	Groups []CategoryGroupView
	Grades []catalog.GradeCount
	Total  int
}

func (s *StoreService) Categories(ctx context.Context, q string) (CategoriesView, error) {
	var (
		cats  []domain.Category
		books []domain.Book
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { cats, err = s.API.Categories.List(gctx); return })
	g.Go(func() (err error) { books, err = s.API.Books.List(gctx); return })
	if err := g.Wait(); err != nil {
		return CategoriesView{}, fmt.Errorf("categories: %w", err)
	}

	active := catalog.FilterCategories(cats, q, true)
	v := CategoriesView{Grades: catalog.GradeCounts(books, 12), Total: len(active)}
	for _, grp := range catalog.GroupCategoriesByType(active) {
		gv := CategoryGroupView{Type: grp.Type, Label: grp.Label}
		for _, c := range grp.Categories {
			gv.Cards = append(gv.Cards, CategoryCard{Category: c, BookCount: catalog.CategoryBookCount(books, c.Name)})
		}
		v.Groups = append(v.Groups, gv)
	}
	return v, nil
}
