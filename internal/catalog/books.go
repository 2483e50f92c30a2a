// Package catalog filters and orders collections that were already fetched
// from the backend. Nothing here does I/O.
package catalog

import (
	"sort"
	"strings"

	"schoolbooks/internal/domain"
)

// BookFilter is what the shop sidebar can narrow by. Zero fields match everything.
type BookFilter struct {
	Query    string
	Board    domain.Board
	Grade    int
	Subject  string
	MinPrice *float64
	MaxPrice *float64
}

const (
	SortName      = "name"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortGrade     = "grade"
)

var SortKeys = []struct{ Value, Label string }{
	{SortName, "Name"},
	{SortPriceLow, "Price: Low to High"},
	{SortPriceHigh, "Price: High to Low"},
	{SortGrade, "Grade"},
}

func contains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), sub)
}

func FilterBooks(books []domain.Book, f BookFilter) []domain.Book {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	subject := strings.ToLower(strings.TrimSpace(f.Subject))
	out := make([]domain.Book, 0, len(books))
	for _, b := range books {
		if q != "" && !contains(b.Title, q) && !contains(b.Author, q) && !contains(b.Subject, q) {
			continue
		}
		if f.Board != "" && b.Board != f.Board {
			continue
		}
		if f.Grade != 0 && b.Grade != f.Grade {
			continue
		}
		if subject != "" && !contains(b.Subject, subject) {
			continue
		}
		if f.MinPrice != nil && b.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && b.Price > *f.MaxPrice {
			continue
		}
		out = append(out, b)
	}
	return out
}

// SortBooks returns a sorted copy. Unknown keys keep the backend order.
func SortBooks(books []domain.Book, key string) []domain.Book {
	out := append([]domain.Book(nil), books...)
	var less func(a, b domain.Book) bool
	switch key {
	case SortName:
		less = func(a, b domain.Book) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case SortPriceLow:
		less = func(a, b domain.Book) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b domain.Book) bool { return a.Price > b.Price }
	case SortGrade:
		less = func(a, b domain.Book) bool { return a.Grade < b.Grade }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Subjects lists distinct non-empty subjects in first-seen order.
func Subjects(books []domain.Book) []string {
	seen := map[string]bool{}
	var out []string
	for _, b := range books {
		if b.Subject == "" || seen[b.Subject] {
			continue
		}
		seen[b.Subject] = true
		out = append(out, b.Subject)
	}
	return out
}

// Grades lists distinct positive grades ascending.
func Grades(books []domain.Book) []int {
	seen := map[int]bool{}
	var out []int
	for _, b := range books {
		if b.Grade <= 0 || seen[b.Grade] {
			continue
		}
		seen[b.Grade] = true
		out = append(out, b.Grade)
	}
	sort.Ints(out)
	return out
}

func Featured(books []domain.Book, n int) []domain.Book {
	if n < 0 {
		n = 0
	}
	if len(books) <= n {
		return books
	}
	return books[:n]
}

func LowStock(books []domain.Book, threshold int) []domain.Book {
	var out []domain.Book
	for _, b := range books {
		if b.Quantity < threshold {
			out = append(out, b)
		}
	}
	return out
}

const (
	StockIn  = "in"
	StockLow = "low"
	StockOut = "out"
)

func StockLevel(qty int) string {
	switch {
	case qty <= 0:
		return StockOut
	case qty <= 10:
		return StockLow
	default:
		return StockIn
	}
}

// FilterAdminBooks is the back-office list search: title, author or subject.
func FilterAdminBooks(books []domain.Book, q string) []domain.Book {
	return FilterBooks(books, BookFilter{Query: q})
}

type GradeCount struct {
	Grade int
	Count int
}

// GradeCounts counts books per grade for grades 1..max, including empty grades.
func GradeCounts(books []domain.Book, max int) []GradeCount {
	counts := make([]GradeCount, max)
	for i := range counts {
		counts[i].Grade = i + 1
	}
	for _, b := range books {
		if b.Grade >= 1 && b.Grade <= max {
			counts[b.Grade-1].Count++
		}
	}
	return counts
}
