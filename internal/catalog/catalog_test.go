package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolbooks/internal/domain"
)

func books() []domain.Book {
	return []domain.Book{
		{ID: 1, Title: "Mathematics Part 1", Author: "R. Sharma", Price: 250, Quantity: 40, Grade: 5, Subject: "Mathematics", Board: domain.BoardCBSE},
		{ID: 2, Title: "Science Explorer", Author: "A. Gupta", Price: 320, Quantity: 4, Grade: 7, Subject: "Science", Board: domain.BoardICSE},
		{ID: 3, Title: "english reader", Author: "M. Iyer", Price: 180, Quantity: 0, Grade: 3, Subject: "English", Board: domain.BoardCBSE},
		{ID: 4, Title: "Applied Maths", Author: "K. Sharma", Price: 250, Quantity: 11, Grade: 5, Subject: "Mathematics", Board: domain.BoardNCERT},
	}
}

func ids(bs []domain.Book) []int64 {
	out := make([]int64, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}

func price(f float64) *float64 { return &f }

func TestFilterBooks(t *testing.T) {
	cases := []struct {
		name string
		f    BookFilter
		want []int64
	}{
		{"empty filter keeps all", BookFilter{}, []int64{1, 2, 3, 4}},
		{"query matches author", BookFilter{Query: "sharma"}, []int64{1, 4}},
		{"query matches subject", BookFilter{Query: "  SCIENCE "}, []int64{2}},
		{"board", BookFilter{Board: domain.BoardCBSE}, []int64{1, 3}},
		{"grade", BookFilter{Grade: 5}, []int64{1, 4}},
		{"subject substring", BookFilter{Subject: "math"}, []int64{1, 4}},
		{"price bounds inclusive", BookFilter{MinPrice: price(250), MaxPrice: price(320)}, []int64{1, 2, 4}},
		{"combined", BookFilter{Query: "math", Board: domain.BoardNCERT}, []int64{4}},
		{"no match", BookFilter{Query: "history"}, []int64{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ids(FilterBooks(books(), c.f)))
		})
	}
}

func TestSortBooks(t *testing.T) {
	in := books()
	assert.Equal(t, []int64{4, 3, 1, 2}, ids(SortBooks(in, SortName)))
	assert.Equal(t, []int64{3, 1, 4, 2}, ids(SortBooks(in, SortPriceLow)))
	assert.Equal(t, []int64{2, 1, 4, 3}, ids(SortBooks(in, SortPriceHigh)))
	assert.Equal(t, []int64{3, 1, 4, 2}, ids(SortBooks(in, SortGrade)))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(SortBooks(in, "bogus")))
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(in), "input must not be reordered")
}

func TestSubjectsAndGrades(t *testing.T) {
	assert.Equal(t, []string{"Mathematics", "Science", "English"}, Subjects(books()))
	assert.Equal(t, []int{3, 5, 7}, Grades(books()))
}

func TestFeaturedAndLowStock(t *testing.T) {
	assert.Len(t, Featured(books(), 2), 2)
	assert.Len(t, Featured(books(), 8), 4)
	assert.Equal(t, []int64{2, 3}, ids(LowStock(books(), 10)))
}

func TestStockLevel(t *testing.T) {
	assert.Equal(t, StockOut, StockLevel(0))
	assert.Equal(t, StockLow, StockLevel(1))
	assert.Equal(t, StockLow, StockLevel(10))
	assert.Equal(t, StockIn, StockLevel(11))
}

func TestGradeCounts(t *testing.T) {
	counts := GradeCounts(books(), 12)
	require.Len(t, counts, 12)
	assert.Equal(t, GradeCount{Grade: 5, Count: 2}, counts[4])
	assert.Equal(t, GradeCount{Grade: 12, Count: 0}, counts[11])
}

func TestCategories(t *testing.T) {
	off := false
	cats := []domain.Category{
		{ID: 1, Name: "Mathematics", CategoryType: domain.CategorySubject},
		{ID: 2, Name: "Primary", Description: "Grades 1 to 5", CategoryType: domain.CategoryGradeLevel},
		{ID: 3, Name: "Workbooks"},
		{ID: 4, Name: "Old Syllabus", IsActive: &off, CategoryType: domain.CategorySubject},
	}

	active := FilterCategories(cats, "", true)
	assert.Len(t, active, 3)
	assert.Len(t, FilterCategories(cats, "grades", false), 1)

	groups := GroupCategoriesByType(active)
	require.Len(t, groups, 3)
	assert.Equal(t, "GRADE_LEVEL", groups[0].Type)
	assert.Equal(t, "SUBJECT", groups[1].Type)
	assert.Equal(t, OtherType, groups[2].Type)
	assert.Equal(t, "Other", groups[2].Label)

	assert.Equal(t, 2, CategoryBookCount(books(), "mathematics"))
	assert.Equal(t, 0, CategoryBookCount(books(), ""))
}

func TestFilterCustomersUsersOrders(t *testing.T) {
	customers := []domain.Customer{
		{ID: 1, Name: "Green Valley School", Email: "office@gv.test", Phone: "9876543210"},
		{ID: 2, Name: "Asha Rao", Email: "asha@example.test", Phone: "9123456780"},
	}
	assert.Len(t, FilterCustomers(customers, "ASHA"), 1)
	assert.Len(t, FilterCustomers(customers, "98765"), 1)
	assert.Len(t, FilterCustomers(customers, ""), 2)

	users := []domain.User{
		{ID: 1, Name: "Admin", Email: "admin@x.test", Role: domain.RoleAdmin},
		{ID: 2, Name: "Sarah", Email: "sarah@x.test", Role: domain.RoleStaff},
	}
	assert.Len(t, FilterUsers(users, "x.test", ""), 2)
	assert.Len(t, FilterUsers(users, "", domain.RoleStaff), 1)
	assert.Empty(t, FilterUsers(users, "admin", domain.RoleStaff))

	orders := []domain.Order{
		{ID: 1, OrderNumber: "ORD-0001", Customer: &customers[0]},
		{ID: 2, OrderNumber: "ORD-0002"},
	}
	assert.Len(t, FilterOrders(orders, "0002"), 1)
	assert.Len(t, FilterOrders(orders, "valley"), 1)
}
