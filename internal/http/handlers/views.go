package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"schoolbooks/internal/catalog"
	"schoolbooks/internal/domain"

	html "github.com/gofiber/template/html/v2"
)

// NewEngine loads the page templates and registers the view helpers.
func NewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFuncMap(map[string]any{
		"money":       money,
		"stock":       catalog.StockLevel,
		"grades":      func() []int { return seq(1, 12) },
		"boards":      func() []domain.Board { return domain.Boards },
		"catTypes":    func() []domain.CategoryType { return domain.CategoryTypes },
		"custTypes":   func() []domain.CustomerType { return domain.CustomerTypes },
		"statuses":    func() []domain.OrderStatus { return domain.OrderStatuses },
		"payMethods":  func() []domain.PaymentMethod { return domain.PaymentMethods },
		"payStatuses": func() []domain.PaymentStatus { return domain.PaymentStatuses },
		"roles":       func() []domain.Role { return domain.Roles },
		"subjects":    func() []struct{ Value, Label string } { return domain.ContactSubjects },
		"sortKeys":    func() []struct{ Value, Label string } { return catalog.SortKeys },
		"str":         func(v any) string { return fmt.Sprint(v) },
		"deref":       deref,
		"percentOff":  percentOff,
		"hasPrefix":   strings.HasPrefix,
		"fieldErr":    fieldErr,
		"nth":         nth,
	})
	return engine
}

// money formats rupees with Indian digit grouping: 123456.5 -> ₹1,23,456.50.
func money(v float64) string {
	neg := v < 0
	v = math.Abs(v)
	whole := int64(v)
	paise := int64(math.Round((v - float64(whole)) * 100))
	if paise == 100 {
		whole++
		paise = 0
	}
	s := fmt.Sprintf("%d", whole)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		s = strings.Join(parts, ",") + "," + tail
	}
	out := fmt.Sprintf("₹%s.%02d", s, paise)
	if neg {
		out = "-" + out
	}
	return out
}

func percentOff(mrp, price float64) int {
	if mrp <= 0 || price >= mrp {
		return 0
	}
	return int(math.Round((mrp - price) / mrp * 100))
}

func deref(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%g", *p)
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// fieldErr looks up a field message; templates without errors pass nil.
func fieldErr(errs any, field string) string {
	m, _ := errs.(map[string]string)
	return m[field]
}

// nth renders element i of a submitted order column, blank when absent or zero.
func nth(col any, i int) string {
	switch v := col.(type) {
	case []int64:
		if i < len(v) && v[i] != 0 {
			return strconv.FormatInt(v[i], 10)
		}
	case []int:
		if i < len(v) && v[i] != 0 {
			return strconv.Itoa(v[i])
		}
	case []float64:
		if i < len(v) && v[i] != 0 {
			return strconv.FormatFloat(v[i], 'f', -1, 64)
		}
	}
	return ""
}
