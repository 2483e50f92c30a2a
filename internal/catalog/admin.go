package catalog

import (
	"strings"

	"schoolbooks/internal/domain"
)

const OtherType = "OTHER"

func FilterCategories(cats []domain.Category, q string, activeOnly bool) []domain.Category {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []domain.Category
	for _, c := range cats {
		if activeOnly && !c.Active() {
			continue
		}
		if q != "" && !contains(c.Name, q) && !contains(c.Description, q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

type CategoryGroup struct {
	Type       string
	Label      string
	Categories []domain.Category
}

// GroupCategoriesByType groups in the declared type order, then OTHER, then
// any unknown types in first-seen order. Empty groups are left out.
func GroupCategoriesByType(cats []domain.Category) []CategoryGroup {
	order := make([]string, 0, len(domain.CategoryTypes)+1)
	for _, t := range domain.CategoryTypes {
		order = append(order, string(t))
	}
	order = append(order, OtherType)

	byType := map[string][]domain.Category{}
	for _, c := range cats {
		key := string(c.CategoryType)
		if key == "" {
			key = OtherType
		}
		if _, known := byType[key]; !known && !inList(order, key) {
			order = append(order, key)
		}
		byType[key] = append(byType[key], c)
	}

	var out []CategoryGroup
	for _, key := range order {
		if len(byType[key]) == 0 {
			continue
		}
		out = append(out, CategoryGroup{Type: key, Label: domain.CategoryType(key).Label(), Categories: byType[key]})
	}
	return out
}

func inList(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// CategoryBookCount approximates membership by matching the category name in subject or title.
func CategoryBookCount(books []domain.Book, name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0
	}
	n := 0
	for _, b := range books {
		if contains(b.Subject, name) || contains(b.Title, name) {
			n++
		}
	}
	return n
}

func FilterCustomers(customers []domain.Customer, q string) []domain.Customer {
	raw := strings.TrimSpace(q)
	q = strings.ToLower(raw)
	var out []domain.Customer
	for _, c := range customers {
		if q != "" && !contains(c.Name, q) && !contains(c.Email, q) && !strings.Contains(c.Phone, raw) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func FilterUsers(users []domain.User, q string, role domain.Role) []domain.User {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []domain.User
	for _, u := range users {
		if role != "" && u.Role != role {
			continue
		}
		if q != "" && !contains(u.Name, q) && !contains(u.Email, q) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func FilterOrders(orders []domain.Order, q string) []domain.Order {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []domain.Order
	for _, o := range orders {
		if q != "" && !contains(o.OrderNumber, q) && !contains(o.CustomerName(), q) {
			continue
		}
		out = append(out, o)
	}
	return out
}
