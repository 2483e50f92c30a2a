package api

import (
	"net/url"
	"strconv"

	"schoolbooks/internal/domain"
)

// searchQuery drops zero values so the backend applies its own defaults.
func searchQuery(r domain.SearchRequest) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	setInt := func(k string, v int64) {
		if v != 0 {
			q.Set(k, strconv.FormatInt(v, 10))
		}
	}
	set("title", r.Title)
	set("author", r.Author)
	setInt("grade", int64(r.Grade))
	set("subject", r.Subject)
	set("board", string(r.Board))
	set("orderNumber", r.OrderNumber)
	setInt("customerId", r.CustomerID)
	set("orderStatus", string(r.OrderStatus))
	set("startDate", r.StartDate)
	set("endDate", r.EndDate)
	if r.Page > 0 {
		q.Set("page", strconv.Itoa(r.Page))
	}
	setInt("size", int64(r.Size))
	set("sortBy", r.SortBy)
	set("sortDirection", r.SortDirection)
	return q
}
