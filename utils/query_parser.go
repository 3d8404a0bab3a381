package utils

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageParams holds parsed paging and sorting query parameters.
type PageParams struct {
	Page   int
	Limit  int
	Sort   string
	Order  string
	Status string
}

// ParsePageParams extracts page, limit, sort, order and status query
// parameters from an HTTP request, applying defaults and caps. Unknown sort
// fields are left for the store's whitelist to resolve.
func ParsePageParams(r *http.Request) PageParams {
	query := r.URL.Query()

	params := PageParams{
		Page:   DefaultPage,
		Limit:  DefaultLimit,
		Sort:   "payment_time",
		Order:  "desc",
		Status: strings.TrimSpace(query.Get("status")),
	}

	if v, err := strconv.Atoi(query.Get("page")); err == nil && v > 0 {
		params.Page = v
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		params.Limit = v
		if params.Limit > MaxLimit {
			params.Limit = MaxLimit
		}
	}
	if s := strings.TrimSpace(query.Get("sort")); s != "" {
		params.Sort = s
	}
	if o := strings.ToLower(strings.TrimSpace(query.Get("order"))); o == "asc" || o == "desc" {
		params.Order = o
	}

	return params
}
