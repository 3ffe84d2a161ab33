package expense

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Filter narrows a ledger query. Date bounds are inclusive and compared as strings.
type Filter struct {
	StartDate  string
	EndDate    string
	CategoryId *int
	Limit      int
	Offset     int
}

// ParseFilter reads a Filter from query parameters. Malformed values never fail the
// request: a bad limit falls back to the default, a bad offset to zero and a bad
// categoryId to no category filter.
func ParseFilter(query url.Values) Filter {
	filter := Filter{
		StartDate: strings.TrimSpace(query.Get("startDate")),
		EndDate:   strings.TrimSpace(query.Get("endDate")),
		Limit:     DefaultLimit,
	}

	if limit, err := strconv.Atoi(strings.TrimSpace(query.Get("limit"))); err == nil {
		filter.Limit = limit
	}
	filter.Limit = min(max(filter.Limit, 1), MaxLimit)

	if offset, err := strconv.Atoi(strings.TrimSpace(query.Get("offset"))); err == nil && offset > 0 {
		filter.Offset = offset
	}

	if categoryId, err := strconv.Atoi(strings.TrimSpace(query.Get("categoryId"))); err == nil {
		filter.CategoryId = &categoryId
	}

	return filter
}

func (f Filter) matches(e Expense) bool {
	if f.StartDate != "" && e.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && e.Date > f.EndDate {
		return false
	}
	if f.CategoryId != nil && e.CategoryId != *f.CategoryId {
		return false
	}
	return true
}
