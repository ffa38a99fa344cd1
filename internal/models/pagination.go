package models

import (
	"math"
	"net/url"
	"sort"
	"strconv"
)

// Default paging used when a page is requested without explicit values
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination describes one page of a server-side list
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPagination computes the derived fields from page, limit and total
func NewPagination(page, limit, total int) Pagination {
	p := Pagination{Page: page, Limit: limit, Total: total}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit > 0 && p.Total > 0 {
		p.TotalPages = p.Total / p.Limit
		if p.Total%p.Limit != 0 {
			p.TotalPages++
		}
	}
	p.HasNextPage = p.Page < p.TotalPages
	p.HasPrevPage = p.Page > 1
	return p
}

// Normalize recomputes the derived fields, ignoring whatever the server sent for them
func (p Pagination) Normalize() Pagination {
	return NewPagination(p.Page, p.Limit, p.Total)
}

// Offset returns the zero-based index of the first item on the page,
// saturating at math.MaxInt for pages far past the end
func (p Pagination) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Window returns how many items the page holds: Limit, or fewer on the last page
func (p Pagination) Window() int {
	offset := p.Offset()
	if offset >= p.Total {
		return 0
	}
	if rest := p.Total - offset; rest < p.Limit {
		return rest
	}
	return p.Limit
}

// Page is a list response: the items of one page plus its descriptor
type Page[T any] struct {
	Items []T `json:"items"`
	Pagination
}

// ListParams are the query parameters accepted by every list endpoint.
// Filters hold entity-specific parameters (categoryId, status, ...).
type ListParams struct {
	Page    int               `json:"page,omitempty"`
	Limit   int               `json:"limit,omitempty"`
	Search  string            `json:"search,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}

// WithDefaults fills page and limit when unset and caps limit at MaxLimit
func (p ListParams) WithDefaults() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// With returns a copy of the params with one filter set
func (p ListParams) With(key, value string) ListParams {
	filters := make(map[string]string, len(p.Filters)+1)
	for k, v := range p.Filters {
		filters[k] = v
	}
	filters[key] = value
	p.Filters = filters
	return p
}

// Query encodes the params as URL query values, skipping empty ones
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := p.Filters[k]; v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// ParseListParams reads page, limit, search and the named filters from q.
// Malformed numbers are ignored and left to WithDefaults; limit is capped at MaxLimit.
func ParseListParams(q url.Values, filters ...string) ListParams {
	p := ListParams{Search: q.Get("search")}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		p.Limit = limit
		if p.Limit > MaxLimit {
			p.Limit = MaxLimit
		}
	}
	for _, f := range filters {
		if v := q.Get(f); v != "" {
			p = p.With(f, v)
		}
	}
	return p
}
