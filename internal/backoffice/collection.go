package backoffice

import (
	"strings"

	"github.com/ashendes/jewelry-admin/internal/models"
)

// collection keeps entities by id, newest first
type collection[T any] struct {
	items map[string]T
	order []string
}

func newCollection[T any]() *collection[T] {
	return &collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) put(id string, v T) {
	if _, exists := c.items[id]; !exists {
		c.order = append([]string{id}, c.order...)
	}
	c.items[id] = v
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) filter(match func(T) bool) []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		if v := c.items[id]; match == nil || match(v) {
			out = append(out, v)
		}
	}
	return out
}

// paginate cuts one page out of items
func paginate[T any](items []T, params models.ListParams) models.Page[T] {
	params = params.WithDefaults()
	p := models.NewPagination(params.Page, params.Limit, len(items))

	page := make([]T, p.Window())
	if len(page) > 0 {
		start := p.Offset()
		copy(page, items[start:start+len(page)])
	}
	return models.Page[T]{Items: page, Pagination: p}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// matchesSearch reports whether any field contains search; an empty search matches everything
func matchesSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	for _, f := range fields {
		if containsFold(f, search) {
			return true
		}
	}
	return false
}

// matchesBool compares a boolean with a "true"/"false" filter; an empty filter matches everything
func matchesBool(filter string, v bool) bool {
	switch filter {
	case "":
		return true
	case "true":
		return v
	case "false":
		return !v
	}
	return false
}
