package access

import (
	"context"

	"github.com/ashendes/jewelry-admin/internal/cache"
	"github.com/ashendes/jewelry-admin/internal/models"
)

// ListResult is what a list page renders
type ListResult[T any] struct {
	Items      []T
	Pagination *models.Pagination
	Loading    bool
	Fetching   bool
	Err        error
}

// DetailResult is what a detail page renders. Disabled means no id was given
// and nothing was requested.
type DetailResult[T any] struct {
	Entity   *T
	Loading  bool
	Fetching bool
	Disabled bool
	Err      error
}

type reader[T any] interface {
	ListOp() string
	DetailOp() string
	List(ctx context.Context, params models.ListParams) (*models.Page[T], error)
	Get(ctx context.Context, id string) (*T, error)
}

type queries[T any] struct {
	api   reader[T]
	cache *cache.Cache
}

func (q queries[T]) listKey(params models.ListParams) cache.Key {
	return cache.NewKey(q.api.ListOp(), params)
}

func (q queries[T]) detailKey(id string) cache.Key {
	return cache.NewKey(q.api.DetailOp(), id)
}

// List returns one page, from cache when it holds a fresh copy for params
func (q queries[T]) List(ctx context.Context, params models.ListParams) ListResult[T] {
	params = params.WithDefaults()

	page, err := cache.Query(ctx, q.cache, q.listKey(params), func(ctx context.Context) (*models.Page[T], error) {
		return q.api.List(ctx, params)
	})
	if err != nil {
		res := q.PeekList(params)
		res.Err = err
		return res
	}

	pagination := page.Pagination
	return ListResult[T]{Items: page.Items, Pagination: &pagination}
}

// PeekList reports the cached state of a page without fetching
func (q queries[T]) PeekList(params models.ListParams) ListResult[T] {
	snap := q.cache.Read(q.listKey(params.WithDefaults()))

	res := ListResult[T]{
		Loading:  snap.Loading(),
		Fetching: snap.Fetching,
		Err:      snap.Err,
		Items:    []T{},
	}
	if page, ok := snap.Value.(*models.Page[T]); ok && page != nil {
		pagination := page.Pagination
		res.Items = page.Items
		res.Pagination = &pagination
	}
	return res
}

// Detail returns one entity. An empty id issues no request.
func (q queries[T]) Detail(ctx context.Context, id string) DetailResult[T] {
	if id == "" {
		return DetailResult[T]{Disabled: true}
	}

	entity, err := cache.Query(ctx, q.cache, q.detailKey(id), func(ctx context.Context) (*T, error) {
		return q.api.Get(ctx, id)
	})
	if err != nil {
		res := q.PeekDetail(id)
		res.Err = err
		return res
	}
	return DetailResult[T]{Entity: entity}
}

// PeekDetail reports the cached state of an entity without fetching
func (q queries[T]) PeekDetail(id string) DetailResult[T] {
	if id == "" {
		return DetailResult[T]{Disabled: true}
	}

	snap := q.cache.Read(q.detailKey(id))
	res := DetailResult[T]{
		Loading:  snap.Loading(),
		Fetching: snap.Fetching,
		Err:      snap.Err,
	}
	if entity, ok := snap.Value.(*T); ok {
		res.Entity = entity
	}
	return res
}
