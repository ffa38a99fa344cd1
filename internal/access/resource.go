// Package access is the data-access layer between console pages and the
// resource API modules: cached reads, invalidating mutations and notifications.
package access

import (
	"context"

	"github.com/ashendes/jewelry-admin/internal/cache"
	"github.com/ashendes/jewelry-admin/internal/notify"
)

// API is what a CRUD resource module offers
type API[T, C, U any] interface {
	reader[T]
	Name() string
	Filters() []string
	Create(ctx context.Context, payload C) (*T, error)
	Update(ctx context.Context, id string, payload U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Resource is the data-access component of one CRUD entity
type Resource[T, C, U any] struct {
	queries[T]
	*mutations
	api  API[T, C, U]
	msgs Messages
}

// NewResource wires a resource module to the shared cache and notifier
func NewResource[T, C, U any](api API[T, C, U], c *cache.Cache, n notify.Notifier, msgs Messages) *Resource[T, C, U] {
	return &Resource[T, C, U]{
		queries: queries[T]{api: api, cache: c},
		mutations: &mutations{
			resource: api.Name(),
			listOp:   api.ListOp(),
			detailOp: api.DetailOp(),
			cache:    c,
			notifier: n,
			inflight: NewInFlight(),
		},
		api:  api,
		msgs: msgs,
	}
}

// Name returns the entity collection name
func (r *Resource[T, C, U]) Name() string {
	return r.api.Name()
}

// Filters returns the entity-specific list filters
func (r *Resource[T, C, U]) Filters() []string {
	return r.api.Filters()
}

// Create submits an already validated payload
func (r *Resource[T, C, U]) Create(ctx context.Context, payload C) (*T, error) {
	var created *T
	err := r.run(ctx, mutation{
		action:  "create",
		success: r.msgs.Created,
		failure: r.msgs.CreateFailed,
	}, func(ctx context.Context) error {
		var err error
		created, err = r.api.Create(ctx, payload)
		return err
	})
	return created, err
}

// Update submits an already validated payload for id
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, payload U) (*T, error) {
	var updated *T
	err := r.run(ctx, mutation{
		action:           "update",
		id:               id,
		success:          r.msgs.Updated,
		failure:          r.msgs.UpdateFailed,
		invalidateDetail: true,
	}, func(ctx context.Context) error {
		var err error
		updated, err = r.api.Update(ctx, id, payload)
		return err
	})
	return updated, err
}

// Delete removes id
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	return r.run(ctx, mutation{
		action:           "delete",
		id:               id,
		success:          r.msgs.Deleted,
		failure:          r.msgs.DeleteFailed,
		invalidateDetail: true,
	}, func(ctx context.Context) error {
		return r.api.Delete(ctx, id)
	})
}
