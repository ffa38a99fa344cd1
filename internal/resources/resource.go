// Package resources maps each back office entity onto its REST endpoints.
package resources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ashendes/jewelry-admin/internal/models"
)

// Requester is the subset of the API client the resource modules need
type Requester interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string, out interface{}) error
}

// Endpoint exposes list/get/create/update/delete for one entity collection.
// T is the entity, C the creation payload, U the update payload.
type Endpoint[T, C, U any] struct {
	client  Requester
	name    string
	filters []string
}

// NewEndpoint binds an entity collection to its base path
func NewEndpoint[T, C, U any](client Requester, name string, filters ...string) *Endpoint[T, C, U] {
	return &Endpoint[T, C, U]{client: client, name: name, filters: filters}
}

// Name returns the collection name, which is also its base path
func (e *Endpoint[T, C, U]) Name() string {
	return e.name
}

// Filters returns the entity-specific list filters the API understands
func (e *Endpoint[T, C, U]) Filters() []string {
	return e.filters
}

// ListOp identifies list reads in the query cache
func (e *Endpoint[T, C, U]) ListOp() string {
	return e.name + ".list"
}

// DetailOp identifies single-entity reads in the query cache
func (e *Endpoint[T, C, U]) DetailOp() string {
	return e.name + ".detail"
}

// List fetches one page of the collection
func (e *Endpoint[T, C, U]) List(ctx context.Context, params models.ListParams) (*models.Page[T], error) {
	var env models.Envelope[models.Page[T]]
	if err := e.client.Get(ctx, e.collectionPath(), params.Query(), &env); err != nil {
		return nil, fmt.Errorf("list %s: %w", e.name, err)
	}

	page := env.Data
	page.Pagination = page.Pagination.Normalize()
	if page.Items == nil {
		page.Items = []T{}
	}
	return &page, nil
}

// Get fetches one entity by id
func (e *Endpoint[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	var env models.Envelope[T]
	if err := e.client.Get(ctx, e.itemPath(id), nil, &env); err != nil {
		return nil, fmt.Errorf("get %s %s: %w", e.name, id, err)
	}
	return &env.Data, nil
}

// Create posts a new entity
func (e *Endpoint[T, C, U]) Create(ctx context.Context, payload C) (*T, error) {
	var env models.Envelope[T]
	if err := e.client.Post(ctx, e.collectionPath(), payload, &env); err != nil {
		return nil, fmt.Errorf("create %s: %w", e.name, err)
	}
	return &env.Data, nil
}

// Update replaces the editable fields of an entity
func (e *Endpoint[T, C, U]) Update(ctx context.Context, id string, payload U) (*T, error) {
	var env models.Envelope[T]
	if err := e.client.Put(ctx, e.itemPath(id), payload, &env); err != nil {
		return nil, fmt.Errorf("update %s %s: %w", e.name, id, err)
	}
	return &env.Data, nil
}

// Delete removes an entity
func (e *Endpoint[T, C, U]) Delete(ctx context.Context, id string) error {
	if err := e.client.Delete(ctx, e.itemPath(id), nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", e.name, id, err)
	}
	return nil
}

func (e *Endpoint[T, C, U]) collectionPath() string {
	return "/" + e.name
}

func (e *Endpoint[T, C, U]) itemPath(id string, suffix ...string) string {
	p := "/" + e.name + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
