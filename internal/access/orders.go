package access

import (
	"context"

	"github.com/ashendes/jewelry-admin/internal/cache"
	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/ashendes/jewelry-admin/internal/notify"
)

// OrdersAPI is what the order resource module offers
type OrdersAPI interface {
	reader[models.Order]
	Name() string
	Filters() []string
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	Cancel(ctx context.Context, id string) (*models.Order, error)
}

// Orders is the data-access component for orders
type Orders struct {
	queries[models.Order]
	*mutations
	api OrdersAPI
}

// NewOrders wires the order module to the shared cache and notifier
func NewOrders(api OrdersAPI, c *cache.Cache, n notify.Notifier) *Orders {
	return &Orders{
		queries: queries[models.Order]{api: api, cache: c},
		mutations: &mutations{
			resource: api.Name(),
			listOp:   api.ListOp(),
			detailOp: api.DetailOp(),
			cache:    c,
			notifier: n,
			inflight: NewInFlight(),
		},
		api: api,
	}
}

// Name returns the collection name
func (o *Orders) Name() string {
	return o.api.Name()
}

// Filters returns the order list filters
func (o *Orders) Filters() []string {
	return o.api.Filters()
}

// UpdateStatus requests a status change. Callers only offer legal transitions;
// the API remains the authority and may still refuse.
func (o *Orders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var updated *models.Order
	err := o.run(ctx, mutation{
		action:           "status",
		id:               id,
		success:          StatusUpdated,
		failure:          StatusUpdateFailed,
		invalidateDetail: true,
	}, func(ctx context.Context) error {
		var err error
		updated, err = o.api.UpdateStatus(ctx, id, status)
		return err
	})
	return updated, err
}

// Cancel requests cancellation through the dedicated endpoint
func (o *Orders) Cancel(ctx context.Context, id string) (*models.Order, error) {
	var cancelled *models.Order
	err := o.run(ctx, mutation{
		action:           "cancel",
		id:               id,
		success:          OrderCancelled,
		failure:          CancelFailed,
		invalidateDetail: true,
	}, func(ctx context.Context) error {
		var err error
		cancelled, err = o.api.Cancel(ctx, id)
		return err
	})
	return cancelled, err
}

// Delete removes an order permanently
func (o *Orders) Delete(ctx context.Context, id string) error {
	return o.run(ctx, mutation{
		action:           "delete",
		id:               id,
		success:          OrderMessages.Deleted,
		failure:          OrderMessages.DeleteFailed,
		invalidateDetail: true,
	}, func(ctx context.Context) error {
		return o.api.Delete(ctx, id)
	})
}
