package resources

import (
	"context"
	"fmt"

	"github.com/ashendes/jewelry-admin/internal/models"
)

// noPayload stands in for the create/update payloads orders do not have in the console
type noPayload struct{}

// Orders is the order endpoint. Orders are created by the checkout flow, so only
// reads, deletion and the status actions are exposed here.
type Orders struct {
	endpoint *Endpoint[models.Order, noPayload, noPayload]
}

// NewOrders binds /orders
func NewOrders(client Requester) *Orders {
	return &Orders{endpoint: NewEndpoint[models.Order, noPayload, noPayload](client, "orders", FilterStatus)}
}

// Name returns the collection name
func (o *Orders) Name() string { return o.endpoint.Name() }

// Filters returns the list filters for orders
func (o *Orders) Filters() []string { return o.endpoint.Filters() }

// ListOp identifies order list reads in the query cache
func (o *Orders) ListOp() string { return o.endpoint.ListOp() }

// DetailOp identifies order detail reads in the query cache
func (o *Orders) DetailOp() string { return o.endpoint.DetailOp() }

// List fetches one page of orders
func (o *Orders) List(ctx context.Context, params models.ListParams) (*models.Page[models.Order], error) {
	return o.endpoint.List(ctx, params)
}

// Get fetches one order
func (o *Orders) Get(ctx context.Context, id string) (*models.Order, error) {
	return o.endpoint.Get(ctx, id)
}

// Delete removes an order permanently
func (o *Orders) Delete(ctx context.Context, id string) error {
	return o.endpoint.Delete(ctx, id)
}

// UpdateStatus asks the API to move an order to status.
// Legality is checked by the caller and again by the API.
func (o *Orders) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var env models.Envelope[models.Order]
	body := models.UpdateOrderStatusRequest{Status: status}
	if err := o.endpoint.client.Patch(ctx, o.endpoint.itemPath(id, "status"), body, &env); err != nil {
		return nil, fmt.Errorf("update order %s status to %s: %w", id, status, err)
	}
	return &env.Data, nil
}

// Cancel asks the API to cancel an order
func (o *Orders) Cancel(ctx context.Context, id string) (*models.Order, error) {
	var env models.Envelope[models.Order]
	if err := o.endpoint.client.Post(ctx, o.endpoint.itemPath(id, "cancel"), nil, &env); err != nil {
		return nil, fmt.Errorf("cancel order %s: %w", id, err)
	}
	return &env.Data, nil
}

var statusText = map[models.OrderStatus]string{
	models.OrderStatusPending:   "Chờ xác nhận",
	models.OrderStatusConfirmed: "Đã xác nhận",
	models.OrderStatusShipping:  "Đang giao hàng",
	models.OrderStatusSuccess:   "Giao thành công",
	models.OrderStatusFailed:    "Đã hủy",
}

var statusColor = map[models.OrderStatus]string{
	models.OrderStatusPending:   "bg-yellow-100 text-yellow-800",
	models.OrderStatusConfirmed: "bg-blue-100 text-blue-800",
	models.OrderStatusShipping:  "bg-purple-100 text-purple-800",
	models.OrderStatusSuccess:   "bg-green-100 text-green-800",
	models.OrderStatusFailed:    "bg-red-100 text-red-800",
}

var statusIcon = map[models.OrderStatus]string{
	models.OrderStatusPending:   "package",
	models.OrderStatusConfirmed: "check-circle",
	models.OrderStatusShipping:  "truck",
	models.OrderStatusSuccess:   "check-circle",
	models.OrderStatusFailed:    "x-circle",
}

// StatusText returns the Vietnamese label of a status, or the raw value when unknown
func StatusText(s models.OrderStatus) string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return string(s)
}

// StatusColor returns the badge classes of a status
func StatusColor(s models.OrderStatus) string {
	if color, ok := statusColor[s]; ok {
		return color
	}
	return "bg-gray-100 text-gray-800"
}

// StatusIcon returns the icon name of a status
func StatusIcon(s models.OrderStatus) string {
	if icon, ok := statusIcon[s]; ok {
		return icon
	}
	return "package"
}
