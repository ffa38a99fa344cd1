package models

import "time"

// OrderStatus is the lifecycle state of an order
type OrderStatus string

// OrderStatus constants
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusSuccess   OrderStatus = "success"
	OrderStatusFailed    OrderStatus = "failed"
)

// OrderStatuses lists every status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipping,
	OrderStatusSuccess,
	OrderStatusFailed,
}

// orderTransitions maps a status to the statuses it may move to.
// Terminal statuses have no entry.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusFailed},
	OrderStatusConfirmed: {OrderStatusShipping, OrderStatusFailed},
	OrderStatusShipping:  {OrderStatusSuccess, OrderStatusFailed},
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipping, OrderStatusSuccess, OrderStatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusSuccess || s == OrderStatusFailed
}

// NextStatuses returns the statuses an order in status s may be moved to
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := orderTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether next is a legal edge from s
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether the cancel action applies to s
func (s OrderStatus) Cancellable() bool {
	return s.Valid() && !s.Terminal()
}

// OrderCustomer is the customer reference embedded in an order
type OrderCustomer struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// OrderItem represents a line of an order
type OrderItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       Money  `json:"price"`
}

// Order represents a customer purchase
type Order struct {
	ID              string         `json:"_id"`
	OrderCode       string         `json:"orderCode"`
	Customer        *OrderCustomer `json:"customerId"`
	OrderDate       time.Time      `json:"orderDate"`
	Items           []OrderItem    `json:"items,omitempty"`
	TotalAmount     Money          `json:"totalAmount"`
	ShippingFee     Money          `json:"shippingFee"`
	Discount        Money          `json:"discount"`
	FinalAmount     Money          `json:"finalAmount"`
	Status          OrderStatus    `json:"status"`
	ShippingAddress string         `json:"shippingAddress,omitempty"`
	Note            string         `json:"note,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// UpdateOrderStatusRequest is the body of PATCH /orders/{id}/status
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
