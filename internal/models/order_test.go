package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_NextStatuses(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   []OrderStatus
	}{
		{OrderStatusPending, []OrderStatus{OrderStatusConfirmed, OrderStatusFailed}},
		{OrderStatusConfirmed, []OrderStatus{OrderStatusShipping, OrderStatusFailed}},
		{OrderStatusShipping, []OrderStatus{OrderStatusSuccess, OrderStatusFailed}},
		{OrderStatusSuccess, []OrderStatus{}},
		{OrderStatusFailed, []OrderStatus{}},
		{OrderStatus("unknown"), []OrderStatus{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.NextStatuses())
		})
	}
}

func TestOrderStatus_NextStatusesReturnsCopy(t *testing.T) {
	next := OrderStatusPending.NextStatuses()
	next[0] = OrderStatusSuccess

	assert.Equal(t, []OrderStatus{OrderStatusConfirmed, OrderStatusFailed}, OrderStatusPending.NextStatuses())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	for _, from := range OrderStatuses {
		allowed := map[OrderStatus]bool{}
		for _, to := range from.NextStatuses() {
			allowed[to] = true
		}
		for _, to := range OrderStatuses {
			assert.Equal(t, allowed[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatus_Cancellable(t *testing.T) {
	assert.True(t, OrderStatusPending.Cancellable())
	assert.True(t, OrderStatusConfirmed.Cancellable())
	assert.True(t, OrderStatusShipping.Cancellable())
	assert.False(t, OrderStatusSuccess.Cancellable())
	assert.False(t, OrderStatusFailed.Cancellable())
	assert.False(t, OrderStatus("").Cancellable())
}
