package patterns

import (
	"context"
	"fmt"
	"time"

	"github.com/ashendes/jewelry-admin/internal/metrics"
)

// Bulkhead caps the number of calls running at once against one dependency
type Bulkhead struct {
	semaphore      chan struct{}
	acquireTimeout time.Duration
	name           string
	service        string
}

// NewBulkhead creates a new bulkhead with specified capacity
func NewBulkhead(size int, name, service string) *Bulkhead {
	if size < 1 {
		size = 1
	}
	return &Bulkhead{
		semaphore:      make(chan struct{}, size),
		acquireTimeout: BulkheadAcquireTimeout,
		name:           name,
		service:        service,
	}
}

// Execute runs fn once a slot is free, giving up after the acquire timeout or when ctx ends
func (b *Bulkhead) Execute(ctx context.Context, fn func() error) error {
	timer := time.NewTimer(b.acquireTimeout)
	defer timer.Stop()

	select {
	case b.semaphore <- struct{}{}:
		metrics.BulkheadActiveRequests.WithLabelValues(b.service, b.name).Inc()

		defer func() {
			<-b.semaphore
			metrics.BulkheadActiveRequests.WithLabelValues(b.service, b.name).Dec()
		}()

		return fn()

	case <-timer.C:
		metrics.BulkheadRejectedRequests.WithLabelValues(b.service, b.name).Inc()
		return fmt.Errorf("bulkhead %s: timeout acquiring resource", b.name)

	case <-ctx.Done():
		metrics.BulkheadRejectedRequests.WithLabelValues(b.service, b.name).Inc()
		return fmt.Errorf("bulkhead %s: %w", b.name, ctx.Err())
	}
}

// Capacity returns the number of calls allowed at once
func (b *Bulkhead) Capacity() int {
	return cap(b.semaphore)
}
