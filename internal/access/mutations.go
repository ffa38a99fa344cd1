package access

import (
	"context"

	"github.com/ashendes/jewelry-admin/internal/apiclient"
	"github.com/ashendes/jewelry-admin/internal/cache"
	"github.com/ashendes/jewelry-admin/internal/metrics"
	"github.com/ashendes/jewelry-admin/internal/notify"
	log "github.com/sirupsen/logrus"
)

type mutations struct {
	resource string
	listOp   string
	detailOp string
	cache    *cache.Cache
	notifier notify.Notifier
	inflight *InFlight
}

type mutation struct {
	action           string
	id               string
	success          string
	failure          string
	invalidateDetail bool
}

// run executes fn and settles it: on success the affected cache keys are
// invalidated before the success notification goes out, on failure nothing
// is invalidated and exactly one failure notification is emitted.
func (m *mutations) run(ctx context.Context, mu mutation, fn func(ctx context.Context) error) error {
	if mu.id != "" {
		if !m.inflight.Acquire(mu.id, mu.action) {
			return ErrInFlight
		}
		defer m.inflight.Release(mu.id)
	}

	fields := log.Fields{"resource": m.resource, "action": mu.action, "id": mu.id}

	if err := fn(ctx); err != nil {
		metrics.MutationsTotal.WithLabelValues(m.resource, mu.action, "failure").Inc()
		log.WithFields(fields).WithError(err).Warn("Mutation failed")
		m.notifier.Notify(ctx, notify.Error(apiclient.MessageOf(err, mu.failure)))
		return err
	}

	m.cache.Invalidate(cache.OpKey(m.listOp))
	if mu.invalidateDetail && mu.id != "" {
		m.cache.Invalidate(cache.NewKey(m.detailOp, mu.id))
	}

	metrics.MutationsTotal.WithLabelValues(m.resource, mu.action, "success").Inc()
	log.WithFields(fields).Info("Mutation succeeded")
	m.notifier.Notify(ctx, notify.Success(mu.success))
	return nil
}

// Pending reports whether id has a mutation outstanding
func (m *mutations) Pending(id string) bool {
	return m.inflight.Busy(id)
}
