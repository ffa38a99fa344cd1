// Package cache memoizes back office reads keyed by operation and parameters.
//
// A Cache is an explicit service object: every data-access component receives
// the same instance at construction. Entries are filled only by successful
// fetches and marked stale only by Invalidate or by the staleness window.
// Concurrent readers of one key share a single fetch. Entries nobody has
// used for the GC window are dropped by Sweep.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ashendes/jewelry-admin/internal/metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Fetcher loads the value for one key
type Fetcher func(ctx context.Context) (interface{}, error)

type entry struct {
	value     interface{}
	hasValue  bool
	err       error
	updatedAt time.Time
	usedAt    time.Time
	invalid   bool
	fetching  int
	gen       uint64
}

// Cache is the process-wide query cache
type Cache struct {
	mu        sync.Mutex
	entries   map[Key]*entry
	group     singleflight.Group
	staleTime time.Duration
	gcTime    time.Duration
	now       func() time.Time
	log       *log.Entry

	subMu   sync.RWMutex
	subs    map[uint64]chan Snapshot
	nextSub uint64
}

// Option configures a Cache
type Option func(*Cache)

// WithStaleTime sets how long a value stays fresh; zero keeps it until invalidated
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) { c.staleTime = d }
}

// WithGCTime sets how long an unused entry is kept before Sweep drops it; zero keeps entries forever
func WithGCTime(d time.Duration) Option {
	return func(c *Cache) { c.gcTime = d }
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger sets the entry used for cache diagnostics
func WithLogger(l *log.Entry) Option {
	return func(c *Cache) { c.log = l }
}

// New creates an empty cache
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[Key]*entry),
		now:     time.Now,
		log:     log.WithField("component", "cache"),
		subs:    make(map[uint64]chan Snapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the value for key, calling fn only when there is no fresh value.
// Callers asking for the same key at the same time share one call to fn.
func (c *Cache) Fetch(ctx context.Context, key Key, fn Fetcher) (interface{}, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	e.usedAt = c.now()
	if c.freshLocked(e) {
		value := e.value
		c.mu.Unlock()
		metrics.CacheLookupsTotal.WithLabelValues(key.Op, "hit").Inc()
		return value, nil
	}
	gen := e.gen
	c.mu.Unlock()

	// The generation is part of the flight key so that a read issued after an
	// invalidation never joins a fetch that started before it.
	flight := fmt.Sprintf("%s#%d", key, gen)
	ch := c.group.DoChan(flight, func() (interface{}, error) {
		return c.load(ctx, key, gen, fn)
	})

	select {
	case res := <-ch:
		result := "miss"
		if res.Shared {
			result = "shared"
		}
		metrics.CacheLookupsTotal.WithLabelValues(key.Op, result).Inc()
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) load(ctx context.Context, key Key, gen uint64, fn Fetcher) (interface{}, error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	e.fetching++
	started := c.snapshotLocked(key, e)
	c.mu.Unlock()
	c.publish(started)

	// The fetch outlives any single caller: others may be waiting on it.
	value, err := fn(context.WithoutCancel(ctx))

	c.mu.Lock()
	e = c.entryLocked(key)
	e.fetching--
	e.usedAt = c.now()
	if e.gen == gen {
		if err != nil {
			e.err = err
		} else {
			e.value = value
			e.hasValue = true
			e.err = nil
			e.invalid = false
			e.updatedAt = c.now()
		}
	}
	done := c.snapshotLocked(key, e)
	c.mu.Unlock()
	c.publish(done)

	if err != nil {
		c.log.WithFields(log.Fields{"key": key.String()}).WithError(err).Debug("Fetch failed")
	}
	return value, err
}

// Read reports what the cache holds for key without fetching
func (c *Cache) Read(key Key) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{Key: key, State: StateAbsent}
	}
	e.usedAt = c.now()
	return c.snapshotLocked(key, e)
}

// Invalidate marks every entry matching pattern stale and returns how many matched.
// A pattern with empty Params matches all keys of its operation.
func (c *Cache) Invalidate(pattern Key) int {
	var snaps []Snapshot

	c.mu.Lock()
	for key, e := range c.entries {
		if !pattern.Matches(key) {
			continue
		}
		e.invalid = true
		e.gen++
		snaps = append(snaps, c.snapshotLocked(key, e))
	}
	c.mu.Unlock()

	if len(snaps) > 0 {
		metrics.CacheInvalidationsTotal.WithLabelValues(pattern.Op).Add(float64(len(snaps)))
		c.log.WithFields(log.Fields{"pattern": pattern.String(), "entries": len(snaps)}).Debug("Invalidated")
	}
	for _, s := range snaps {
		c.publish(s)
	}
	return len(snaps)
}

// Sweep drops entries that are not fetching and have not been used for the
// GC window, and returns how many it dropped
func (c *Cache) Sweep() int {
	if c.gcTime <= 0 {
		return 0
	}

	var gone []Snapshot
	c.mu.Lock()
	now := c.now()
	for key, e := range c.entries {
		if e.fetching > 0 || now.Sub(e.usedAt) < c.gcTime {
			continue
		}
		delete(c.entries, key)
		gone = append(gone, Snapshot{Key: key, State: StateAbsent})
	}
	c.mu.Unlock()

	if len(gone) > 0 {
		metrics.CacheEvictionsTotal.Add(float64(len(gone)))
		c.log.WithField("entries", len(gone)).Debug("Swept unused entries")
	}
	for _, s := range gone {
		c.publish(s)
	}
	return len(gone)
}

// RunGC calls Sweep every interval until ctx is done
func (c *Cache) RunGC(ctx context.Context, interval time.Duration) {
	if c.gcTime <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Len returns the number of keys the cache knows about
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Subscribe returns a channel receiving a Snapshot whenever an entry starts
// fetching, finishes fetching or is invalidated. Events are dropped when the
// subscriber falls more than buffer events behind. Call cancel to stop.
func (c *Cache) Subscribe(buffer int) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, buffer)

	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (c *Cache) publish(s Snapshot) {
	c.subMu.RLock()
	defer c.subMu.RUnlock()

	for _, ch := range c.subs {
		select {
		case ch <- s:
		default:
			c.log.WithField("key", s.Key.String()).Debug("Subscriber lagging, snapshot dropped")
		}
	}
}

func (c *Cache) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

func (c *Cache) freshLocked(e *entry) bool {
	if !e.hasValue || e.invalid || e.err != nil {
		return false
	}
	if c.staleTime > 0 && c.now().Sub(e.updatedAt) >= c.staleTime {
		return false
	}
	return true
}

func (c *Cache) snapshotLocked(key Key, e *entry) Snapshot {
	s := Snapshot{
		Key:       key,
		Value:     e.value,
		Err:       e.err,
		Fetching:  e.fetching > 0,
		UpdatedAt: e.updatedAt,
	}
	switch {
	case c.freshLocked(e):
		s.State = StateFresh
	case e.hasValue || e.err != nil:
		s.State = StateStale
	case e.fetching > 0:
		s.State = StatePending
	default:
		s.State = StateAbsent
	}
	return s
}

// Query is Fetch with the value asserted to T
func Query[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache: key %s holds %T", key, v)
	}
	return t, nil
}
