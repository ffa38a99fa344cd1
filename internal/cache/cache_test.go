package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	calls int32
	value string
}

func (c *counter) fetch(ctx context.Context) (interface{}, error) {
	n := atomic.AddInt32(&c.calls, 1)
	return c.value + "#" + string(rune('0'+n)), nil
}

func (c *counter) count() int32 {
	return atomic.LoadInt32(&c.calls)
}

func TestCache_ServesFreshValueWithoutRefetch(t *testing.T) {
	c := New()
	src := &counter{value: "page"}
	key := NewKey("products.list", map[string]int{"page": 1})

	first, err := c.Fetch(context.Background(), key, src.fetch)
	require.NoError(t, err)
	second, err := c.Fetch(context.Background(), key, src.fetch)
	require.NoError(t, err)

	assert.Equal(t, "page#1", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), src.count())
	assert.Equal(t, StateFresh, c.Read(key).State)
}

func TestCache_DifferentParamsAreIndependent(t *testing.T) {
	c := New()
	src := &counter{value: "page"}

	_, err := c.Fetch(context.Background(), NewKey("products.list", map[string]int{"page": 1}), src.fetch)
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), NewKey("products.list", map[string]int{"page": 2}), src.fetch)
	require.NoError(t, err)

	assert.Equal(t, int32(2), src.count())
	assert.Equal(t, 2, c.Len())
}

func TestCache_InvalidateForcesRefetch(t *testing.T) {
	c := New()
	src := &counter{value: "list"}
	key := NewKey("customers.list", map[string]int{"page": 1})

	_, _ = c.Fetch(context.Background(), key, src.fetch)
	assert.Equal(t, 1, c.Invalidate(OpKey("customers.list")))
	assert.Equal(t, StateStale, c.Read(key).State)

	v, err := c.Fetch(context.Background(), key, src.fetch)
	require.NoError(t, err)
	assert.Equal(t, "list#2", v)
	assert.Equal(t, StateFresh, c.Read(key).State)
}

func TestCache_InvalidateExactKey(t *testing.T) {
	c := New()
	src := &counter{value: "detail"}
	c1 := NewKey("customers.detail", "c1")
	c2 := NewKey("customers.detail", "c2")

	_, _ = c.Fetch(context.Background(), c1, src.fetch)
	_, _ = c.Fetch(context.Background(), c2, src.fetch)

	assert.Equal(t, 1, c.Invalidate(c1))
	assert.Equal(t, StateStale, c.Read(c1).State)
	assert.Equal(t, StateFresh, c.Read(c2).State)
	assert.Equal(t, 0, c.Invalidate(OpKey("orders.detail")))
}

func TestCache_SharesInFlightFetch(t *testing.T) {
	c := New()
	key := NewKey("orders.list", nil)

	release := make(chan struct{})
	started := make(chan struct{})
	var calls int32
	fn := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return "orders", nil
	}

	var wg sync.WaitGroup
	results := make([]interface{}, 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.Fetch(context.Background(), key, fn)
	}()
	<-started

	snap := c.Read(key)
	assert.Equal(t, StatePending, snap.State)
	assert.True(t, snap.Loading())

	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Fetch(context.Background(), key, fn)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "orders", r)
	}
}

func TestCache_ReadAfterInvalidationDoesNotJoinOlderFetch(t *testing.T) {
	c := New()
	key := NewKey("products.list", nil)

	release := make(chan struct{})
	started := make(chan struct{})
	var calls int32
	fn := func(ctx context.Context) (interface{}, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
			return "before", nil
		}
		return "after", nil
	}

	var wg sync.WaitGroup
	var old interface{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		old, _ = c.Fetch(context.Background(), key, fn)
	}()
	<-started

	c.Invalidate(OpKey("products.list"))
	fresh, err := c.Fetch(context.Background(), key, fn)
	require.NoError(t, err)
	assert.Equal(t, "after", fresh)

	close(release)
	wg.Wait()

	assert.Equal(t, "before", old)
	snap := c.Read(key)
	assert.Equal(t, "after", snap.Value)
	assert.Equal(t, StateFresh, snap.State)
}

func TestCache_ErrorIsNotCachedAsFresh(t *testing.T) {
	c := New()
	key := NewKey("admins.list", nil)
	boom := errors.New("boom")

	_, err := c.Fetch(context.Background(), key, func(ctx context.Context) (interface{}, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	snap := c.Read(key)
	assert.Equal(t, StateStale, snap.State)
	assert.ErrorIs(t, snap.Err, boom)

	v, err := c.Fetch(context.Background(), key, func(ctx context.Context) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.NoError(t, c.Read(key).Err)
}

func TestCache_FailedRefetchKeepsLastValue(t *testing.T) {
	c := New()
	key := NewKey("admins.list", nil)

	_, _ = c.Fetch(context.Background(), key, func(ctx context.Context) (interface{}, error) { return "v1", nil })
	c.Invalidate(key)
	_, err := c.Fetch(context.Background(), key, func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("down")
	})
	require.Error(t, err)

	snap := c.Read(key)
	assert.Equal(t, "v1", snap.Value)
	assert.Error(t, snap.Err)
}

func TestCache_StaleTime(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(WithStaleTime(time.Minute), WithClock(func() time.Time { return now }))
	src := &counter{value: "v"}
	key := NewKey("categories.list", nil)

	_, _ = c.Fetch(context.Background(), key, src.fetch)
	now = now.Add(30 * time.Second)
	_, _ = c.Fetch(context.Background(), key, src.fetch)
	assert.Equal(t, int32(1), src.count())

	now = now.Add(30 * time.Second)
	assert.Equal(t, StateStale, c.Read(key).State)
	_, _ = c.Fetch(context.Background(), key, src.fetch)
	assert.Equal(t, int32(2), src.count())
}

func TestCache_SweepDropsUnusedEntries(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(WithGCTime(5*time.Minute), WithClock(func() time.Time { return now }))
	src := &counter{value: "v"}
	old := NewKey("products.list", map[string]string{"search": "nhẫn"})
	used := NewKey("products.list", map[string]string{"search": "vòng"})

	_, _ = c.Fetch(context.Background(), old, src.fetch)
	_, _ = c.Fetch(context.Background(), used, src.fetch)

	now = now.Add(4 * time.Minute)
	assert.Equal(t, 0, c.Sweep())
	c.Read(used)

	now = now.Add(time.Minute)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, StateAbsent, c.Read(old).State)
	assert.Equal(t, StateFresh, c.Read(used).State)

	_, _ = c.Fetch(context.Background(), old, src.fetch)
	assert.Equal(t, int32(3), src.count(), "a swept key is fetched again")
}

func TestCache_SweepKeepsFetchingEntries(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	c := New(WithGCTime(time.Minute), WithClock(clock))
	key := NewKey("orders.list", nil)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Fetch(context.Background(), key, func(ctx context.Context) (interface{}, error) {
			close(started)
			<-release
			return "v", nil
		})
	}()
	<-started

	mu.Lock()
	now = now.Add(time.Hour)
	mu.Unlock()
	assert.Equal(t, 0, c.Sweep())

	close(release)
	<-done
	assert.Equal(t, StateFresh, c.Read(key).State)
}

func TestCache_SweepDisabledByDefault(t *testing.T) {
	c := New()
	_, _ = c.Fetch(context.Background(), NewKey("admins.list", nil), (&counter{}).fetch)
	assert.Equal(t, 0, c.Sweep())
	assert.Equal(t, 1, c.Len())
}

func TestCache_RunGCSweepsUntilCancelled(t *testing.T) {
	c := New(WithGCTime(time.Nanosecond))
	_, _ = c.Fetch(context.Background(), NewKey("customers.list", nil), (&counter{}).fetch)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		c.RunGC(ctx, time.Millisecond)
		close(stopped)
	}()

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("RunGC did not return after cancel")
	}
}

func TestCache_ReadUnknownKey(t *testing.T) {
	c := New()
	snap := c.Read(NewKey("nothing", nil))
	assert.Equal(t, StateAbsent, snap.State)
	assert.False(t, snap.Loading())
	assert.Equal(t, 0, c.Len())
}

func TestCache_SubscribePublishesLifecycle(t *testing.T) {
	c := New()
	events, cancel := c.Subscribe(16)
	defer cancel()
	key := NewKey("orders.detail", "o1")

	_, err := c.Fetch(context.Background(), key, func(ctx context.Context) (interface{}, error) { return "o1", nil })
	require.NoError(t, err)
	c.Invalidate(key)

	var states []State
	for i := 0; i < 3; i++ {
		select {
		case s := <-events:
			assert.Equal(t, key, s.Key)
			states = append(states, s.State)
		case <-time.After(time.Second):
			t.Fatal("missing snapshot")
		}
	}
	assert.Equal(t, []State{StatePending, StateFresh, StateStale}, states)
}

func TestCache_SubscribeCancelClosesChannel(t *testing.T) {
	c := New()
	events, cancel := c.Subscribe(0)
	cancel()
	cancel()

	_, ok := <-events
	assert.False(t, ok)

	_, err := c.Fetch(context.Background(), NewKey("x", nil), func(ctx context.Context) (interface{}, error) { return 1, nil })
	assert.NoError(t, err)
}

func TestCache_FetchHonoursCallerContext(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	release := make(chan struct{})
	defer close(release)
	_, err := c.Fetch(ctx, NewKey("slow", nil), func(ctx context.Context) (interface{}, error) {
		<-release
		return nil, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQuery_TypeAssertion(t *testing.T) {
	c := New()
	key := NewKey("typed", nil)

	n, err := Query(context.Background(), c, key, func(ctx context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = Query(context.Background(), c, key, func(ctx context.Context) (string, error) { return "", nil })
	assert.Error(t, err)
}

func TestNewKey(t *testing.T) {
	assert.Equal(t, Key{Op: "a"}, NewKey("a", nil))
	assert.Equal(t, Key{Op: "a", Params: "id"}, NewKey("a", "id"))
	assert.Equal(t, NewKey("a", map[string]int{"x": 1, "y": 2}), NewKey("a", map[string]int{"y": 2, "x": 1}))
	assert.Equal(t, "a:id", NewKey("a", "id").String())
	assert.True(t, OpKey("a").Matches(NewKey("a", "id")))
	assert.False(t, NewKey("a", "id").Matches(NewKey("a", "other")))
	assert.False(t, OpKey("a").Matches(OpKey("b")))
}
