package access

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ashendes/jewelry-admin/internal/apiclient"
	"github.com/ashendes/jewelry-admin/internal/cache"
	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/ashendes/jewelry-admin/internal/notify"
	"github.com/ashendes/jewelry-admin/internal/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCustomers is an in-memory customers API counting every call
type fakeCustomers struct {
	mu        sync.Mutex
	items     []models.Customer
	lists     int
	gets      int
	deletes   int32
	deleteErr error
	gate      chan struct{}
}

func (f *fakeCustomers) Name() string      { return "customers" }
func (f *fakeCustomers) Filters() []string { return nil }
func (f *fakeCustomers) ListOp() string    { return "customers.list" }
func (f *fakeCustomers) DetailOp() string  { return "customers.detail" }

func (f *fakeCustomers) List(_ context.Context, params models.ListParams) (*models.Page[models.Customer], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	items := make([]models.Customer, len(f.items))
	copy(items, f.items)
	return &models.Page[models.Customer]{
		Items:      items,
		Pagination: models.NewPagination(params.Page, params.Limit, len(items)),
	}, nil
}

func (f *fakeCustomers) Get(_ context.Context, id string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	for i := range f.items {
		if f.items[i].ID == id {
			c := f.items[i]
			return &c, nil
		}
	}
	return nil, &apiclient.RemoteError{StatusCode: http.StatusNotFound, Message: "Khách hàng không tồn tại"}
}

func (f *fakeCustomers) Create(_ context.Context, payload models.CreateCustomerRequest) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Customer{ID: "new", FullName: payload.FullName, Email: payload.Email}
	f.items = append(f.items, c)
	return &c, nil
}

func (f *fakeCustomers) Update(_ context.Context, id string, payload models.UpdateCustomerRequest) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].FullName = payload.FullName
			c := f.items[i]
			return &c, nil
		}
	}
	return nil, &apiclient.RemoteError{StatusCode: http.StatusNotFound}
}

func (f *fakeCustomers) Delete(_ context.Context, id string) error {
	atomic.AddInt32(&f.deletes, 1)
	if f.gate != nil {
		<-f.gate
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

func newCustomers(t *testing.T) (*Resource[models.Customer, models.CreateCustomerRequest, models.UpdateCustomerRequest], *fakeCustomers, *notify.Recorder) {
	t.Helper()
	api := &fakeCustomers{items: []models.Customer{{ID: "c1", FullName: "Nguyễn Văn A"}}}
	rec := &notify.Recorder{}
	return NewResource[models.Customer, models.CreateCustomerRequest, models.UpdateCustomerRequest](api, cache.New(), rec, CustomerMessages), api, rec
}

func TestResource_DetailWithoutIDIsDisabled(t *testing.T) {
	customers, api, _ := newCustomers(t)

	res := customers.Detail(context.Background(), "")

	assert.True(t, res.Disabled)
	assert.Nil(t, res.Entity)
	assert.NoError(t, res.Err)
	assert.Equal(t, 0, api.gets)
}

func TestResource_ListIsCachedUntilCreate(t *testing.T) {
	customers, api, rec := newCustomers(t)
	ctx := context.Background()

	first := customers.List(ctx, models.ListParams{})
	require.NoError(t, first.Err)
	require.Len(t, first.Items, 1)

	// Same page through explicit defaults hits the same entry
	second := customers.List(ctx, models.ListParams{Page: 1, Limit: 10})
	require.NoError(t, second.Err)
	assert.Equal(t, 1, api.lists)

	created, err := customers.Create(ctx, models.CreateCustomerRequest{FullName: "Trần Thị B", Email: "b@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)

	require.Len(t, rec.Items(), 1)
	assert.Equal(t, notify.KindSuccess, rec.Items()[0].Kind)
	assert.Equal(t, "Tạo khách hàng thành công!", rec.Items()[0].Message)

	snap := customers.PeekList(models.ListParams{})
	assert.Len(t, snap.Items, 1, "stale data stays readable")

	third := customers.List(ctx, models.ListParams{})
	require.NoError(t, third.Err)
	assert.Len(t, third.Items, 2)
	assert.Equal(t, 2, api.lists)
}

func TestResource_UpdateInvalidatesDetail(t *testing.T) {
	customers, api, rec := newCustomers(t)
	ctx := context.Background()

	before := customers.Detail(ctx, "c1")
	require.NoError(t, before.Err)
	assert.Equal(t, "Nguyễn Văn A", before.Entity.FullName)

	_, err := customers.Update(ctx, "c1", models.UpdateCustomerRequest{FullName: "Nguyễn Văn C", Phone: "0901234567"})
	require.NoError(t, err)

	after := customers.Detail(ctx, "c1")
	require.NoError(t, after.Err)
	assert.Equal(t, "Nguyễn Văn C", after.Entity.FullName)
	assert.Equal(t, 2, api.gets)
	assert.Equal(t, "Cập nhật thông tin khách hàng thành công!", rec.Items()[0].Message)
}

func TestResource_DeleteFailureUsesFallbackAndKeepsCache(t *testing.T) {
	customers, api, rec := newCustomers(t)
	ctx := context.Background()
	api.deleteErr = &apiclient.RemoteError{StatusCode: http.StatusInternalServerError, Message: "boom"}

	customers.List(ctx, models.ListParams{})
	err := customers.Delete(ctx, "c1")

	require.Error(t, err)
	require.Len(t, rec.Items(), 1)
	assert.Equal(t, notify.KindError, rec.Items()[0].Kind)
	assert.Equal(t, "Có lỗi xảy ra khi xóa khách hàng", rec.Items()[0].Message)

	customers.List(ctx, models.ListParams{})
	assert.Equal(t, 1, api.lists, "failed mutation must not invalidate")
	assert.False(t, customers.Pending("c1"))
}

func TestResource_SecondDeleteWhileInFlight(t *testing.T) {
	customers, api, rec := newCustomers(t)
	api.gate = make(chan struct{})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- customers.Delete(ctx, "c1") }()

	require.Eventually(t, func() bool { return customers.Pending("c1") }, time.Second, 5*time.Millisecond)

	err := customers.Delete(ctx, "c1")
	assert.ErrorIs(t, err, ErrInFlight)

	close(api.gate)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), atomic.LoadInt32(&api.deletes))
	require.Len(t, rec.Items(), 1)
	assert.Equal(t, "Xóa khách hàng thành công!", rec.Items()[0].Message)
	assert.False(t, customers.Pending("c1"))
}

func TestResource_DetailNotFound(t *testing.T) {
	customers, _, _ := newCustomers(t)

	res := customers.Detail(context.Background(), "missing")

	require.Error(t, res.Err)
	assert.True(t, apiclient.IsNotFound(res.Err))
	assert.Nil(t, res.Entity)
}

func TestOrders_RejectedTransitionSurfacesServerMessage(t *testing.T) {
	var statusCalls, detailCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/orders/o1":
			atomic.AddInt32(&detailCalls, 1)
			_, _ = w.Write([]byte(`{"data":{"_id":"o1","orderCode":"DH001","status":"shipping","finalAmount":1500000}}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/orders/o1/status":
			atomic.AddInt32(&statusCalls, 1)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Đơn hàng không tồn tại"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: time.Second})
	rec := &notify.Recorder{}
	orders := NewOrders(resources.NewOrders(client), cache.New(), rec)
	ctx := context.Background()

	before := orders.Detail(ctx, "o1")
	require.NoError(t, before.Err)
	require.Equal(t, models.OrderStatusShipping, before.Entity.Status)

	_, err := orders.UpdateStatus(ctx, "o1", models.OrderStatusSuccess)

	var remote *apiclient.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	require.Len(t, rec.Items(), 1)
	assert.Equal(t, notify.KindError, rec.Items()[0].Kind)
	assert.Equal(t, "Đơn hàng không tồn tại", rec.Items()[0].Message)

	after := orders.Detail(ctx, "o1")
	require.NoError(t, after.Err)
	assert.Equal(t, models.OrderStatusShipping, after.Entity.Status)
	assert.Equal(t, int32(1), atomic.LoadInt32(&detailCalls), "cache untouched after rejection")
	assert.Equal(t, int32(1), atomic.LoadInt32(&statusCalls))
}

func TestOrders_CancelInvalidatesListAndDetail(t *testing.T) {
	var status atomic.Value
	status.Store("pending")
	var lists, details int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		current := status.Load().(string)
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/orders":
			atomic.AddInt32(&lists, 1)
			_, _ = w.Write([]byte(`{"data":{"items":[{"_id":"o2","status":"` + current + `"}],"page":1,"limit":10,"total":1}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/orders/o2":
			atomic.AddInt32(&details, 1)
			_, _ = w.Write([]byte(`{"data":{"_id":"o2","status":"` + current + `"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/orders/o2/cancel":
			status.Store("failed")
			_, _ = w.Write([]byte(`{"message":"ok","data":{"_id":"o2","status":"failed"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	rec := &notify.Recorder{}
	orders := NewOrders(resources.NewOrders(apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: time.Second})), cache.New(), rec)
	ctx := context.Background()

	require.NoError(t, orders.List(ctx, models.ListParams{}).Err)
	require.NoError(t, orders.Detail(ctx, "o2").Err)

	cancelled, err := orders.Cancel(ctx, "o2")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, cancelled.Status)
	assert.Equal(t, OrderCancelled, rec.Items()[0].Message)

	list := orders.List(ctx, models.ListParams{})
	require.NoError(t, list.Err)
	assert.Equal(t, models.OrderStatusFailed, list.Items[0].Status)
	detail := orders.Detail(ctx, "o2")
	assert.Equal(t, models.OrderStatusFailed, detail.Entity.Status)
	assert.Equal(t, int32(2), atomic.LoadInt32(&lists))
	assert.Equal(t, int32(2), atomic.LoadInt32(&details))
}
