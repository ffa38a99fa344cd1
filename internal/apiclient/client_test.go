package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ashendes/jewelry-admin/internal/patterns"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *test.Hook) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	return New(Config{
		BaseURL: srv.URL,
		Timeout: time.Second,
		Logger:  log.NewEntry(logger),
	}), hook
}

func TestClient_GetDecodesBody(t *testing.T) {
	var gotQuery url.Values
	var gotHeader http.Header
	client, hook := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotHeader = r.Header
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"name":"ring"}}`))
	})

	var out struct {
		Data struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	err := client.Get(context.Background(), "/products", url.Values{"page": {"2"}}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ring", out.Data.Name)
	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.NotEmpty(t, gotHeader.Get(RequestIDHeader))

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "Request")
	assert.Contains(t, messages, "Response")
}

func TestClient_PostSendsJSON(t *testing.T) {
	var got map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	})

	err := client.Post(context.Background(), "/categories", map[string]string{"categoryName": "Nhẫn"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "Nhẫn", got["categoryName"])
}

func TestClient_ValidationErrorKeepsMessage(t *testing.T) {
	client, hook := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Đơn hàng không tồn tại"}`))
	})

	err := client.Patch(context.Background(), "/orders/o1/status", map[string]string{"status": "success"}, nil)

	re, ok := AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, re.StatusCode)
	assert.Equal(t, "Đơn hàng không tồn tại", re.Message)
	assert.Equal(t, http.MethodPatch, re.Method)
	assert.False(t, re.ServerFault())
	assert.Equal(t, "Đơn hàng không tồn tại", MessageOf(err, "fallback"))
	assert.False(t, errors.Is(err, ErrTransport))

	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, "Server error", e.Message)
	}
}

func TestClient_ServerFaultIsLoggedAndHidden(t *testing.T) {
	client, hook := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"mongo exploded"}`))
	})

	err := client.Delete(context.Background(), "/customers/c1", nil)

	re, ok := AsRemote(err)
	require.True(t, ok)
	assert.True(t, re.ServerFault())
	assert.Equal(t, "fallback", MessageOf(err, "fallback"))

	var serverErrors int
	for _, e := range hook.AllEntries() {
		if e.Message == "Server error" {
			serverErrors++
			assert.Equal(t, log.ErrorLevel, e.Level)
		}
	}
	assert.Equal(t, 1, serverErrors)
}

func TestClient_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.Get(context.Background(), "/products/missing", nil, nil)

	assert.True(t, IsNotFound(err))
	assert.Equal(t, "fallback", MessageOf(err, "fallback"))
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	logger, hook := test.NewNullLogger()
	client := New(Config{BaseURL: baseURL, Timeout: time.Second, Logger: log.NewEntry(logger)})

	err := client.Get(context.Background(), "/products", nil, nil)

	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, "fallback", MessageOf(err, "fallback"))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Request error", hook.LastEntry().Message)
}

func TestClient_NeverRetries(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := client.Get(context.Background(), "/orders", nil, nil)

	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_OpenCircuitIsTransportError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	client := New(Config{
		BaseURL: srv.URL,
		Logger:  log.NewEntry(logger),
		Breaker: patterns.BreakerSettings{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			MinRequests:  2,
			FailureRatio: 0.5,
		},
	})

	for i := 0; i < 2; i++ {
		_, ok := AsRemote(client.Get(context.Background(), "/orders", nil, nil))
		assert.True(t, ok)
	}
	assert.Equal(t, "open", client.BreakerState())

	err := client.Get(context.Background(), "/orders", nil, nil)
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_ClientErrorsDoNotTripCircuit(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	for i := 0; i < 5; i++ {
		_ = client.Get(context.Background(), "/products", nil, nil)
	}

	assert.Equal(t, "closed", client.BreakerState())
}

func TestClient_SendsBearerToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, Token: "secret"})
	require.NoError(t, client.Get(context.Background(), "/admins", nil, nil))

	assert.Equal(t, "Bearer secret", auth)
}
