package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ashendes/jewelry-admin/internal/metrics"
	"github.com/ashendes/jewelry-admin/internal/patterns"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RequestIDHeader correlates console and API logs
const RequestIDHeader = "X-Request-ID"

const serviceName = "console-service"

// Config holds the only externally tunable transport parameters
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxConcurrency int
	Token          string
	Breaker        patterns.BreakerSettings
	Logger         *log.Entry
}

// Client is the single shared connection to the back office API.
// It never retries and never turns a failed call into a successful one.
type Client struct {
	http     *resty.Client
	breaker  *patterns.CircuitBreakerWrapper
	bulkhead *patterns.Bulkhead
	log      *log.Entry
}

// New builds the client from cfg, filling zero values with defaults
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = patterns.DefaultTimeout
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 10
	}
	if cfg.Breaker == (patterns.BreakerSettings{}) {
		cfg.Breaker = patterns.DefaultBreakerSettings
	}
	if cfg.Logger == nil {
		cfg.Logger = log.WithField("component", "apiclient")
	}

	c := &Client{
		breaker:  patterns.NewCircuitBreaker("BackOffice", serviceName, cfg.Breaker),
		bulkhead: patterns.NewBulkhead(cfg.MaxConcurrency, "backoffice", serviceName),
		log:      cfg.Logger,
	}

	c.http = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		OnBeforeRequest(c.logRequest).
		OnAfterResponse(c.logResponse).
		OnError(c.logError)

	if cfg.Token != "" {
		c.http.SetAuthToken(cfg.Token)
	}

	return c
}

// BreakerState exposes the circuit state for health reporting
func (c *Client) BreakerState() string {
	return c.breaker.GetState()
}

// Get issues a GET and decodes the response body into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends one request through the bulkhead and circuit breaker.
// Non-2xx answers come back as *RemoteError, missing answers wrap ErrTransport.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	called := false

	err := c.bulkhead.Execute(ctx, func() error {
		called = true

		result, cbErr := c.breaker.Execute(func() (interface{}, error) {
			resp, httpErr := c.request(ctx, query, body).Execute(method, path)
			if httpErr != nil {
				return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, httpErr)
			}
			// Only server faults count against the circuit; a 4xx is a healthy API saying no.
			if resp.StatusCode() >= http.StatusInternalServerError {
				return nil, newRemoteError(resp)
			}
			return resp, nil
		})
		if cbErr != nil {
			if patterns.IsRejection(cbErr) {
				return fmt.Errorf("%w: %v", ErrTransport, patterns.FormatError("BackOffice", cbErr))
			}
			return cbErr
		}

		resp := result.(*resty.Response)
		if resp.IsError() {
			return newRemoteError(resp)
		}
		return decode(resp, out)
	})

	if err != nil && !called {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return err
}

func (c *Client) request(ctx context.Context, query url.Values, body interface{}) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	return req
}

func decode(resp *resty.Response, out interface{}) error {
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", resp.Request.URL, err)
	}
	return nil
}

func (c *Client) logRequest(_ *resty.Client, req *resty.Request) error {
	if req.Header.Get(RequestIDHeader) == "" {
		req.SetHeader(RequestIDHeader, uuid.New().String())
	}
	c.log.WithFields(log.Fields{
		"method":     req.Method,
		"url":        req.URL,
		"request_id": req.Header.Get(RequestIDHeader),
	}).Debug("Request")
	return nil
}

func (c *Client) logResponse(_ *resty.Client, resp *resty.Response) error {
	req := resp.Request
	fields := log.Fields{
		"method":      req.Method,
		"url":         req.URL,
		"status":      resp.StatusCode(),
		"duration_ms": resp.Time().Milliseconds(),
		"request_id":  req.Header.Get(RequestIDHeader),
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(req.Method, fmt.Sprint(resp.StatusCode())).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(req.Method).Observe(resp.Time().Seconds())

	if !resp.IsError() {
		c.log.WithFields(fields).Debug("Response")
		return nil
	}

	c.log.WithFields(fields).Error("Response error")
	if resp.StatusCode() >= http.StatusInternalServerError {
		c.log.WithFields(fields).WithField("body", resp.String()).Error("Server error")
	}
	return nil
}

func (c *Client) logError(req *resty.Request, err error) {
	metrics.UpstreamRequestsTotal.WithLabelValues(req.Method, "error").Inc()

	c.log.WithFields(log.Fields{
		"method":     req.Method,
		"url":        req.URL,
		"request_id": req.Header.Get(RequestIDHeader),
	}).WithError(err).Error("Request error")
}
