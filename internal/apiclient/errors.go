package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/go-resty/resty/v2"
)

// ErrTransport marks failures where no usable response came back:
// timeouts, refused connections, an open circuit or a saturated bulkhead
var ErrTransport = errors.New("back office API unreachable")

// RemoteError is a non-2xx response from the back office API
type RemoteError struct {
	StatusCode int
	Message    string
	Body       []byte
	Method     string
	Path       string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// ServerFault reports whether the API failed on its side (5xx)
func (e *RemoteError) ServerFault() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// NotFound reports a 404 response
func (e *RemoteError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func newRemoteError(resp *resty.Response) *RemoteError {
	re := &RemoteError{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}
	if resp.Request != nil {
		re.Method = resp.Request.Method
		re.Path = resp.Request.URL
	}

	var body models.ErrorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		re.Message = body.Message
		if re.Message == "" {
			re.Message = body.Error
		}
	}
	return re
}

// AsRemote extracts a RemoteError from err
func AsRemote(err error) (*RemoteError, bool) {
	var re *RemoteError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	re, ok := AsRemote(err)
	return ok && re.NotFound()
}

// MessageOf returns the message to show a user for err.
// Validation failures (4xx) carry the API's own message; everything else gets fallback.
func MessageOf(err error, fallback string) string {
	re, ok := AsRemote(err)
	if !ok || re.ServerFault() || re.Message == "" {
		return fallback
	}
	return re.Message
}
