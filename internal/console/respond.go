package console

import (
	"context"
	"errors"
	"net/http"

	"github.com/ashendes/jewelry-admin/internal/access"
	"github.com/ashendes/jewelry-admin/internal/apiclient"
	"github.com/ashendes/jewelry-admin/internal/models"
	"github.com/ashendes/jewelry-admin/internal/notify"
	"github.com/ashendes/jewelry-admin/internal/views"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	recorderKey = "notifications"

	msgGenericFailure = "Có lỗi xảy ra, vui lòng thử lại"
	msgInFlight       = "Yêu cầu trước đó đang được xử lý, vui lòng chờ"
	msgInvalidForm    = "Dữ liệu không hợp lệ"
)

// Response is the body of every console response
type Response struct {
	Data          interface{}           `json:"data,omitempty"`
	Error         *models.ErrorBody     `json:"error,omitempty"`
	Redirect      string                `json:"redirect,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
	Sidebar       []views.MenuItem      `json:"sidebar"`
}

// collectNotifications gives each request its own notification recorder
func collectNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, rec := notify.WithCollector(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Set(recorderKey, rec)
		c.Next()
	}
}

func notifications(c *gin.Context) []notify.Notification {
	if v, ok := c.Get(recorderKey); ok {
		if rec, ok := v.(*notify.Recorder); ok {
			return rec.Items()
		}
	}
	return []notify.Notification{}
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Data:          data,
		Notifications: notifications(c),
		Sidebar:       views.Sidebar(c.Request.URL.Path),
	})
}

func redirect(c *gin.Context, status int, data interface{}, to string) {
	c.JSON(status, Response{
		Data:          data,
		Redirect:      to,
		Notifications: notifications(c),
		Sidebar:       views.Sidebar(c.Request.URL.Path),
	})
}

// fail reports a failed mutation. The message is the one the user was notified with.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	notes := notifications(c)

	message := apiclient.MessageOf(err, msgGenericFailure)
	if errors.Is(err, access.ErrInFlight) {
		message = msgInFlight
	} else if len(notes) > 0 {
		message = notes[len(notes)-1].Message
	}

	log.WithFields(log.Fields{
		"path":   c.Request.URL.Path,
		"status": status,
	}).WithError(err).Warn("Console request failed")

	c.JSON(status, Response{
		Error:         &models.ErrorBody{Message: message, Error: err.Error()},
		Notifications: notes,
		Sidebar:       views.Sidebar(c.Request.URL.Path),
	})
}

func invalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Error:         &models.ErrorBody{Message: msgInvalidForm, Error: err.Error()},
		Notifications: notifications(c),
		Sidebar:       views.Sidebar(c.Request.URL.Path),
	})
}

// statusFor maps a failure onto the console's HTTP status.
// API validation failures keep their status; an unhealthy API is a gateway problem.
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, access.ErrInFlight) {
		return http.StatusConflict
	}
	if errors.Is(err, apiclient.ErrTransport) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	if remote, ok := apiclient.AsRemote(err); ok {
		if remote.ServerFault() {
			return http.StatusBadGateway
		}
		return remote.StatusCode
	}
	return http.StatusInternalServerError
}
