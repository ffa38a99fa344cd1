package backoffice

import (
	"errors"
	"net/http"
)

// Error is a failure the API reports to its caller with a status and message
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func badRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// statusOf returns the HTTP status for err, 500 when err is not an *Error
func statusOf(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.Status, e.Message
	}
	return http.StatusInternalServerError, "Lỗi máy chủ"
}
