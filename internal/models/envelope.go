package models

// Envelope is the body shape of every back office API response
type Envelope[T any] struct {
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// ErrorBody is the body of a non-2xx back office API response
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
