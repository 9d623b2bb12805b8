package api

import (
	"fmt"
	"net/http"
)

// ErrorInfo describes a failed call. Message is meant for the user,
// Details carries the decoded backend body (or its raw text) when there was one.
// Status is 0 when no HTTP response was received.
type ErrorInfo struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Status  int    `json:"-"`
}

func (e *ErrorInfo) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// Result is the uniform outcome of every call.
// Data is non-nil iff Success; Error is non-nil iff !Success.
type Result[T any] struct {
	Success bool       `json:"success"`
	Data    *T         `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

func succeed[T any](data *T) Result[T] {
	if data == nil {
		data = new(T)
	}
	return Result[T]{Success: true, Data: data}
}

func fail[T any](info *ErrorInfo) Result[T] {
	if info == nil {
		info = &ErrorInfo{Message: genericErrorMessage}
	}
	return Result[T]{Error: info}
}

// Err returns the failure as an error, or nil on success.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	if r.Error == nil {
		return &ErrorInfo{Message: genericErrorMessage}
	}
	return r.Error
}

// Unauthorized reports whether the call ended with HTTP 401.
func (r Result[T]) Unauthorized() bool {
	return !r.Success && r.Error != nil && r.Error.Status == http.StatusUnauthorized
}
