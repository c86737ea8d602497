// Package httperr defines the error type handlers return for expected HTTP
// failures (not found, forbidden, bad input). Error reports skip these by
// default: the client caused them, and the response already tells them so.
package httperr

import (
	"errors"
	"net/http"
)

// HTTPError is an HTTP failure with a status code and a user-facing message.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Code)
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

// Option configures an HTTPError.
type Option func(*HTTPError)

// WithError attaches the underlying cause.
func WithError(err error) Option {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// New creates an HTTPError with the given status code and message.
func New(code int, message string, opts ...Option) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func BadRequest(message string, opts ...Option) *HTTPError {
	return New(http.StatusBadRequest, message, opts...)
}

func Forbidden(message string, opts ...Option) *HTTPError {
	return New(http.StatusForbidden, message, opts...)
}

func NotFound(message string, opts ...Option) *HTTPError {
	return New(http.StatusNotFound, message, opts...)
}

func Internal(message string, opts ...Option) *HTTPError {
	return New(http.StatusInternalServerError, message, opts...)
}

// As extracts the first HTTPError in err's chain, or nil.
func As(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// Write answers with err's status and message. Errors that are not an
// HTTPError become a bare 500 so internal details never reach the client.
func Write(w http.ResponseWriter, err error) {
	if httpErr := As(err); httpErr != nil {
		http.Error(w, httpErr.Error(), httpErr.Code)
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
