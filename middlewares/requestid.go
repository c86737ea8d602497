package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/errormail/pkg/logger"
)

// requestIDKey is the context key for storing the request ID.
type requestIDKey struct{}

// DefaultRequestIDHeaders are the headers checked (in order) for an existing request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Request-Id", "X-Correlation-ID"}

// requestID returns the first upstream ID found in headers, or a new one.
func requestID(r *http.Request, headers []string, generate func() string) string {
	// First match wins to preserve upstream tracing IDs
	for _, header := range headers {
		if v := r.Header.Get(header); v != "" {
			return v
		}
	}
	return generate()
}

// GetRequestID extracts the request ID from the context.
// Returns an empty string if no request ID is set.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// RequestIDExtractor returns a ContextExtractor for logger.WithExtractors.
// Adds "request_id" to all log entries.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := GetRequestID(ctx); v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
