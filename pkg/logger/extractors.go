package logger

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/errormail"
)

// CallerExtractor adds the current user's email as "user".
func CallerExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		c := errormail.CallerFromContext(ctx)
		if c.Email == "" {
			return slog.Attr{}, false
		}
		return slog.String("user", c.Email), true
	}
}

// RequestURIExtractor adds the current request URI as "uri".
func RequestURIExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		r := errormail.RequestFromContext(ctx)
		if r.URI == "" {
			return slog.Attr{}, false
		}
		return slog.String("uri", r.URI), true
	}
}
