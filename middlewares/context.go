package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/errormail"
)

// CallerFunc identifies the user behind a request.
// Return the zero Caller for anonymous requests.
type CallerFunc func(r *http.Request) errormail.Caller

// ContextConfig configures the RequestContext middleware.
type ContextConfig struct {
	Caller           CallerFunc
	Generator        func() string // Request ID generator
	ResponseHeader   string        // Response header carrying the request ID
	RequestIDHeaders []string      // Headers to check for an existing ID (in order)
	Locales          []string      // Negotiated locales; the first one is the fallback
}

// ContextOption configures ContextConfig.
type ContextOption func(*ContextConfig)

// WithCallerFunc sets how the current user is identified.
func WithCallerFunc(fn CallerFunc) ContextOption {
	return func(cfg *ContextConfig) {
		cfg.Caller = fn
	}
}

// WithLocales sets the locales negotiated from the lang cookie and
// Accept-Language. Without locales no locale is stored.
func WithLocales(locales ...string) ContextOption {
	return func(cfg *ContextConfig) {
		cfg.Locales = locales
	}
}

// WithRequestIDHeaders sets the headers to check for existing request IDs.
func WithRequestIDHeaders(headers ...string) ContextOption {
	return func(cfg *ContextConfig) {
		cfg.RequestIDHeaders = headers
	}
}

// WithRequestIDGenerator sets a custom ID generator function.
func WithRequestIDGenerator(gen func() string) ContextOption {
	return func(cfg *ContextConfig) {
		cfg.Generator = gen
	}
}

// RequestContext stores what an error report needs to know about the request:
// URI and Referer, a request ID, the negotiated locale and the caller.
// The request ID is also echoed in the response header.
func RequestContext(opts ...ContextOption) func(http.Handler) http.Handler {
	cfg := &ContextConfig{
		RequestIDHeaders: DefaultRequestIDHeaders,
		Generator:        uuid.NewString,
		ResponseHeader:   "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	locales := newLocaleMatcher(cfg.Locales)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := errormail.WithRequest(r.Context(), r)

			reqID := requestID(r, cfg.RequestIDHeaders, cfg.Generator)
			ctx = context.WithValue(ctx, requestIDKey{}, reqID)
			w.Header().Set(cfg.ResponseHeader, reqID)

			if locales != nil {
				ctx = errormail.WithLocale(ctx, locales.match(r))
			}

			if cfg.Caller != nil {
				if c := cfg.Caller(r); c != (errormail.Caller{}) {
					ctx = errormail.WithCaller(ctx, c)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
