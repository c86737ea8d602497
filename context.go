package errormail

import (
	"context"
	"net/http"
)

// RequestInfo is the request that was being served when the event was logged.
type RequestInfo struct {
	URI     string
	Referer string
}

// Caller identifies the authenticated user behind the failing request.
type Caller struct {
	Name  string
	Email string
}

type (
	requestKey     struct{}
	callerKey      struct{}
	localeKey      struct{}
	dispatchingKey struct{}
)

// WithRequest stores the request URI and Referer header in ctx.
// A nil request leaves ctx unchanged.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	if r == nil {
		return ctx
	}
	return WithRequestInfo(ctx, RequestInfo{
		URI:     requestURI(r),
		Referer: r.Header.Get("Referer"),
	})
}

// WithRequestInfo stores request metadata in ctx.
func WithRequestInfo(ctx context.Context, info RequestInfo) context.Context {
	return context.WithValue(ctx, requestKey{}, info)
}

// RequestFromContext returns the stored request metadata or the zero value.
func RequestFromContext(ctx context.Context) RequestInfo {
	info, _ := ctx.Value(requestKey{}).(RequestInfo)
	return info
}

// WithCaller stores the current user identity in ctx.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext returns the stored identity or the zero value.
func CallerFromContext(ctx context.Context) Caller {
	c, _ := ctx.Value(callerKey{}).(Caller)
	return c
}

// WithLocale stores the preferred locale code in ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// LocaleFromContext returns the stored locale code or "".
func LocaleFromContext(ctx context.Context) string {
	l, _ := ctx.Value(localeKey{}).(string)
	return l
}

// markDispatching tags ctx so events logged while a report is in flight are dropped.
func markDispatching(ctx context.Context) context.Context {
	return context.WithValue(ctx, dispatchingKey{}, true)
}

// IsDispatching reports whether ctx belongs to an in-flight report delivery.
func IsDispatching(ctx context.Context) bool {
	v, _ := ctx.Value(dispatchingKey{}).(bool)
	return v
}

// requestURI rebuilds the absolute URI the client asked for.
func requestURI(r *http.Request) string {
	if r.URL == nil {
		return r.RequestURI
	}
	if r.URL.IsAbs() {
		return r.URL.String()
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
