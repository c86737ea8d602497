package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/errormail"
	"github.com/dmitrymomot/errormail/middlewares"
)

func serve(t *testing.T, mw func(http.Handler) http.Handler, req *http.Request, fn func(r *http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fn(r)
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, req)
	return rec
}

func TestRequestContext_StoresRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://shop.example.com/checkout?step=2", nil)
	req.Header.Set("Referer", "http://shop.example.com/cart")

	var info errormail.RequestInfo
	serve(t, middlewares.RequestContext(), req, func(r *http.Request) {
		info = errormail.RequestFromContext(r.Context())
	})

	assert.Equal(t, "http://shop.example.com/checkout?step=2", info.URI)
	assert.Equal(t, "http://shop.example.com/cart", info.Referer)
}

func TestRequestContext_RequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates a uuid", func(t *testing.T) {
		t.Parallel()

		var id string
		rec := serve(t, middlewares.RequestContext(), httptest.NewRequest(http.MethodGet, "/", nil), func(r *http.Request) {
			id = middlewares.GetRequestID(r.Context())
		})

		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.Header().Get("X-Request-ID"))
	})

	t.Run("keeps upstream id", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "trace-123")

		var id string
		rec := serve(t, middlewares.RequestContext(), req, func(r *http.Request) {
			id = middlewares.GetRequestID(r.Context())
		})

		assert.Equal(t, "trace-123", id)
		assert.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "ignored")

		mw := middlewares.RequestContext(
			middlewares.WithRequestIDHeaders("X-Trace"),
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
		)
		rec := serve(t, mw, req, func(*http.Request) {})

		assert.Equal(t, "fixed", rec.Header().Get("X-Request-ID"))
	})
}

func TestRequestContext_Locale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cookie string
		accept string
		want   string
	}{
		{name: "no preference falls back to first", want: "en"},
		{name: "accept-language", accept: "de-DE,de;q=0.9,en;q=0.5", want: "de"},
		{name: "cookie wins", cookie: "fr", accept: "de", want: "fr"},
		{name: "unsupported falls back", accept: "ja", want: "en"},
		{name: "region matches base locale", accept: "fr-CA", want: "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middlewares.LocaleCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}

			var got string
			serve(t, middlewares.RequestContext(middlewares.WithLocales("en", "de", "fr")), req, func(r *http.Request) {
				got = errormail.LocaleFromContext(r.Context())
			})

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestContext_NoLocalesStoresNone(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "de")

	var got string
	serve(t, middlewares.RequestContext(), req, func(r *http.Request) {
		got = errormail.LocaleFromContext(r.Context())
	})

	assert.Empty(t, got)
}

func TestRequestContext_Caller(t *testing.T) {
	t.Parallel()

	mw := middlewares.RequestContext(middlewares.WithCallerFunc(func(r *http.Request) errormail.Caller {
		if r.Header.Get("Authorization") == "" {
			return errormail.Caller{}
		}
		return errormail.Caller{Name: "Ann", Email: "ann@example.com"}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")

	var c errormail.Caller
	serve(t, mw, req, func(r *http.Request) {
		c = errormail.CallerFromContext(r.Context())
	})
	assert.Equal(t, errormail.Caller{Name: "Ann", Email: "ann@example.com"}, c)

	serve(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), func(r *http.Request) {
		c = errormail.CallerFromContext(r.Context())
	})
	assert.Equal(t, errormail.Caller{}, c)
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	extractor := middlewares.RequestIDExtractor()

	_, ok := extractor(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)

	var attrOK bool
	serve(t, middlewares.RequestContext(middlewares.WithRequestIDGenerator(func() string { return "req-1" })),
		httptest.NewRequest(http.MethodGet, "/", nil), func(r *http.Request) {
			attr, ok := extractor(r.Context())
			attrOK = ok && attr.Key == "request_id" && attr.Value.String() == "req-1"
		})
	assert.True(t, attrOK)
}
