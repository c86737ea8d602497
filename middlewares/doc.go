// Package middlewares provides net/http middleware that feeds request
// context into error reports.
//
// # Request Context
//
// RequestContext stores the request URI and Referer, a request ID, the
// negotiated locale and the current user in the request context, where the
// errormail service picks them up when a report is composed.
//
//	r := chi.NewRouter()
//	r.Use(middlewares.RequestContext(
//		middlewares.WithLocales(cfg.Locales...),
//		middlewares.WithCallerFunc(func(r *http.Request) errormail.Caller {
//			u := auth.User(r.Context())
//			return errormail.Caller{Name: u.Name, Email: u.Email}
//		}),
//	))
//
// The locale comes from the "lang" cookie, then Accept-Language, matched
// against the configured locales; the first configured locale is the fallback.
//
// Use RequestIDExtractor() with logger.WithExtractors for request_id in all logs.
//
// # Recover
//
// Recover catches panics, logs them at errormail.LevelCritical with the
// backtrace of the panic site, and answers 500. Mount it inside
// RequestContext so the report knows which request failed.
//
//	r.Use(middlewares.RequestContext(), middlewares.Recover(log))
package middlewares
