package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/errormail"
	"github.com/dmitrymomot/errormail/pkg/httperr"
)

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	Responder func(w http.ResponseWriter, r *http.Request, err error)
	Level     slog.Level
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverResponder sets how the client is answered after a panic.
// Defaults to httperr.Write.
func WithRecoverResponder(fn func(w http.ResponseWriter, r *http.Request, err error)) RecoverOption {
	return func(cfg *RecoverConfig) {
		if fn != nil {
			cfg.Responder = fn
		}
	}
}

// WithRecoverLevel sets the level panics are logged at. Defaults to errormail.LevelCritical.
func WithRecoverLevel(level slog.Level) RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.Level = level
	}
}

// Recover returns middleware that recovers from panics.
// The panic is logged with its backtrace and classification, so a logger
// carrying the error mail sink sends a report, then the client gets a 500
// (or the status of a panicked httperr.HTTPError).
// http.ErrAbortHandler is re-panicked untouched.
func Recover(log *slog.Logger, opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &RecoverConfig{
		Level: errormail.LevelCritical,
		Responder: func(w http.ResponseWriter, _ *http.Request, err error) {
			httperr.Write(w, err)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
					panic(rec)
				}

				pe := &PanicError{
					Value:  rec,
					Frames: panicFrames(errormail.CaptureFrames(0)),
				}

				log.LogAttrs(r.Context(), cfg.Level, "Panic recovered: %panic",
					slog.Any("panic", rec),
					slog.Any(errormail.KeyException, classification(rec)),
					slog.Any(errormail.KeyBacktrace, pe.Frames),
				)

				cfg.Responder(w, r, pe)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// classification is what the suppression list sees: the error itself, or the
// Go type of a non-error panic value.
func classification(v any) any {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Sprintf("%T", v)
}

// panicFrames drops the frames of the recover handler and the runtime panic machinery.
func panicFrames(frames []errormail.StackFrame) []errormail.StackFrame {
	for i, f := range frames {
		if f.Function == "runtime.gopanic" {
			return frames[i+1:]
		}
	}
	return frames
}
