package logger

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/errormail"
)

// ContextExtractor reads one request-scoped attribute from ctx.
// It reports false when ctx carries nothing to log.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// DispatchKey marks records logged while an error report is being delivered,
// so transport failures can be told apart from the failures they report.
const DispatchKey = "error_mail_dispatch"

// LogHandlerDecorator runs the extractors on every call and appends their
// attributes to the record before passing it on.
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewLogHandlerDecorator wraps next. Nil extractors are skipped.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	d := &LogHandlerDecorator{next: next}
	for _, ex := range extractors {
		if ex != nil {
			d.extractors = append(d.extractors, ex)
		}
	}
	return d
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	if errormail.IsDispatching(ctx) {
		rec.AddAttrs(slog.Bool(DispatchKey, true))
	}
	return h.next.Handle(ctx, rec)
}

func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.wrap(h.next.WithAttrs(attrs))
}

func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	return h.wrap(h.next.WithGroup(name))
}

func (h *LogHandlerDecorator) wrap(next slog.Handler) *LogHandlerDecorator {
	return &LogHandlerDecorator{next: next, extractors: h.extractors}
}
