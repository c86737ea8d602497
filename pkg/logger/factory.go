package logger

import (
	"log/slog"

	"github.com/dmitrymomot/errormail"
)

// New creates a JSON logger writing to stdout, optionally fanned out to the
// error mail and Sentry sinks. Context extractors apply to every sink.
func New(opts ...Option) *slog.Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	stdout := slog.NewJSONHandler(o.output, &slog.HandlerOptions{
		Level:       o.level,
		AddSource:   true,
		ReplaceAttr: replaceLevelName,
	})

	handlers := []slog.Handler{stdout}
	if o.errorMail != nil {
		handlers = append(handlers, o.errorMail)
	}
	if o.sentry != nil {
		if h, err := newSentryHandler(*o.sentry); err != nil {
			// Sentry stays off; stdout must keep working.
			slog.New(stdout).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		} else if h != nil {
			handlers = append(handlers, h)
		}
	}

	var handler slog.Handler = stdout
	if len(handlers) > 1 {
		handler = newMultiHandler(handlers...)
	}

	return slog.New(NewLogHandlerDecorator(handler, o.extractors...))
}

// replaceLevelName prints the extra severities by name instead of "ERROR+4".
func replaceLevelName(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	switch level {
	case errormail.LevelNotice:
		return slog.String(slog.LevelKey, "NOTICE")
	case errormail.LevelCritical:
		return slog.String(slog.LevelKey, "CRITICAL")
	case errormail.LevelAlert:
		return slog.String(slog.LevelKey, "ALERT")
	case errormail.LevelEmergency:
		return slog.String(slog.LevelKey, "EMERGENCY")
	}
	return a
}
