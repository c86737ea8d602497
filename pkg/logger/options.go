package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/errormail"
)

type options struct {
	output     io.Writer
	level      slog.Leveler
	extractors []ContextExtractor
	errorMail  *errormail.Handler
	sentry     *SentryConfig
}

// Option configures New.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		output: os.Stdout,
		level:  slog.LevelInfo,
	}
}

// WithOutput sets the writer of the JSON handler. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithLevel sets the minimum level of the JSON handler.
// The error mail and Sentry sinks keep their own thresholds.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		if level != nil {
			o.level = level
		}
	}
}

// WithExtractors adds context extractors applied to every sink.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithErrorMail adds the error mail sink.
func WithErrorMail(h *errormail.Handler) Option {
	return func(o *options) {
		o.errorMail = h
	}
}

// WithSentry adds a Sentry sink. An empty DSN leaves Sentry disabled.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) {
		o.sentry = &cfg
	}
}
