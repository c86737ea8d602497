package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"

	"github.com/dmitrymomot/errormail"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN" yaml:"dsn"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production" yaml:"environment"`
	// MinLevel determines which log levels to send to Sentry (e.g., slog.LevelWarn for warnings+errors)
	MinLevel slog.Level `yaml:"-"`
}

// newSentryHandler initializes the SDK and returns its slog handler.
// Returns a nil handler when DSN is empty.
func newSentryHandler(cfg SentryConfig) (slog.Handler, error) {
	if cfg.DSN == "" {
		return nil, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		return nil, err
	}

	// Errors and everything more urgent create Issues.
	eventLevel := []slog.Level{
		slog.LevelError,
		errormail.LevelCritical,
		errormail.LevelAlert,
		errormail.LevelEmergency,
	}
	logLevel := append([]slog.Level{slog.LevelWarn}, eventLevel...)
	if cfg.MinLevel >= slog.LevelError {
		logLevel = eventLevel
	}

	return sentryslog.Option{
		EventLevel: eventLevel,
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background()), nil
}
