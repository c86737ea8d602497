// Package logger builds the application's *slog.Logger.
//
// Every logger writes JSON to stdout. Two optional sinks can be fanned out
// from the same logger: the error mail handler from the errormail package
// and Sentry. Context extractors inject request-scoped values into every
// sink on each call.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithExtractors(logger.RequestURIExtractor(), logger.CallerExtractor()),
//	)
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//
// # Error Mail
//
//	svc := errormail.New(cfg, errormail.StaticTransport(transport))
//	log := logger.New(logger.WithErrorMail(errormail.NewHandler(svc)))
//
//	// Sent by mail: error and above, plus the extra errormail levels.
//	log.ErrorContext(ctx, "payment failed", slog.Any("error", err))
//	log.Log(ctx, errormail.LevelCritical, "queue stalled")
//
// The extra levels (NOTICE, CRITICAL, ALERT, EMERGENCY) are printed by name
// in the JSON output.
//
// # Sentry Integration
//
//	log := logger.New(logger.WithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		MinLevel:    slog.LevelWarn,
//	}))
//
// An empty DSN or a failed SDK init leaves Sentry off; stdout logging
// continues either way.
//
// # Fan-out
//
// Records logged while an error report is being delivered carry
// error_mail_dispatch=true (DispatchKey) and never reach the error mail sink.
//
// All sinks see every record they are enabled for. Errors from the sinks are
// joined and returned from Handle; slog itself discards them, so the error
// mail handler reports its own failures through its ErrorHandler.
package logger
