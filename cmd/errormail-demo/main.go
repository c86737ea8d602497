// Command errormail-demo runs a small HTTP server whose failures are mailed
// to ERROR_MAIL_TO.
//
//	ERROR_MAIL_TO=ops@example.com RESEND_API_KEY=re_... go run ./cmd/errormail-demo
//
// Routes: /healthz, /readyz, /boom (logs an error), /panic, /notfound
// (an HTTP error, suppressed by default).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/errormail"
	"github.com/dmitrymomot/errormail/middlewares"
	"github.com/dmitrymomot/errormail/pkg/health"
	"github.com/dmitrymomot/errormail/pkg/httperr"
	"github.com/dmitrymomot/errormail/pkg/logger"
	"github.com/dmitrymomot/errormail/pkg/mailer"
	"github.com/dmitrymomot/errormail/pkg/mailer/resend"
	"github.com/dmitrymomot/errormail/pkg/mailer/smtp"
)

type appConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ConfigFile      string        `env:"ERROR_MAIL_CONFIG" envDefault:"errormail.yaml"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Mailer mailer.Config
	Resend resend.Config
	SMTP   smtp.Config
	Sentry logger.SentryConfig
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A local .env file is optional.
	_ = godotenv.Load()

	var app appConfig
	if err := env.Parse(&app); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg, err := errormail.LoadConfig(app.ConfigFile)
	if err != nil {
		return err
	}

	// The transport is built on first report, after the logger exists.
	var log *slog.Logger
	provider := errormail.LazyTransport(func() (errormail.Transport, error) {
		sender, err := newSender(app)
		if err != nil {
			return nil, err
		}
		traced := mailer.SenderFunc(func(ctx context.Context, email *mailer.Email) error {
			err := sender.Send(ctx, email)
			if err != nil {
				// Dropped by the error mail sink: ctx is marked as dispatching.
				log.ErrorContext(ctx, "error report not delivered", slog.Any("error", err))
			}
			return err
		})
		m := mailer.New(traced, errormail.NewThemeRenderer(), app.Mailer)
		return errormail.NewMailerTransport(m, errormail.WithNote(cfg.Note)), nil
	})

	svc := errormail.New(cfg, provider)
	log = logger.New(
		logger.WithErrorMail(errormail.NewHandler(svc)),
		logger.WithSentry(app.Sentry),
		logger.WithExtractors(middlewares.RequestIDExtractor(), logger.CallerExtractor()),
	)
	slog.SetDefault(log)

	if !cfg.Enabled() {
		log.Warn("ERROR_MAIL_TO is empty, error reports are disabled")
	}

	srv := &http.Server{
		Addr:              app.Addr,
		Handler:           routes(log, cfg, provider),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("shutdown completed")
	return nil
}

// newSender picks Resend when an API key is set, SMTP when a host is set.
func newSender(app appConfig) (mailer.Sender, error) {
	switch {
	case app.Resend.Configured():
		return resend.New(app.Resend)
	case app.SMTP.Configured():
		return smtp.New(app.SMTP), nil
	default:
		return nil, errors.New("no mail provider configured: set RESEND_API_KEY or SMTP_HOST")
	}
}

func routes(log *slog.Logger, cfg errormail.Config, provider errormail.TransportProvider) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middlewares.RequestContext(
			middlewares.WithLocales(cfg.Locales...),
			middlewares.WithCallerFunc(headerCaller),
		),
		middlewares.Recover(log),
	)

	r.Get("/healthz", health.LivenessHandler())
	r.Get("/readyz", health.ReadinessHandler(health.Checks{
		"mail_transport": health.TransportCheck(provider),
	}, health.WithLogger(log)))

	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		err := errors.New("card declined")
		log.ErrorContext(r.Context(), "Order %order failed: @reason",
			slog.Int("order", 42),
			slog.String("reason", err.Error()),
			slog.Any("error", err),
		)
		httperr.Write(w, httperr.Internal("order failed", httperr.WithError(err)))
	})

	r.Get("/panic", func(http.ResponseWriter, *http.Request) {
		var orders map[string]int
		orders["42"]++
	})

	r.Get("/notfound", func(w http.ResponseWriter, r *http.Request) {
		err := httperr.NotFound("no such order")
		log.ErrorContext(r.Context(), "lookup failed", slog.Any("error", err))
		httperr.Write(w, err)
	})

	return r
}

// headerCaller reads the demo's fake identity headers.
func headerCaller(r *http.Request) errormail.Caller {
	return errormail.Caller{
		Name:  r.Header.Get("X-User-Name"),
		Email: r.Header.Get("X-User-Email"),
	}
}
