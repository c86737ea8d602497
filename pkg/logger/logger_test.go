package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/errormail"
	"github.com/dmitrymomot/errormail/pkg/logger"
)

type recordingTransport struct {
	mu   sync.Mutex
	msgs []errormail.Message
	err  error
}

func (r *recordingTransport) Mail(_ context.Context, msg errormail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return r.err
}

func (r *recordingTransport) sent() []errormail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]errormail.Message(nil), r.msgs...)
}

func newErrorMail(t *testing.T, transport errormail.Transport, opts ...errormail.HandlerOption) *errormail.Handler {
	t.Helper()
	svc := errormail.New(errormail.Config{MailTo: "ops@example.com"}, errormail.StaticTransport(transport))
	return errormail.NewHandler(svc, opts...)
}

func TestNew_WritesJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf))

	log.Info("request processed", slog.Int("status", 200))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "request processed", line["msg"])
	assert.EqualValues(t, 200, line["status"])
}

func TestNew_LevelFiltersStdoutOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	transport := &recordingTransport{}
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithLevel(slog.LevelError+100),
		logger.WithErrorMail(newErrorMail(t, transport)),
	)

	log.Error("disk full")

	assert.Empty(t, buf.String())
	assert.Len(t, transport.sent(), 1)
}

func TestNew_FansOutToErrorMail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	transport := &recordingTransport{}
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithErrorMail(newErrorMail(t, transport)),
	)

	log.Info("all good")
	log.Warn("slow query")
	require.Empty(t, transport.sent(), "info and warning are not alertable")

	log.Error("payment failed", slog.Int("order", 42))

	sent := transport.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ops@example.com", sent[0].To)
	assert.Equal(t, errormail.DefaultSubject, sent[0].Params.Subject)
	assert.Contains(t, sent[0].Params.Body, "payment failed")
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"), "every record reaches stdout")
}

func TestNew_ExtractorsReachEverySink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	transport := &recordingTransport{}
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithErrorMail(newErrorMail(t, transport)),
		logger.WithExtractors(logger.CallerExtractor(), logger.RequestURIExtractor()),
	)

	ctx := errormail.WithCaller(context.Background(), errormail.Caller{Name: "Ann", Email: "ann@example.com"})
	ctx = errormail.WithRequestInfo(ctx, errormail.RequestInfo{URI: "https://example.com/checkout"})

	log.ErrorContext(ctx, "checkout failed")

	assert.Contains(t, buf.String(), `"user":"ann@example.com"`)
	assert.Contains(t, buf.String(), `"uri":"https://example.com/checkout"`)

	sent := transport.sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Params.Body, "User: Ann (ann@example.com)")
	assert.Contains(t, sent[0].Params.Body, "URI: https://example.com/checkout")
}

func TestNew_NamesExtraLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  string
	}{
		{errormail.LevelNotice, "NOTICE"},
		{errormail.LevelCritical, "CRITICAL"},
		{errormail.LevelAlert, "ALERT"},
		{errormail.LevelEmergency, "EMERGENCY"},
		{slog.LevelError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := logger.New(logger.WithOutput(&buf))
			log.Log(context.Background(), tt.level, "x")

			assert.Contains(t, buf.String(), `"level":"`+tt.want+`"`)
		})
	}
}

func TestNew_TransportFailureKeepsStdout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var reported []error
	transport := &recordingTransport{err: errors.New("smtp down")}
	handler := newErrorMail(t, transport, errormail.WithErrorHandler(func(_ context.Context, err error) {
		reported = append(reported, err)
	}))
	log := logger.New(logger.WithOutput(&buf), logger.WithErrorMail(handler))

	log.Error("db gone")

	assert.Contains(t, buf.String(), "db gone")
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], errormail.ErrDispatchFailed)
}

func TestNew_SentryWithoutDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithSentry(logger.SentryConfig{}))

	log.Error("still logged")
	assert.Contains(t, buf.String(), "still logged")
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	log.Error("discarded")
}

func TestNew_MarksRecordsLoggedDuringDispatch(t *testing.T) {
	t.Parallel()

	var (
		buf bytes.Buffer
		log *slog.Logger
	)
	transport := errormail.TransportFunc(func(ctx context.Context, _ errormail.Message) error {
		log.ErrorContext(ctx, "provider rejected report")
		return nil
	})
	log = logger.New(logger.WithOutput(&buf), logger.WithErrorMail(newErrorMail(t, transport)))

	log.Error("db gone")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "db gone")
	assert.NotContains(t, lines[0], logger.DispatchKey)
	assert.Contains(t, lines[1], "provider rejected report")
	assert.Contains(t, lines[1], `"`+logger.DispatchKey+`":true`)
}
