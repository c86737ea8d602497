package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct {
	err   error
	calls int
}

func (h *failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *failingHandler) Handle(context.Context, slog.Record) error {
	h.calls++
	return h.err
}

func (h *failingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *failingHandler) WithGroup(string) slog.Handler      { return h }

func TestMultiHandler_JoinsErrors(t *testing.T) {
	t.Parallel()

	errA := errors.New("sink a")
	errB := errors.New("sink b")
	a := &failingHandler{err: errA}
	b := &failingHandler{err: errB}
	var buf bytes.Buffer
	text := slog.NewTextHandler(&buf, nil)

	h := newMultiHandler(a, text, b)
	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "boom", 0))

	require.ErrorIs(t, err, errA)
	require.ErrorIs(t, err, errB)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
	assert.Contains(t, buf.String(), "boom", "a failing sink does not stop the others")
}

func TestMultiHandler_SkipsDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnOnly := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	h := newMultiHandler(warnOnly)

	require.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := newMultiHandler(slog.NewTextHandler(&buf, nil)).
		WithAttrs([]slog.Attr{slog.String("service", "api")}).
		WithGroup("req")

	slog.New(h).Info("hit", slog.String("path", "/boom"))

	assert.Contains(t, buf.String(), "service=api")
	assert.Contains(t, buf.String(), "req.path=/boom")
}

func TestLogHandlerDecorator_AddsExtractedAttrs(t *testing.T) {
	t.Parallel()

	type key struct{}
	extractor := func(ctx context.Context) (slog.Attr, bool) {
		v, ok := ctx.Value(key{}).(string)
		if !ok {
			return slog.Attr{}, false
		}
		return slog.String("request_id", v), true
	}

	var buf bytes.Buffer
	log := slog.New(NewLogHandlerDecorator(slog.NewTextHandler(&buf, nil), extractor, nil))

	log.InfoContext(context.WithValue(context.Background(), key{}, "abc-123"), "with id")
	log.Info("without id")

	assert.Contains(t, buf.String(), "request_id=abc-123")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("request_id")))
}
