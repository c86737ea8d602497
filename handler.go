package errormail

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"slices"
)

// ErrorHandler receives dispatch failures from the slog Handler.
// It must not log through a logger that contains the same Handler.
type ErrorHandler func(ctx context.Context, err error)

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithErrorHandler sets the dispatch failure callback.
func WithErrorHandler(fn ErrorHandler) HandlerOption {
	return func(h *Handler) {
		if fn != nil {
			h.onError = fn
		}
	}
}

// WithoutStackCapture stops the handler from capturing a backtrace when the
// record carries none.
func WithoutStackCapture() HandlerOption {
	return func(h *Handler) {
		h.capture = false
	}
}

// Handler is a slog.Handler that feeds records into a Service.
// Attach it next to a regular output handler; it only reacts to alertable levels.
type Handler struct {
	svc     *Service
	onError ErrorHandler
	attrs   []slog.Attr
	groups  []string
	capture bool
}

// NewHandler wraps svc as a slog.Handler.
func NewHandler(svc *Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:     svc,
		capture: true,
		onError: stderrErrorHandler(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func stderrErrorHandler() ErrorHandler {
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return func(ctx context.Context, err error) {
		fallback.LogAttrs(ctx, slog.LevelWarn, "error mail not sent", slog.String("error", err.Error()))
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	if IsDispatching(ctx) {
		return false
	}
	return h.svc.Alertable(SeverityFromLevel(level))
}

// Handle turns the record into a LogEvent and runs the pipeline.
// A dispatch failure goes to the ErrorHandler and is also returned.
func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	fields := h.recordFields(rec)

	if _, ok := fields[KeyBacktrace]; !ok && h.capture {
		// Skip Handle and the slog frames above it.
		fields[KeyBacktrace] = trimSlogFrames(CaptureFrames(1))
	}

	err := h.svc.Log(ctx, SeverityFromLevel(rec.Level), rec.Message, fields)
	if err != nil {
		h.onError(ctx, err)
	}
	return err
}

// recordFields flattens handler and record attrs into one map, with group
// names joined by ".", and fills function, file and line from the record's PC.
func (h *Handler) recordFields(rec slog.Record) map[string]any {
	fields := make(map[string]any, len(h.attrs)+rec.NumAttrs()+4)

	// h.attrs already carry the group prefix of the moment they were added.
	for _, a := range h.attrs {
		addAttr(fields, "", a)
	}
	prefix := groupPrefix(h.groups)
	rec.Attrs(func(a slog.Attr) bool {
		addAttr(fields, prefix, a)
		return true
	})

	if rec.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{rec.PC})
		f, _ := frames.Next()
		setDefault(fields, KeyFunction, f.Function)
		setDefault(fields, KeyFile, f.File)
		setDefault(fields, KeyLine, f.Line)
	}

	return fields
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	prefix := groupPrefix(h.groups)
	clone.attrs = slices.Clip(h.attrs)
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clip(h.groups), name)
	return &clone
}

func groupPrefix(groups []string) string {
	if len(groups) == 0 {
		return ""
	}
	var prefix string
	for _, g := range groups {
		prefix += g + "."
	}
	return prefix
}

// addAttr flattens a into fields, keeping the raw Go value of each attr.
func addAttr(fields map[string]any, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Key == "" && a.Value.Kind() != slog.KindGroup {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			addAttr(fields, p, ga)
		}
		return
	}
	fields[prefix+a.Key] = a.Value.Any()
}

func setDefault(fields map[string]any, key string, val any) {
	if _, ok := fields[key]; !ok {
		fields[key] = val
	}
}

// trimSlogFrames drops leading frames that belong to log/slog and this package's handler.
func trimSlogFrames(frames []StackFrame) []StackFrame {
	for i, f := range frames {
		if !isLoggingFrame(f.Function) {
			return frames[i:]
		}
	}
	return frames
}

func isLoggingFrame(fn string) bool {
	for _, p := range loggingPrefixes {
		if len(fn) >= len(p) && fn[:len(p)] == p {
			return true
		}
	}
	return false
}

var loggingPrefixes = []string{
	"log/slog.",
	"github.com/dmitrymomot/errormail/pkg/logger.",
	"github.com/dmitrymomot/errormail.(*Handler)",
}
