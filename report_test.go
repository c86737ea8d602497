package errormail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/errormail/pkg/httperr"
)

const emptyItemList = `<div class="item-list"><ul><li>URI: </li><li>Referer: </li><li>User:  ()</li></ul></div>`

func TestReportComposer_Compose(t *testing.T) {
	t.Parallel()

	c := NewReportComposer("", nil)
	event := LogEvent{
		Severity: SeverityError,
		Message:  "boom",
		Context: map[string]any{
			KeyFunction: "main.run",
			KeyLine:     10,
			KeyFile:     "/app/main.go",
		},
	}

	got := c.Compose(context.Background(), event, RequestInfo{}, Caller{})

	want := `<em class="placeholder">main.run</em>: boom (line <em class="placeholder">10</em> of <em class="placeholder">/app/main.go</em>) <pre></pre>` +
		emptyItemList
	assert.Equal(t, want, got)
}

func TestReportComposer_MissingFieldsRenderEmpty(t *testing.T) {
	t.Parallel()

	got := NewReportComposer("", nil).Compose(context.Background(), LogEvent{}, RequestInfo{}, Caller{})

	want := `<em class="placeholder"></em>:  (line <em class="placeholder"></em> of <em class="placeholder"></em>) <pre></pre>` +
		emptyItemList
	assert.Equal(t, want, got)
}

func TestReportComposer_Backtrace(t *testing.T) {
	t.Parallel()

	event := LogEvent{
		Message: "boom",
		Context: map[string]any{
			KeyBacktrace: []StackFrame{
				{File: "/app/main.go", Line: 42, HasLine: true, Function: "main.run", Args: Args("<id>")},
				{Function: "runtime.main"},
			},
		},
	}

	got := NewReportComposer("<pre>@backtrace_string</pre>", nil).
		Compose(context.Background(), event, RequestInfo{}, Caller{})

	assert.Contains(t, got, "<pre>#0 /app/main.go(42): main.run(&#39;&lt;id&gt;&#39;)\n#1 [internal function](): runtime.main()\n</pre>")
}

func TestReportComposer_Message(t *testing.T) {
	t.Parallel()

	c := NewReportComposer("@message", ListRendererFunc(func(context.Context, []string) (string, error) {
		return "", nil
	}))

	tests := []struct {
		name  string
		event LogEvent
		want  string
	}{
		{
			name:  "interpolated from context",
			event: LogEvent{Message: "Order %order failed", Context: map[string]any{"order": 7}},
			want:  "Order 7 failed",
		},
		{
			name:  "escaped once",
			event: LogEvent{Message: "<script>@x</script>", Context: map[string]any{"x": "&"}},
			want:  "&lt;script&gt;&amp;&lt;/script&gt;",
		},
		{
			name:  "context message wins",
			event: LogEvent{Message: "ignored", Context: map[string]any{KeyMessage: "from context"}},
			want:  "from context",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Compose(context.Background(), tt.event, RequestInfo{}, Caller{}))
		})
	}
}

func TestReportComposer_RequestAndCaller(t *testing.T) {
	t.Parallel()

	got := NewReportComposer("x", nil).Compose(context.Background(), LogEvent{},
		RequestInfo{URI: "https://example.com/orders/7", Referer: "https://example.com/"},
		Caller{Name: "Ann", Email: "ann@example.com"},
	)

	assert.Equal(t, `x<div class="item-list"><ul>`+
		`<li>URI: https://example.com/orders/7</li>`+
		`<li>Referer: https://example.com/</li>`+
		`<li>User: Ann (ann@example.com)</li>`+
		`</ul></div>`, got)
}

func TestLogEvent_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctx  map[string]any
		want string
	}{
		{"none", nil, ""},
		{"string exception", map[string]any{KeyException: "PDOException"}, "PDOException"},
		{"error exception", map[string]any{KeyException: httperr.NotFound("")}, ClassHTTPError},
		{"error field", map[string]any{"error": errors.New("x")}, "*errors.errorString"},
		{"exception wins", map[string]any{KeyException: "A", "error": errors.New("x")}, "A"},
		{"non error field", map[string]any{"error": "text"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LogEvent{Context: tt.ctx}.Classification())
		})
	}
}
