package errormail

import (
	"context"
	"maps"
)

// Reserved keys of LogEvent.Context.
const (
	KeyFunction        = "function"
	KeyLine            = "line"
	KeyFile            = "file"
	KeyBacktrace       = "backtrace"
	KeyException       = "exception"
	KeyMessage         = "message"
	KeyBacktraceString = "backtrace_string"
)

// DefaultReportTemplate is the header line of every report.
const DefaultReportTemplate = `%function: @message (line %line of %file) <pre>@backtrace_string</pre>`

// LogEvent is one log call as seen by the sink.
type LogEvent struct {
	Context  map[string]any
	Message  string
	Severity Severity
}

// Classification returns the failure classification carried by the event:
// either a string under "exception" or the type of an error under
// "exception" or "error". Returns "" when there is none.
func (e LogEvent) Classification() string {
	switch v := e.Context[KeyException].(type) {
	case string:
		return v
	case error:
		return Classify(v)
	}
	if err, ok := e.Context["error"].(error); ok {
		return Classify(err)
	}
	return ""
}

// Backtrace returns the frames under "backtrace", or nil.
func (e LogEvent) Backtrace() []StackFrame {
	frames, _ := e.Context[KeyBacktrace].([]StackFrame)
	return frames
}

// ReportComposer turns an event plus its request context into the HTML body.
type ReportComposer struct {
	list     ListRenderer
	template string
}

// NewReportComposer builds a composer. An empty template selects
// DefaultReportTemplate, a nil renderer selects TemplList.
func NewReportComposer(template string, list ListRenderer) *ReportComposer {
	if template == "" {
		template = DefaultReportTemplate
	}
	if list == nil {
		list = TemplList{}
	}
	return &ReportComposer{template: template, list: list}
}

// Compose renders the report header, then appends the metadata list.
// It never fails; missing fields render empty.
func (c *ReportComposer) Compose(ctx context.Context, event LogEvent, req RequestInfo, caller Caller) string {
	args := make(map[string]any, len(event.Context)+4)
	args[KeyFunction] = ""
	args[KeyLine] = ""
	args[KeyFile] = ""
	maps.Copy(args, event.Context)

	if _, ok := args[KeyMessage]; !ok {
		args[KeyMessage] = Interpolate(event.Message, event.Context)
	}
	args[KeyBacktraceString] = FormatStackTrace(event.Backtrace())

	body := RenderMessage(c.template, args)

	items := []string{
		"URI: " + req.URI,
		"Referer: " + req.Referer,
		"User: " + caller.Name + " (" + caller.Email + ")",
	}
	list, err := c.list.RenderList(ctx, items)
	if err != nil {
		list = plainList(items)
	}

	return body + list
}
