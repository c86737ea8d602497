package errormail

import (
	"context"
	"maps"
	"time"
)

// Service runs the alerting pipeline for one log event at a time:
// severity filter, recipient check, suppression, composition, dispatch.
// All state is fixed at construction, so a Service is safe for concurrent use.
type Service struct {
	filter      SeverityFilter
	suppression SuppressionList
	composer    *ReportComposer
	dispatcher  *Dispatcher
	request     func(ctx context.Context) RequestInfo
	caller      func(ctx context.Context) Caller
	locale      func(ctx context.Context) string
	now         func() time.Time
	mailTo      string
	template    string
	list        ListRenderer
}

// Option configures a Service.
type Option func(*Service)

// WithSeverityFilter replaces the default alertable set.
func WithSeverityFilter(f SeverityFilter) Option {
	return func(s *Service) {
		s.filter = f
	}
}

// WithSuppressionList replaces the list derived from Config.
func WithSuppressionList(l SuppressionList) Option {
	return func(s *Service) {
		s.suppression = l
	}
}

// WithComposer sets a prebuilt composer; it wins over WithReportTemplate and WithListRenderer.
func WithComposer(c *ReportComposer) Option {
	return func(s *Service) {
		if c != nil {
			s.composer = c
		}
	}
}

// WithReportTemplate overrides the report header template.
func WithReportTemplate(tmpl string) Option {
	return func(s *Service) {
		if tmpl != "" {
			s.template = tmpl
		}
	}
}

// WithListRenderer overrides the metadata list renderer.
func WithListRenderer(r ListRenderer) Option {
	return func(s *Service) {
		if r != nil {
			s.list = r
		}
	}
}

// WithRequestResolver sets how the current request is found.
// Defaults to RequestFromContext.
func WithRequestResolver(fn func(ctx context.Context) RequestInfo) Option {
	return func(s *Service) {
		if fn != nil {
			s.request = fn
		}
	}
}

// WithCallerResolver sets how the current user is found.
// Defaults to CallerFromContext.
func WithCallerResolver(fn func(ctx context.Context) Caller) Option {
	return func(s *Service) {
		if fn != nil {
			s.caller = fn
		}
	}
}

// WithLocaleResolver sets how the recipient locale is found.
// Defaults to LocaleFromContext, then Config.DefaultLocale.
func WithLocaleResolver(fn func(ctx context.Context) string) Option {
	return func(s *Service) {
		if fn != nil {
			s.locale = fn
		}
	}
}

// WithClock sets the time source of the per-report key.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a Service. The transport is only resolved when a report is sent.
func New(cfg Config, provider TransportProvider, opts ...Option) *Service {
	s := &Service{
		filter:      DefaultSeverityFilter(),
		suppression: cfg.SuppressionList(),
		request:     RequestFromContext,
		caller:      CallerFromContext,
		now:         time.Now,
		mailTo:      cfg.MailTo,
		template:    cfg.ReportTemplate,
	}

	defaultLocale := cfg.DefaultLocale
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	s.locale = func(ctx context.Context) string {
		if l := LocaleFromContext(ctx); l != "" {
			return l
		}
		return defaultLocale
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.composer == nil {
		s.composer = NewReportComposer(s.template, s.list)
	}

	s.dispatcher = NewDispatcher(provider, s.mailTo)
	s.dispatcher.now = s.now
	s.dispatcher.locale = s.locale

	return s
}

// Enabled reports whether a recipient is configured.
func (s *Service) Enabled() bool {
	return s.mailTo != ""
}

// Alertable reports whether an event of this severity could produce a report.
func (s *Service) Alertable(sev Severity) bool {
	return s.Enabled() && s.filter.ShouldAlert(sev)
}

// Log is the generic entry point: one call per log event.
// It returns nil when the event is filtered out and only fails when the
// report could not be dispatched.
func (s *Service) Log(ctx context.Context, severity Severity, template string, fields map[string]any) error {
	if !s.filter.ShouldAlert(severity) {
		return nil
	}
	if !s.Enabled() {
		return nil
	}
	if IsDispatching(ctx) {
		return nil
	}

	event := LogEvent{
		Severity: severity,
		Message:  template,
		Context:  maps.Clone(fields),
	}
	if s.suppression.IsSuppressed(event.Classification()) {
		return nil
	}

	body := s.composer.Compose(ctx, event, s.request(ctx), s.caller(ctx))

	return s.dispatcher.Send(ctx, s.mailTo, DefaultSubject, body, DefaultHeaders())
}
