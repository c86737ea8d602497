package errormail

import (
	"context"
	"embed"

	"github.com/dmitrymomot/errormail/pkg/mailer"
	"github.com/dmitrymomot/errormail/pkg/sanitizer"
)

//go:embed themes/*.html
var themes embed.FS

// NewThemeRenderer returns a mailer renderer over the built-in themes.
func NewThemeRenderer() *mailer.Renderer {
	return mailer.NewRendererWithConfig(themes, mailer.RendererConfig{LayoutDir: "themes"})
}

// MailerTransport delivers reports through pkg/mailer.
type MailerTransport struct {
	mailer *mailer.Mailer
	note   string
}

// MailerTransportOption configures a MailerTransport.
type MailerTransportOption func(*MailerTransport)

// WithNote sets a markdown footer rendered below every report.
func WithNote(markdown string) MailerTransportOption {
	return func(t *MailerTransport) {
		t.note = markdown
	}
}

// NewMailerTransport creates a Transport backed by m. The mailer should be
// built with NewThemeRenderer, or with a renderer that knows the theme layouts.
func NewMailerTransport(m *mailer.Mailer, opts ...MailerTransportOption) *MailerTransport {
	t := &MailerTransport{mailer: m}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ReportTag is a presence-only tag set on every report email.
const ReportTag = "error_report"

// Mail implements Transport.
func (t *MailerTransport) Mail(ctx context.Context, msg Message) error {
	body := sanitizer.SanitizeReport(msg.Params.Body)

	layout := ""
	if msg.Params.Theme != "" {
		layout = msg.Params.Theme + ".html"
	}

	tags := mailer.SimpleTags(ReportTag).
		With("module", msg.Module).
		With("key", msg.Key)
	if msg.Langcode != "" {
		tags = tags.With("locale", msg.Langcode)
	}

	return t.mailer.Send(ctx, mailer.SendParams{
		To:      msg.To,
		From:    mailer.Recipient(msg.Params.FromName, msg.Params.FromMail),
		Subject: msg.Params.Subject,
		HTML:    body,
		Text:    sanitizer.StripHTML(body),
		Layout:  layout,
		Note:    t.note,
		Locale:  msg.Langcode,
		Headers: msg.Params.Headers,
		Tags:    tags,
	})
}
