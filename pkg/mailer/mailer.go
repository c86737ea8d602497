package mailer

import (
	"context"
	"errors"
	"html/template"
)

// Mailer wraps HTML bodies in a layout and hands them to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a Mailer. A nil renderer disables layouts.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

// SendParams describes one HTML message.
type SendParams struct {
	Headers map[string]string
	Tags    Tags
	To      string // Single recipient
	From    string // Overrides the provider's default sender
	ReplyTo string
	Subject string // Falls back to Config.FallbackSubject
	HTML    string // Trusted body, inserted into the layout as is
	Text    string
	Layout  string // Overrides Config.DefaultLayout
	Note    string // Markdown rendered below the body
	Locale  string
}

// Send renders the layout around params.HTML and sends the result.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}
	if params.HTML == "" {
		return ErrNoContent
	}

	subject := params.Subject
	if subject == "" {
		subject = m.config.FallbackSubject
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	body := params.HTML
	if m.renderer != nil && layout != "" {
		note, err := m.renderer.Markdown(params.Note)
		if err != nil {
			return errors.Join(ErrRenderFailed, err)
		}
		body, err = m.renderer.Wrap(layout, LayoutData{
			Content: template.HTML(params.HTML), //nolint:gosec // caller passes trusted HTML
			Note:    note,
			Subject: subject,
			Locale:  params.Locale,
		})
		if err != nil {
			return errors.Join(ErrRenderFailed, err)
		}
	}

	return m.SendRaw(ctx, &Email{
		To:      []string{params.To},
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Subject: subject,
		HTML:    body,
		Text:    params.Text,
		Headers: params.Headers,
		Tags:    params.Tags,
	})
}

// SendRaw sends a pre-built email without layout rendering.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipient
	}
	if email.Subject == "" {
		return ErrNoSubject
	}
	if email.HTML == "" {
		return ErrNoContent
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	return nil
}
