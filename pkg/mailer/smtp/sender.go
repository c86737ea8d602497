package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/errormail/pkg/mailer"
)

// ErrNotConfigured is returned when Send is called without a relay host.
var ErrNotConfigured = errors.New("smtp: host is not configured")

// Sender implements mailer.Sender over a plain or implicit-TLS SMTP relay.
// Emails with a Text part are sent as multipart/alternative.
type Sender struct {
	config Config
	dialer net.Dialer
}

// New creates a new SMTP sender.
func New(cfg Config) *Sender {
	return &Sender{config: cfg}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if !s.config.Configured() {
		return ErrNotConfigured
	}

	from := email.From
	if from == "" {
		from = s.config.From
	}
	envelope, err := envelopeAddress(s.config.From, from)
	if err != nil {
		return fmt.Errorf("smtp: invalid sender: %w", err)
	}

	msg := buildMessage(from, email)
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.port()))

	conn, err := s.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("smtp: failed to connect: %w", err)
	}
	defer conn.Close()

	// net/smtp has no context support; bound the exchange by the deadline.
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("smtp: failed to create client: %w", err)
	}
	defer client.Close()

	if !s.config.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(s.tlsConfig()); err != nil {
				return fmt.Errorf("smtp: STARTTLS failed: %w", err)
			}
		}
	}

	if auth := s.auth(); auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp: auth failed: %w", err)
		}
	}

	if err := client.Mail(envelope); err != nil {
		return fmt.Errorf("smtp: MAIL command failed: %w", err)
	}
	for _, to := range email.To {
		rcpt, err := envelopeAddress("", to)
		if err != nil {
			return fmt.Errorf("smtp: invalid recipient %q: %w", to, err)
		}
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp: RCPT command failed: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp: DATA command failed: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp: failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: failed to close message: %w", err)
	}

	return client.Quit()
}

func (s *Sender) dial(ctx context.Context, addr string) (net.Conn, error) {
	if s.config.UseTLS {
		d := tls.Dialer{NetDialer: &s.dialer, Config: s.tlsConfig()}
		return d.DialContext(ctx, "tcp", addr)
	}
	return s.dialer.DialContext(ctx, "tcp", addr)
}

func (s *Sender) tlsConfig() *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: s.config.SkipVerify, //nolint:gosec // opt-in for internal relays
		ServerName:         s.config.Host,
	}
}

func (s *Sender) auth() smtp.Auth {
	if s.config.Username != "" && s.config.Password != "" {
		return smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}
	return nil
}

// envelopeAddress returns the bare address of preferred, or of fallback when
// preferred is empty.
func envelopeAddress(preferred, fallback string) (string, error) {
	raw := preferred
	if raw == "" {
		raw = fallback
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return "", err
	}
	return addr.Address, nil
}

// buildMessage renders the RFC 5322 message. Custom headers are written in
// sorted order; Content-Type defaults to HTML. With a plain text part the
// body becomes multipart/alternative and the content headers move to the
// HTML part.
func buildMessage(from string, email *mailer.Email) string {
	var msg strings.Builder

	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + strings.Join(email.To, ", ") + "\r\n")
	if email.ReplyTo != "" {
		msg.WriteString("Reply-To: " + email.ReplyTo + "\r\n")
	}
	msg.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", email.Subject) + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")

	headers := make(map[string]string, len(email.Headers)+1)
	headers["Content-Type"] = "text/html; charset=UTF-8"
	for k, v := range email.Headers {
		headers[textproto.CanonicalMIMEHeaderKey(k)] = v
	}

	if email.Text == "" {
		writeHeaders(&msg, headers)
		msg.WriteString("\r\n")
		msg.WriteString(email.HTML)
		return msg.String()
	}

	htmlPart := textproto.MIMEHeader{}
	for _, k := range contentHeaders {
		if v, ok := headers[k]; ok {
			htmlPart.Set(k, v)
			delete(headers, k)
		}
	}

	var body strings.Builder
	mw := multipart.NewWriter(&body)
	headers["Content-Type"] = "multipart/alternative; boundary=" + mw.Boundary()
	writeHeaders(&msg, headers)
	msg.WriteString("\r\n")

	// strings.Builder writes never fail.
	text, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=UTF-8"},
		"Content-Transfer-Encoding": {"8bit"},
	})
	_, _ = text.Write([]byte(email.Text))
	html, _ := mw.CreatePart(htmlPart)
	_, _ = html.Write([]byte(email.HTML))
	_ = mw.Close()

	msg.WriteString(body.String())
	return msg.String()
}

// contentHeaders describe the body and belong to the HTML part of a
// multipart message.
var contentHeaders = []string{"Content-Type", "Content-Transfer-Encoding"}

func writeHeaders(msg *strings.Builder, headers map[string]string) {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		msg.WriteString(k + ": " + headers[k] + "\r\n")
	}
}
