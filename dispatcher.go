package errormail

import (
	"context"
	"errors"
	"maps"
	"strconv"
	"time"
)

// Fixed values of every error report.
const (
	ModuleName      = "error_mail"
	FromName        = "Error Notification Center"
	DefaultSubject  = "Error Report"
	DefaultTheme    = "error_mail"
	HTMLContentType = "text/html; charset=UTF-8; format=flowed; delsp=yes"
)

// Params is the payload handed to the mail transport.
type Params struct {
	Headers  map[string]string
	FromName string
	FromMail string
	Subject  string
	Body     string
	Theme    string
}

// Message is one delivery request.
// Key is unique per call so the transport never folds two incidents together.
type Message struct {
	Module   string
	Key      string
	To       string
	Langcode string
	Params   Params
}

// Transport delivers a composed report.
type Transport interface {
	Mail(ctx context.Context, msg Message) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, msg Message) error

func (f TransportFunc) Mail(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// TransportProvider resolves the transport when a report is sent.
// Resolution is deferred so the mail stack may itself depend on the logger.
type TransportProvider func() (Transport, error)

// StaticTransport wraps an already built transport.
func StaticTransport(t Transport) TransportProvider {
	return func() (Transport, error) { return t, nil }
}

// DefaultHeaders returns the headers of an HTML report.
func DefaultHeaders() map[string]string {
	return map[string]string{"Content-Type": HTMLContentType}
}

// Dispatcher hands reports to the transport. It does not retry.
type Dispatcher struct {
	provider TransportProvider
	locale   func(ctx context.Context) string
	now      func() time.Time
	from     string
}

// NewDispatcher creates a dispatcher that sends on behalf of from.
func NewDispatcher(provider TransportProvider, from string) *Dispatcher {
	return &Dispatcher{
		provider: provider,
		from:     from,
		now:      time.Now,
		locale:   func(context.Context) string { return "" },
	}
}

// Send resolves the transport and delivers one report.
// A nil headers map selects DefaultHeaders.
func (d *Dispatcher) Send(ctx context.Context, recipient, subject, body string, headers map[string]string) error {
	if d.provider == nil {
		return errors.Join(ErrDispatchFailed, ErrTransportUnavailable)
	}
	transport, err := d.provider()
	if err != nil {
		return errors.Join(ErrDispatchFailed, ErrTransportUnavailable, err)
	}
	if transport == nil {
		return errors.Join(ErrDispatchFailed, ErrTransportUnavailable)
	}

	if headers == nil {
		headers = DefaultHeaders()
	} else {
		headers = maps.Clone(headers)
	}

	msg := Message{
		Module:   ModuleName,
		Key:      ModuleName + "_" + strconv.FormatInt(d.now().Unix(), 10),
		To:       recipient,
		Langcode: d.locale(ctx),
		Params: Params{
			FromName: FromName,
			FromMail: d.from,
			Subject:  subject,
			Body:     body,
			Theme:    DefaultTheme,
			Headers:  headers,
		},
	}

	if err := transport.Mail(markDispatching(ctx), msg); err != nil {
		return errors.Join(ErrDispatchFailed, err)
	}
	return nil
}
