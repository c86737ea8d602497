package mailer

import "context"

// Sender is implemented by email providers.
type Sender interface {
	// Send delivers a message whose To, Subject and HTML are already set.
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, email *Email) error

func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}
