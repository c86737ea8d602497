package mailer

import (
	"fmt"
	"maps"
)

// Tags are provider-specific labels. Presence-only tags hold struct{}{}.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// With returns a copy of t with key set to value.
func (t Tags) With(key string, value any) Tags {
	out := make(Tags, len(t)+1)
	maps.Copy(out, t)
	out[key] = value
	return out
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully-prepared message ready for a Sender.
type Email struct {
	Headers map[string]string // Custom headers, e.g. Content-Type
	Tags    Tags
	Subject string
	HTML    string
	Text    string   // Plain text alternative
	From    string   // Overrides the provider's default sender
	ReplyTo string
	To      []string // At least one required
}
