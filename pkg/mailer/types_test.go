package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleTags_CreatesPresenceOnlyTags(t *testing.T) {
	t.Parallel()

	tags := SimpleTags("alert", "error_mail")

	require.Len(t, tags, 2)
	require.Equal(t, struct{}{}, tags["alert"])
	require.Equal(t, struct{}{}, tags["error_mail"])
}

func TestSimpleTags_EmptyList(t *testing.T) {
	t.Parallel()

	tags := SimpleTags()

	require.NotNil(t, tags)
	require.Empty(t, tags)
}

func TestTags_With(t *testing.T) {
	t.Parallel()

	base := SimpleTags("alert")
	next := base.With("locale", "de")

	require.Equal(t, "de", next["locale"])
	require.Contains(t, next, "alert")
	require.NotContains(t, base, "locale", "original tags are not modified")
}

func TestTags_With_NilReceiver(t *testing.T) {
	t.Parallel()

	var tags Tags
	next := tags.With("module", "error_mail")

	require.Equal(t, Tags{"module": "error_mail"}, next)
}

func TestRecipient_WithName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Error Notification Center <alerts@example.com>",
		Recipient("Error Notification Center", "alerts@example.com"))
}

func TestRecipient_WithoutName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "alerts@example.com", Recipient("", "alerts@example.com"))
}
