package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func convert(t *testing.T, src string) string {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(NewRunbookExtension()))

	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(src), &buf))
	return buf.String()
}

func TestRunbookExtension_RendersLink(t *testing.T) {
	t.Parallel()

	out := convert(t, `[!runbook|Database outage](https://wiki.example.com/db)`)

	require.Contains(t, out, `<a href="https://wiki.example.com/db" class="runbook">Database outage</a>`)
}

func TestRunbookExtension_EscapesLabel(t *testing.T) {
	t.Parallel()

	out := convert(t, `[!runbook|<b>ops</b>](https://wiki.example.com)`)

	require.NotContains(t, out, "<b>ops</b>")
	require.Contains(t, out, "&lt;b&gt;ops&lt;/b&gt;")
}

func TestRunbookExtension_RejectsNonWebLinks(t *testing.T) {
	t.Parallel()

	out := convert(t, `[!runbook|Click](javascript:alert(1))`)

	require.NotContains(t, out, `class="runbook"`)
	require.NotContains(t, out, `href="javascript`)
}

func TestRunbookExtension_InsideParagraph(t *testing.T) {
	t.Parallel()

	out := convert(t, "Paged by the error mail.\n\nSee [!runbook|the runbook](https://wiki.example.com/errors) first.")

	require.Contains(t, out, "<p>Paged by the error mail.</p>")
	require.Contains(t, out, `See <a href="https://wiki.example.com/errors" class="runbook">the runbook</a> first.`)
}

func TestRunbookExtension_RegularLinksUntouched(t *testing.T) {
	t.Parallel()

	out := convert(t, `[docs](https://example.com/docs)`)

	require.Contains(t, out, `<a href="https://example.com/docs">docs</a>`)
	require.NotContains(t, out, `class="runbook"`)
}

func TestRunbookExtension_MissingURL(t *testing.T) {
	t.Parallel()

	out := convert(t, `[!runbook|No link]`)

	require.NotContains(t, out, `class="runbook"`)
	require.Contains(t, out, "[!runbook|No link]")
}
