// Package mailer sends HTML email through pluggable providers.
//
// The package separates delivery (Sender) from presentation (Renderer).
// Bodies arrive as finished HTML; the renderer only wraps them in a layout
// and renders an optional markdown note below them.
//
// # Architecture
//
//   - Sender: interface that email providers implement (see the resend and smtp subpackages)
//   - Renderer: wraps HTML bodies in layouts read from an fs.FS
//   - Mailer: combines Sender and Renderer
//
// # Usage
//
//	sender := resend.New(resend.Config{
//		APIKey:      os.Getenv("RESEND_API_KEY"),
//		SenderEmail: "alerts@example.com",
//	})
//
//	m := mailer.New(sender, mailer.NewRenderer(themes.FS), mailer.Config{
//		FallbackSubject: "Notification",
//		DefaultLayout:   "error_mail.html",
//	})
//
//	err := m.Send(ctx, mailer.SendParams{
//		To:      "ops@example.com",
//		Subject: "Error Report",
//		HTML:    body,
//		Note:    "Escalate via [!runbook|the runbook](https://wiki.example.com/oncall)",
//	})
//
// # Layouts
//
// Layouts are html/template files that receive LayoutData. Content and Note
// are inserted unescaped; Subject and Locale are escaped as usual.
//
//	<html lang="{{.Locale}}">
//	<body>{{.Content}}{{.Note}}</body>
//	</html>
//
// # Runbook links
//
// Notes support a markdown extension that renders a styled link:
//
//	[!runbook|Open runbook](https://wiki.example.com/oncall)
//
// Only http and https destinations are rendered as links.
//
// # Errors
//
//   - ErrNoRecipient: no recipient specified
//   - ErrNoSubject: no subject provided
//   - ErrNoContent: no HTML content provided
//   - ErrLayoutNotFound: layout file not found
//   - ErrRenderFailed: layout or markdown rendering failed
//   - ErrSendFailed: provider rejected the message
package mailer
