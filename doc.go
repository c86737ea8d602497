// Package errormail turns severe log events into HTML error reports and
// mails them to an operator.
//
// Every event passes the same pipeline: a severity filter, a recipient
// check, a suppression list of failure classifications, report composition,
// and dispatch through a mail transport. Only emergency, alert, critical and
// error events produce a report.
//
// # Quick Start
//
// Build a Service from Config and a TransportProvider, then attach it to
// slog through NewHandler:
//
//	cfg, err := errormail.LoadConfig("errormail.yaml")
//	if err != nil {
//	    return err
//	}
//
//	m := mailer.New(sender, errormail.NewThemeRenderer(), mailer.Config{})
//	svc := errormail.New(cfg, errormail.StaticTransport(errormail.NewMailerTransport(m)))
//
//	log := slog.New(errormail.NewHandler(svc))
//	log.Error("Order %order failed: @reason", "order", 42, "reason", err)
//
// In an application the handler usually sits next to the regular output
// handler; see pkg/logger.WithErrorMail.
//
// # Placeholders
//
// The event message and the report template substitute values from the
// event context:
//
//	@name  escaped text
//	%name  escaped text wrapped in <em class="placeholder">
//	:name  escaped URL; schemes other than http, https, mailto and ftp are dropped
//
// Tokens with no matching value are left as written.
//
// # Reports
//
// The default report looks like:
//
//	<em class="placeholder">main.run</em>: boom (line <em class="placeholder">42</em> of ...)
//	<pre>#0 /app/main.go(42): main.run('x')
//	</pre>
//	<div class="item-list"><ul><li>URI: ...</li><li>Referer: ...</li><li>User: Ann (ann@example.com)</li></ul></div>
//
// Request data, the current user and the locale are read from the context.
// Use WithRequest, WithCaller and WithLocale, or the middlewares package.
//
// # Suppression
//
// Failures classified as *httperr.HTTPError never alert. Classification is
// the fully-qualified type name of the error found under the "exception"
// or "error" key; add more names through Config.Suppress.
//
// # Transports
//
// The transport is resolved on every report, not when the Service is built,
// so the mail stack may itself log through the same logger. LazyTransport
// builds it once on first use. While a report is in flight its context is
// marked and any event logged with that context is dropped.
package errormail
