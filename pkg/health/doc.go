// Package health provides HTTP handlers for liveness and readiness probes.
//
//	r.Get("/healthz", health.LivenessHandler())
//	r.Get("/readyz", health.ReadinessHandler(health.Checks{
//		"mail_transport": health.TransportCheck(provider),
//	}))
//
// Checks run in parallel under one timeout. Handlers answer plain text
// ("OK" / "Service Unavailable") unless the client asks for JSON with
// Accept: application/json or ?format=json.
package health
