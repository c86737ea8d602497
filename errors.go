package errormail

import "errors"

var (
	// ErrDispatchFailed indicates the transport could not deliver a report.
	ErrDispatchFailed = errors.New("error report dispatch failed")

	// ErrTransportUnavailable indicates the transport could not be resolved.
	ErrTransportUnavailable = errors.New("mail transport unavailable")

	// ErrInvalidConfig indicates the configuration could not be loaded.
	ErrInvalidConfig = errors.New("invalid error mail config")
)
