package errormail

import (
	"log/slog"
	"strconv"
)

// Severity is the syslog-style urgency of a log event.
// Lower values are more urgent.
type Severity uint8

const (
	SeverityEmergency Severity = iota
	SeverityAlert
	SeverityCritical
	SeverityError
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

// Extra slog levels so the full severity range is reachable through *slog.Logger.
// slog's own Debug, Info, Warn and Error levels map to the matching severities.
const (
	LevelNotice    slog.Level = 2
	LevelCritical  slog.Level = 12
	LevelAlert     slog.Level = 16
	LevelEmergency slog.Level = 20
)

var severityNames = [...]string{
	SeverityEmergency: "emergency",
	SeverityAlert:     "alert",
	SeverityCritical:  "critical",
	SeverityError:     "error",
	SeverityWarning:   "warning",
	SeverityNotice:    "notice",
	SeverityInfo:      "info",
	SeverityDebug:     "debug",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "severity(" + strconv.Itoa(int(s)) + ")"
}

// Level returns the slog level that represents the severity.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityEmergency:
		return LevelEmergency
	case SeverityAlert:
		return LevelAlert
	case SeverityCritical:
		return LevelCritical
	case SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityNotice:
		return LevelNotice
	case SeverityInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// SeverityFromLevel maps a slog level onto the severity scale.
// Levels between two named levels round down to the less urgent one.
func SeverityFromLevel(level slog.Level) Severity {
	switch {
	case level >= LevelEmergency:
		return SeverityEmergency
	case level >= LevelAlert:
		return SeverityAlert
	case level >= LevelCritical:
		return SeverityCritical
	case level >= slog.LevelError:
		return SeverityError
	case level >= slog.LevelWarn:
		return SeverityWarning
	case level >= LevelNotice:
		return SeverityNotice
	case level >= slog.LevelInfo:
		return SeverityInfo
	default:
		return SeverityDebug
	}
}

// SeverityFilter decides whether a severity is worth alerting on.
// The alertable set is fixed when the filter is built.
type SeverityFilter struct {
	alertable map[Severity]struct{}
}

// DefaultSeverityFilter alerts on emergency, alert, critical and error.
func DefaultSeverityFilter() SeverityFilter {
	return NewSeverityFilter(SeverityEmergency, SeverityAlert, SeverityCritical, SeverityError)
}

// NewSeverityFilter builds a filter over the given severities.
func NewSeverityFilter(severities ...Severity) SeverityFilter {
	set := make(map[Severity]struct{}, len(severities))
	for _, s := range severities {
		set[s] = struct{}{}
	}
	return SeverityFilter{alertable: set}
}

// ShouldAlert reports whether s is in the alertable set.
func (f SeverityFilter) ShouldAlert(s Severity) bool {
	_, ok := f.alertable[s]
	return ok
}
