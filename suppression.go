package errormail

import (
	"reflect"
	"strings"
)

// ClassHTTPError is the classification of *httperr.HTTPError.
// Request-level failures are answered to the client and never page anyone.
const ClassHTTPError = "*github.com/dmitrymomot/errormail/pkg/httperr.HTTPError"

// SuppressionList is a closed set of failure classifications that never alert.
type SuppressionList struct {
	names map[string]struct{}
}

// DefaultSuppressionList exempts HTTP errors.
func DefaultSuppressionList() SuppressionList {
	return NewSuppressionList(ClassHTTPError)
}

// NewSuppressionList builds a list from exact classification names.
// Empty names are skipped so they can never match.
func NewSuppressionList(names ...string) SuppressionList {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return SuppressionList{names: set}
}

// IsSuppressed reports whether name exactly matches a listed classification.
func (l SuppressionList) IsSuppressed(name string) bool {
	if name == "" {
		return false
	}
	_, ok := l.names[name]
	return ok
}

// Names returns the listed classifications in no particular order.
func (l SuppressionList) Names() []string {
	out := make([]string, 0, len(l.names))
	for n := range l.names {
		out = append(out, n)
	}
	return out
}

// Classify returns the fully-qualified type name of err, e.g.
// "*github.com/dmitrymomot/errormail/pkg/httperr.HTTPError".
// Returns "" for a nil error.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	return typeName(reflect.TypeOf(err))
}

func typeName(t reflect.Type) string {
	var prefix strings.Builder
	for t.Kind() == reflect.Pointer {
		prefix.WriteByte('*')
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return prefix.String() + t.String()
	}
	return prefix.String() + t.PkgPath() + "." + t.Name()
}
