package middlewares

import (
	"net/http"

	"golang.org/x/text/language"
)

// LocaleCookie is the cookie holding an explicit language choice.
const LocaleCookie = "lang"

// localeMatcher picks one of the configured locales for a request.
type localeMatcher struct {
	matcher   language.Matcher
	available []string
}

// newLocaleMatcher builds a matcher over available; the first entry is the
// fallback. Returns nil when available is empty.
func newLocaleMatcher(available []string) *localeMatcher {
	if len(available) == 0 {
		return nil
	}
	tags := make([]language.Tag, len(available))
	for i, code := range available {
		tags[i] = language.Make(code)
	}
	return &localeMatcher{
		matcher:   language.NewMatcher(tags),
		available: available,
	}
}

// match checks the lang cookie first, then Accept-Language.
func (m *localeMatcher) match(r *http.Request) string {
	var prefs []string
	if c, err := r.Cookie(LocaleCookie); err == nil && c.Value != "" {
		prefs = append(prefs, c.Value)
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		prefs = append(prefs, header)
	}
	if len(prefs) == 0 {
		return m.available[0]
	}

	_, index := language.MatchStrings(m.matcher, prefs...)
	return m.available[index]
}
