package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	reportPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()

		// reportPolicy allows the markup error reports are built from
		reportPolicy = bluemonday.NewPolicy()
		reportPolicy.RequireParseableURLs(true)
		reportPolicy.AllowURLSchemes("mailto", "http", "https", "ftp")
		reportPolicy.RequireNoFollowOnLinks(true)
		reportPolicy.AllowElements(
			"p", "br", "div", "span",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre",
		)
		reportPolicy.AllowAttrs("class").
			Matching(regexp.MustCompile(`^[a-z][a-z0-9_-]*( [a-z][a-z0-9_-]*)*$`)).
			OnElements("div", "span", "em", "ul", "a")
		reportPolicy.AllowAttrs("href").OnElements("a")
	})
}

// StripHTML removes all markup and returns plain text with entities decoded.
// Use for plain text alternatives of HTML mail.
func StripHTML(s string) string {
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeReport keeps the structural markup of an error report
// (placeholders, item lists, preformatted backtraces, links) and strips
// scripts, event handlers, styles and unsafe URLs.
func SanitizeReport(s string) string {
	initPolicies()
	return reportPolicy.Sanitize(s)
}

// SanitizeHTMLCustom applies a custom bluemonday policy.
// Returns input unchanged if policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
