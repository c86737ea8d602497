package errormail

import (
	"fmt"
	"html"
	"net/url"
	"reflect"
	"strings"
)

// Placeholder sigils. The sigil decides how the value is escaped:
//
//	@name  HTML-escaped text
//	%name  HTML-escaped text wrapped in <em class="placeholder">
//	:name  HTML-escaped URL, unsafe schemes dropped
const (
	sigilEscaped     = '@'
	sigilPlaceholder = '%'
	sigilURL         = ':'
)

var allowedURLSchemes = map[string]struct{}{
	"http":   {},
	"https":  {},
	"mailto": {},
	"ftp":    {},
}

// RenderMessage substitutes sigil placeholders in template with values from args.
// Tokens whose name is not in args are left as they are.
func RenderMessage(template string, args map[string]any) string {
	return substitute(template, args, true)
}

// Interpolate substitutes placeholders without escaping, for plain-text output.
func Interpolate(template string, args map[string]any) string {
	return substitute(template, args, false)
}

func substitute(template string, args map[string]any, escape bool) string {
	if len(args) == 0 || template == "" {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		c := template[i]
		if c != sigilEscaped && c != sigilPlaceholder && c != sigilURL {
			b.WriteByte(c)
			i++
			continue
		}

		end := i + 1
		for end < len(template) && isIdentByte(template[end], end == i+1) {
			end++
		}
		name := template[i+1 : end]
		val, ok := args[name]
		if name == "" || !ok {
			b.WriteByte(c)
			i++
			continue
		}

		text := stringify(val)
		switch {
		case !escape:
			b.WriteString(text)
		case c == sigilPlaceholder:
			b.WriteString(`<em class="placeholder">`)
			b.WriteString(html.EscapeString(text))
			b.WriteString(`</em>`)
		case c == sigilURL:
			b.WriteString(html.EscapeString(safeURL(text)))
		default:
			b.WriteString(html.EscapeString(text))
		}
		i = end
	}

	return b.String()
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	default:
		return false
	}
}

// stringify never panics: typed nil pointers render empty like untyped nil,
// and fmt recovers panics raised by String and Error methods.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}
	return fmt.Sprint(v)
}

// safeURL drops URLs with a scheme outside the allow list.
// Relative references pass through.
func safeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	if u.Scheme == "" {
		return raw
	}
	if _, ok := allowedURLSchemes[strings.ToLower(u.Scheme)]; !ok {
		return ""
	}
	return raw
}
