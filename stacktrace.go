package errormail

import (
	"strconv"
	"strings"
)

const internalFunction = "[internal function]"

// FormatStackTrace renders frames one per line, in input order:
//
//	#0 /app/main.go(42): main.run('x', NULL, true)
//
// Missing files print as "[internal function]" and missing lines as "".
// An empty slice yields "".
func FormatStackTrace(frames []StackFrame) string {
	var b strings.Builder
	for i, f := range frames {
		file := f.File
		if file == "" {
			file = internalFunction
		}

		b.WriteByte('#')
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(' ')
		b.WriteString(file)
		b.WriteByte('(')
		if f.HasLine {
			b.WriteString(strconv.Itoa(f.Line))
		}
		b.WriteString("): ")
		b.WriteString(f.Function)
		b.WriteByte('(')
		for j, a := range f.Args {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(renderArg(a))
		}
		b.WriteString(")\n")
	}
	return b.String()
}
