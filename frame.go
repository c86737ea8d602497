package errormail

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strconv"
)

// StackFrame is one call site captured at the time of a failure.
type StackFrame struct {
	File     string // empty when the call site has no source file
	Function string
	Args     []Arg
	Line     int
	HasLine  bool
}

// Arg is a call argument as it appears in a rendered stack trace.
// The set of implementations is closed: StringArg, CollectionArg, NullArg,
// BoolArg, ObjectArg, ResourceArg and ScalarArg.
type Arg interface {
	isArg()
}

type (
	// StringArg renders quoted.
	StringArg string

	// CollectionArg stands for any slice, array or map; renders as "Array".
	CollectionArg struct{}

	// NullArg renders as "NULL".
	NullArg struct{}

	// BoolArg renders as "true" or "false".
	BoolArg bool

	// ObjectArg renders as its classification name.
	ObjectArg struct{ Class string }

	// ResourceArg renders as its resource kind, e.g. "stream" or "chan".
	ResourceArg struct{ Kind string }

	// ScalarArg renders with its default textual form.
	ScalarArg struct{ Value any }
)

func (StringArg) isArg()     {}
func (CollectionArg) isArg() {}
func (NullArg) isArg()       {}
func (BoolArg) isArg()       {}
func (ObjectArg) isArg()     {}
func (ResourceArg) isArg()   {}
func (ScalarArg) isArg()     {}

// ArgOf classifies an arbitrary Go value.
func ArgOf(v any) Arg {
	if a, ok := v.(Arg); ok {
		return a
	}
	rv := reflect.ValueOf(v)
	if v == nil || isNil(rv) {
		return NullArg{}
	}

	switch val := v.(type) {
	case string:
		return StringArg(val)
	case bool:
		return BoolArg(val)
	case io.Closer:
		return ResourceArg{Kind: resourceKind(val)}
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return CollectionArg{}
	case reflect.Pointer, reflect.Interface, reflect.Struct:
		return ObjectArg{Class: typeName(rv.Type())}
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ResourceArg{Kind: rv.Kind().String()}
	default:
		return ScalarArg{Value: v}
	}
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

func resourceKind(c io.Closer) string {
	switch c.(type) {
	case io.ReadWriteCloser:
		return "stream"
	default:
		return typeName(reflect.TypeOf(c))
	}
}

// Args classifies every value with ArgOf.
func Args(values ...any) []Arg {
	out := make([]Arg, len(values))
	for i, v := range values {
		out[i] = ArgOf(v)
	}
	return out
}

// renderArg is exhaustive over the Arg variants; a nil Arg renders as NULL.
func renderArg(a Arg) string {
	switch v := a.(type) {
	case StringArg:
		return "'" + string(v) + "'"
	case CollectionArg:
		return "Array"
	case NullArg, nil:
		return "NULL"
	case BoolArg:
		return strconv.FormatBool(bool(v))
	case ObjectArg:
		return v.Class
	case ResourceArg:
		return v.Kind
	case ScalarArg:
		if v.Value == nil {
			return ""
		}
		return fmt.Sprint(v.Value)
	default:
		return fmt.Sprint(v)
	}
}

// CaptureFrames records the current goroutine's stack, innermost call first.
// skip=0 starts at the caller of CaptureFrames.
func CaptureFrames(skip int) []StackFrame {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]StackFrame, 0, n)
	for {
		f, more := frames.Next()
		sf := StackFrame{Function: f.Function}
		if f.File != "" {
			sf.File = f.File
			sf.Line = f.Line
			sf.HasLine = true
		}
		out = append(out, sf)
		if !more {
			break
		}
	}
	return out
}
