package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Sentinel errors. Errors returned from this package are derived from one
// of these and match it with [errors.Is].
var (
	ErrSyntax          = NewError("syntax error")
	ErrInvalidFunc     = NewError("invalid function")
	ErrInvalidUsage    = NewError("invalid usage")
	ErrUnknownVariable = NewError("unknown variable")
	ErrVars            = NewError("invalid vars")
	ErrFormat          = NewError("invalid format")
)

// Causes wrapped by the sentinel errors above.
var (
	errIllegalChar  = NewError("illegal character")
	errUnterminated = NewError("unterminated string")
	errInvalidUTF8  = NewError("invalid UTF-8 encoding")
	errUnexpected   = NewError("unexpected token")
	errArity        = NewError("wrong number of arguments")
	errTemplate     = NewError("template must contain {} exactly once")
	errNotScalar    = NewError("value is not a scalar")
)

// Error is an error carrying structured attributes. It implements
// [slog.LogValuer] so that logging an *Error records its attributes.
type Error struct {
	kind  *Error // sentinel this error derives from
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns a new sentinel Error with the given message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// WrapError returns err if it is already an *Error, or a new *Error
// wrapping it.
func WrapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	e = &Error{err: err}
	e.kind = e

	return e
}

// Error renders "msg: cause (key=value ...)", omitting empty parts.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.msg)

	if e.err != nil {
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(e.err.Error())
	}

	if len(e.attrs) > 0 {
		sb.WriteString(" (")

		for i, a := range e.attrs {
			if i > 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(a.Key)
			sb.WriteByte('=')
			sb.WriteString(formatAttrValue(a.Value))
		}

		sb.WriteByte(')')
	}

	return sb.String()
}

func formatAttrValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " ()\"=") {
			return strconv.Quote(s)
		}

		return s

	case slog.KindAny:
		if ss, ok := v.Any().([]string); ok {
			q := make([]string, len(ss))
			for i, s := range ss {
				q[i] = strconv.Quote(s)
			}

			return "[" + strings.Join(q, ", ") + "]"
		}
	}

	return v.String()
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e derives from, or another error
// derived from the same sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.kind != nil && t.kind == e.kind
}

// LogValue implements [slog.LogValuer].
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap returns a copy of e with err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{kind: e.kind, msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   e.err,
		attrs: append(e.attrs[:len(e.attrs):len(e.attrs)], attrs...),
	}
}

// At returns a copy of e annotated with a source position.
func (e *Error) At(pos Position) *Error {
	return e.With(
		slog.Int("offset", pos.Offset),
		slog.Int("line", pos.Line),
		slog.Int("column", pos.Column),
	)
}

// Lookup returns the value of the last attribute named key, searching e and
// then each wrapped *Error in turn.
func (e *Error) Lookup(key string) (slog.Value, bool) {
	for err := error(e); err != nil; err = errors.Unwrap(err) {
		ee, ok := err.(*Error)
		if !ok {
			continue
		}

		for i := len(ee.attrs) - 1; i >= 0; i-- {
			if ee.attrs[i].Key == key {
				return ee.attrs[i].Value, true
			}
		}
	}

	return slog.Value{}, false
}

// Position returns the source position recorded by [Error.At].
func (e *Error) Position() (Position, bool) {
	line, ok := e.Lookup("line")
	if !ok {
		return Position{}, false
	}

	col, _ := e.Lookup("column")
	off, _ := e.Lookup("offset")

	return Position{
		Offset: int(off.Int64()),
		Line:   int(line.Int64()),
		Column: int(col.Int64()),
	}, true
}

// Snippet renders the line of source containing the error position with a
// caret beneath the offending column:
//
//	  1 | lower({jo
//	          ^
//
// It returns "" if e has no position or the position is outside source.
func (e *Error) Snippet(source string) string {
	pos, ok := e.Position()
	if !ok {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}

	num := strconv.Itoa(pos.Line)

	var sb strings.Builder

	sb.WriteString("  ")
	sb.WriteString(num)
	sb.WriteString(" | ")
	sb.WriteString(lines[pos.Line-1])
	sb.WriteByte('\n')
	// "  " + num + " | "
	sb.WriteString(strings.Repeat(" ", len(num)+5+max(pos.Column-1, 0)))
	sb.WriteString("^\n")

	return sb.String()
}
