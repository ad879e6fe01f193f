package cmd

import (
	"log/slog"
	"slices"
)

// Error is a command failure with structured logging support. Errors
// derived from a sentinel with [Error.Wrap] or [Error.With] match it with
// [errors.Is].
type Error struct {
	kind  *Error
	msg   string
	err   error
	attrs []slog.Attr
}

func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.kind = e

	return e
}

// Error returns "<msg>: <cause>", omitting whichever part is empty.
func (e *Error) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	default:
		return e.msg + ": " + e.err.Error()
	}
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t == e.kind
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// derive returns a copy of e that still matches e's sentinel.
func (e *Error) derive() *Error {
	return &Error{kind: e.kind, msg: e.msg, err: e.err, attrs: e.attrs}
}

// Wrap returns a copy of e with cause err.
func (e *Error) Wrap(err error) *Error {
	d := e.derive()
	d.err = err

	return d
}

// With returns a copy of e with attrs appended to its log attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	d := e.derive()
	d.attrs = append(slices.Clip(e.attrs), attrs...)

	return d
}

var (
	ErrWriteConfig = NewError("write configuration file")
	ErrFileExists  = NewError("file exists (use --force to overwrite)")
	ErrNoInput     = NewError("no expression given and stdin is a terminal")
	ErrWhere       = NewError("invalid --where predicate")
	ErrEval        = NewError("evaluation failed")
)
