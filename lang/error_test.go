package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestError_Is(t *testing.T) {
	derived := ErrUnknownVariable.With(slog.String("name", "x"))

	if !errors.Is(derived, ErrUnknownVariable) {
		t.Error("expected derived error to match its sentinel")
	}

	if errors.Is(derived, ErrSyntax) {
		t.Error("expected derived error not to match another sentinel")
	}

	wrapped := ErrInvalidUsage.Wrap(errArity.With(slog.Int("got", 3)))
	if !errors.Is(wrapped, ErrInvalidUsage) || !errors.Is(wrapped, errArity) {
		t.Errorf("expected match on both outer and cause, got %v", wrapped)
	}

	plain := WrapError(io.EOF)
	if !errors.Is(plain, io.EOF) {
		t.Error("expected wrapped plain error to match it")
	}

	if WrapError(derived) != derived {
		t.Error("expected WrapError to return an *Error unchanged")
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"sentinel", ErrSyntax, "syntax error"},
		{"cause", ErrVars.Wrap(io.EOF), "invalid vars: EOF"},
		{"attrs", ErrUnknownVariable.With(slog.String("name", "bingo")), "unknown variable (name=bingo)"},
		{
			"quoted attrs",
			ErrInvalidUsage.With(slog.String("func", "lower"), slog.Any("args", []string{"a b", "c"})),
			`invalid usage (func=lower args=["a b", "c"])`,
		},
		{"empty string attr", ErrSyntax.With(slog.String("char", "")), `syntax error (char="")`},
		{"cause only", WrapError(io.EOF), "EOF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestError_WithDoesNotShareAttrs(t *testing.T) {
	base := ErrSyntax.With(slog.Int("a", 1))
	x := base.With(slog.Int("b", 2))
	y := base.With(slog.Int("c", 3))

	if _, ok := x.Lookup("c"); ok {
		t.Error("expected sibling attrs to be independent")
	}

	if v, _ := y.Lookup("a"); v.Int64() != 1 {
		t.Errorf("expected inherited a=1, got %v", v)
	}

	if len(ErrSyntax.attrs) != 0 {
		t.Errorf("expected sentinel unchanged, got %v", ErrSyntax.attrs)
	}
}

func TestError_LogValue(t *testing.T) {
	v := ErrVars.Wrap(io.EOF).With(slog.String("key", "k")).LogValue()

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{"error": "invalid vars", "cause": "EOF", "key": "k"}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("expected %s=%q, got %q", k, w, got[k])
		}
	}
}

func TestError_Snippet(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		source string
		want   string
	}{
		{
			"first column",
			ErrSyntax.At(Position{Offset: 0, Line: 1, Column: 1}),
			"@x",
			"  1 | @x\n      ^\n",
		},
		{
			"second line",
			ErrSyntax.At(Position{Offset: 9, Line: 2, Column: 3}),
			"lower(\n  @)",
			"  2 |   @)\n        ^\n",
		},
		{"no position", ErrSyntax, "x", ""},
		{"line out of range", ErrSyntax.At(Position{Line: 4, Column: 1}), "x", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Snippet(tt.source); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
