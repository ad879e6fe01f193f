package cmd

import (
	"errors"
	"log/slog"
	"testing"
)

func TestError(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{name: "sentinel", err: ErrWriteConfig, want: "write configuration file"},
		{name: "wrapped", err: ErrWriteConfig.Wrap(cause), want: "write configuration file: disk full"},
		{name: "no_message", err: NewError("").Wrap(cause), want: "disk full"},
		{name: "empty", err: NewError(""), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestError_IsSentinel(t *testing.T) {
	err := ErrWhere.With(slog.String("where", "x")).Wrap(errors.New("bad"))

	if !errors.Is(err, ErrWhere) {
		t.Error("expected derived error to match its sentinel")
	}

	if errors.Is(err, ErrEval) {
		t.Error("expected derived error not to match another sentinel")
	}

	v := err.LogValue()
	if v.Kind() != slog.KindGroup || len(v.Group()) != 3 {
		t.Errorf("expected group of 3 attrs, got %v", v)
	}
}
