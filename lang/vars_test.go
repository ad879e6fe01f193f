package lang

import (
	"errors"
	"maps"
	"strings"
	"testing"
)

func TestParseVars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "yaml",
			input: "vendor: Apple\nmodel: Ipad\n",
			want:  map[string]string{"vendor": "Apple", "model": "Ipad"},
		},
		{
			name:  "json",
			input: `{"jo": "JiMMY", "n": 3}`,
			want:  map[string]string{"jo": "JiMMY", "n": "3"},
		},
		{
			name:  "scalars",
			input: "ok: true\nprice: 9.99\nneg: -2\nnothing: null\n",
			want:  map[string]string{"ok": "true", "price": "9.99", "neg": "-2", "nothing": ""},
		},
		{
			name:  "empty",
			input: "",
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVars(t.Context(), strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !maps.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseVars_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"sequence value", "colors: [red, blue]\n"},
		{"mapping value", "nested:\n  a: b\n"},
		{"top-level sequence", "- a\n- b\n"},
		{"malformed", "a: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVars(t.Context(), strings.NewReader(tt.input))
			if !errors.Is(err, ErrVars) {
				t.Errorf("expected ErrVars, got %v", err)
			}
		})
	}
}

func TestMergeVars(t *testing.T) {
	got := MergeVars(
		map[string]string{"a": "1", "b": "1"},
		nil,
		map[string]string{"b": "2", "c": "2"},
	)

	want := map[string]string{"a": "1", "b": "2", "c": "2"}
	if !maps.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
