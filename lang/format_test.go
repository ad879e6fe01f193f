package lang

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestValue_Encode(t *testing.T) {
	list := List("buy phone", "buy laptop")
	scalar := Scalar("jimmy")

	tests := []struct {
		name   string
		value  Value
		format Format
		indent int
		want   string
	}{
		{"native scalar", scalar, FormatNative, 0, "jimmy\n"},
		{"native list", list, FormatNative, 0, "buy phone\nbuy laptop\n"},
		{"native empty list", List(), FormatNative, 0, ""},
		{"json scalar", scalar, FormatJSON, 0, "\"jimmy\"\n"},
		{"json list", list, FormatJSON, 0, "[\"buy phone\",\"buy laptop\"]\n"},
		{"json list indented", list, FormatJSON, 2, "[\n  \"buy phone\",\n  \"buy laptop\"\n]\n"},
		{"yaml list block", list, FormatYAML, 2, "- buy phone\n- buy laptop\n"},
		{"yaml list flow", list, FormatYAML, 0, "[buy phone, buy laptop]\n"},
		{"yaml scalar", scalar, FormatYAML, 2, "jimmy\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			if err := tt.value.Encode(t.Context(), &buf, tt.format, tt.indent); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}

	err := scalar.Encode(t.Context(), &bytes.Buffer{}, Format(42), 0)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for name := range Formats() {
		f, err := ParseFormat(strings.ToUpper(name))
		if err != nil || f.String() != name {
			t.Errorf("expected %s, got %v, %v", name, f, err)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestValue_Accessors(t *testing.T) {
	s := Scalar("x")
	if s.IsList() || s.Len() != 1 || !slices.Equal(s.Strings(), []string{"x"}) {
		t.Errorf("unexpected scalar accessors: %#v", s)
	}

	l := List("a", "b")
	if !l.IsList() || l.Len() != 2 || l.String() != "a\nb" {
		t.Errorf("unexpected list accessors: %#v", l)
	}

	items := l.Strings()
	items[0] = "mutated"

	if l.Items[0] != "a" {
		t.Error("expected Strings to return a copy")
	}

	if got := List(); got.Items == nil || got.Len() != 0 {
		t.Errorf("expected empty non-nil list, got %#v", got)
	}
}

func TestValue_Filter(t *testing.T) {
	short := func(_ int, s string) (bool, error) { return len(s) <= 3, nil }

	got, err := List("abc", "abcd", "ab").Filter(short)
	if err != nil || !slices.Equal(got.Items, []string{"abc", "ab"}) {
		t.Errorf("expected [abc ab], got %v, %v", got.Items, err)
	}

	kept, _ := Scalar("ab").Filter(short)
	if kept.IsList() || kept.Text != "ab" {
		t.Errorf("expected scalar kept, got %#v", kept)
	}

	dropped, _ := Scalar("abcd").Filter(short)
	if !dropped.IsList() || dropped.Len() != 0 {
		t.Errorf("expected empty list, got %#v", dropped)
	}

	boom := errors.New("boom")

	_, err = List("a").Filter(func(int, string) (bool, error) { return false, boom })
	if !errors.Is(err, boom) {
		t.Errorf("expected predicate error, got %v", err)
	}
}
