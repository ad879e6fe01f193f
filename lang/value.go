package lang

import (
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
)

// ValueKind distinguishes single-string results from list results.
type ValueKind uint8

const (
	ValueScalar ValueKind = iota
	ValueList
)

func (k ValueKind) String() string {
	if k == ValueList {
		return "list"
	}

	return "scalar"
}

// Value is the result of evaluating an expression: either one string
// (lower, upper) or an ordered list of strings (variants, combinations).
type Value struct {
	Kind  ValueKind
	Text  string
	Items []string
}

// Scalar returns a single-string Value.
func Scalar(s string) Value { return Value{Kind: ValueScalar, Text: s} }

// List returns a list Value holding items.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}

	return Value{Kind: ValueList, Items: items}
}

// IsList reports whether v is a list.
func (v Value) IsList() bool { return v.Kind == ValueList }

// Len returns the number of strings in v.
func (v Value) Len() int {
	if v.IsList() {
		return len(v.Items)
	}

	return 1
}

// Strings returns the strings in v. A scalar yields a single element.
func (v Value) Strings() []string {
	if v.IsList() {
		return slices.Clone(v.Items)
	}

	return []string{v.Text}
}

// String returns the text of a scalar, or the items of a list one per line.
func (v Value) String() string {
	if v.IsList() {
		return strings.Join(v.Items, "\n")
	}

	return v.Text
}

// Filter returns v with only the strings for which keep returns true. The
// kind of v is preserved, so a filtered scalar may become an empty list.
func (v Value) Filter(keep func(i int, s string) (bool, error)) (Value, error) {
	out := make([]string, 0, v.Len())

	for i, s := range v.Strings() {
		ok, err := keep(i, s)
		if err != nil {
			return Value{}, err
		}

		if ok {
			out = append(out, s)
		}
	}

	if !v.IsList() && len(out) == 1 {
		return v, nil
	}

	return List(out...), nil
}

// MarshalJSON encodes a scalar as a JSON string and a list as an array.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsList() {
		return json.Marshal(v.Strings())
	}

	return json.Marshal(v.Text)
}

// MarshalYAML encodes a scalar as a YAML string and a list as a sequence.
func (v Value) MarshalYAML() (any, error) {
	if v.IsList() {
		return v.Strings(), nil
	}

	return v.Text, nil
}

// LogValue implements [slog.LogValuer].
func (v Value) LogValue() slog.Value {
	if v.IsList() {
		return slog.GroupValue(
			slog.String("kind", v.Kind.String()),
			slog.Int("count", len(v.Items)),
		)
	}

	return slog.GroupValue(
		slog.String("kind", v.Kind.String()),
		slog.String("text", v.Text),
	)
}
