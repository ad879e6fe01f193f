package lang

import (
	"context"
	"encoding/json"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects how [Value.Encode] renders a result.
type Format uint8

const (
	FormatNative Format = iota // one string per line
	FormatJSON
	FormatYAML
)

var formatNames = [...]string{
	FormatNative: "native",
	FormatJSON:   "json",
	FormatYAML:   "yaml",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}

	return "unknown"
}

// Formats returns an iterator over the names of all formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range formatNames {
			if !yield(name) {
				return
			}
		}
	}
}

// ParseFormat returns the format with the given name, ignoring case.
func ParseFormat(s string) (Format, error) {
	for i, name := range formatNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Format(i), nil
		}
	}

	return 0, ErrFormat.With(slog.String("format", s))
}

// Encode writes v to w in format f. For JSON and YAML, indent > 0 selects
// block style with that many spaces; otherwise output is compact (flow
// style for YAML). Output always ends with a newline unless v is an empty
// list in native format.
func (v Value) Encode(ctx context.Context, w io.Writer, f Format, indent int) error {
	var (
		data []byte
		err  error
	)

	switch f {
	case FormatNative:
		if v.IsList() && len(v.Items) == 0 {
			return nil
		}

		data = []byte(v.String())

	case FormatJSON:
		if indent > 0 {
			data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(v)
		}

	case FormatYAML:
		opts := []yaml.EncodeOption{yaml.Flow(true)}
		if indent > 0 {
			opts = []yaml.EncodeOption{yaml.Indent(indent)}
		}

		data, err = yaml.MarshalContext(ctx, v, opts...)

	default:
		return ErrFormat.With(slog.String("format", f.String()))
	}

	if err != nil {
		return ErrFormat.Wrap(err).With(slog.String("format", f.String()))
	}

	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	_, err = w.Write(data)

	return err
}
