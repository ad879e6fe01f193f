package lang

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"strconv"

	"github.com/goccy/go-yaml"
)

// ParseVars decodes a YAML mapping of variable names to scalar values.
// Since JSON is a subset of YAML, JSON objects are accepted too. Numbers and
// booleans are converted to their canonical text and null becomes "".
func ParseVars(ctx context.Context, r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrVars.Wrap(err)
	}

	var raw map[string]any
	if err := yaml.UnmarshalContext(ctx, data, &raw); err != nil {
		return nil, ErrVars.Wrap(err)
	}

	vars := make(map[string]string, len(raw))

	for k, v := range raw {
		s, ok := scalarText(v)
		if !ok {
			return nil, ErrVars.Wrap(errNotScalar).With(slog.String("key", k))
		}

		vars[k] = s
	}

	return vars, nil
}

func scalarText(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	default:
		return "", false
	}
}

// MergeVars returns the union of sets, with later sets taking precedence.
func MergeVars(sets ...map[string]string) map[string]string {
	out := map[string]string{}

	for _, s := range sets {
		maps.Copy(out, s)
	}

	return out
}
