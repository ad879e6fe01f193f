package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/adcopy/log"
)

// resolve is a [kong.ConfigurationLoader] that reads a YAML mapping of flag
// names to values:
//
//	log-level: debug
//	strict: false
//	var:
//	  brand: Acme
//	vars-file:
//	  - ~/ads/common.yaml
//
// Keys may use underscores in place of hyphens (log_level). Command-line
// flags override config file values. A file that fails to decode is logged
// and ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		log.Warn("ignoring invalid configuration", slog.Any("error", err))

		return config{}, nil
	}

	cfg := make(config, len(raw))
	for k, v := range raw {
		cfg[k] = normalize(v)
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

// normalize converts decoded YAML numbers to strings, which is what kong
// expects when mapping resolved values onto flags.
func normalize(v any) any {
	switch v := v.(type) {
	case int, int64, uint64, float64:
		return fmt.Sprint(v)

	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out

	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = normalize(e)
		}

		return out

	default:
		return v
	}
}
