package lang

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/ardnew/adcopy/log"
)

// placeholderPattern matches the placeholders recognized inside string
// literals. Unlike standalone {name} arguments, the name is letters only.
var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z]+\}`)

// resolver looks up variable names for a single parse.
type resolver struct {
	vars        map[string]string
	raiseOnMiss bool
	logger      log.Logger
}

func (r resolver) resolve(ctx context.Context, name string) (string, error) {
	if v, ok := r.vars[name]; ok {
		return v, nil
	}

	if r.raiseOnMiss {
		return "", ErrUnknownVariable.With(slog.String("name", name))
	}

	r.logger.DebugContext(ctx, "unknown variable resolved empty",
		slog.String("name", name))

	return "", nil
}

// interpolate replaces each placeholder in text. The first resolution error
// is returned and the text is discarded.
func (r resolver) interpolate(ctx context.Context, text string) (string, error) {
	var err error

	out := placeholderPattern.ReplaceAllStringFunc(text, func(m string) string {
		if err != nil {
			return m
		}

		v, rerr := r.resolve(ctx, m[1:len(m)-1])
		if rerr != nil {
			err = rerr

			return m
		}

		return v
	})
	if err != nil {
		return "", err
	}

	return out, nil
}

// Placeholders returns the distinct names referenced by placeholders in a
// string literal, in order of first appearance.
func Placeholders(text string) []string {
	var (
		seen  = map[string]bool{}
		names []string
	)

	for _, m := range placeholderPattern.FindAllString(text, -1) {
		name := m[1 : len(m)-1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}
