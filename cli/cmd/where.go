package cmd

import (
	"log/slog"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/adcopy/lang"
)

// whereEnv is the environment a --where predicate is evaluated in.
func whereEnv(index int, text string) map[string]any {
	return map[string]any{
		"text":   text,
		"index":  index,
		"length": utf8.RuneCountInString(text),
	}
}

// predicate is a compiled --where expression. The zero value keeps every
// result.
type predicate struct {
	source  string
	program *vm.Program
}

// compileWhere compiles a boolean predicate over the variables of
// [whereEnv].
func compileWhere(source string) (predicate, error) {
	if source == "" {
		return predicate{}, nil
	}

	program, err := expr.Compile(source, expr.Env(whereEnv(0, "")), expr.AsBool())
	if err != nil {
		return predicate{}, ErrWhere.Wrap(err).With(slog.String("where", source))
	}

	return predicate{source: source, program: program}, nil
}

// filter returns the results of val for which the predicate holds.
func (p predicate) filter(val lang.Value) (lang.Value, error) {
	if p.program == nil {
		return val, nil
	}

	return val.Filter(func(i int, s string) (bool, error) {
		out, err := expr.Run(p.program, whereEnv(i, s))
		if err != nil {
			return false, ErrWhere.Wrap(err).With(
				slog.String("where", p.source),
				slog.String("text", s),
			)
		}

		keep, _ := out.(bool)

		return keep, nil
	})
}
