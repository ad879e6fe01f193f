package cmd

import (
	"context"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/adcopy/lang"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type engineKey struct{}

// WithEngine returns a new context.Context containing the engine commands
// evaluate expressions with.
func WithEngine(ctx context.Context, e *lang.Engine) context.Context {
	return context.WithValue(ctx, engineKey{}, e)
}

// engineFrom returns the engine stored by [WithEngine], or a new engine with
// no variables if there is none.
func engineFrom(ctx context.Context) *lang.Engine {
	e, ok := ctx.Value(engineKey{}).(*lang.Engine)
	if !ok || e == nil {
		return lang.New()
	}

	return e
}

// Vars returns the kong variables referenced by command flags.
func Vars() kong.Vars {
	return kong.Vars{
		"formatEnum": strings.Join(slices.Collect(lang.Formats()), ","),
		"format":     lang.FormatNative.String(),
	}
}

// outputs lets tests redirect command I/O.
type outputs struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// interactive reports whether input is read from a terminal.
func (o outputs) interactive() bool {
	if o.stdin != nil {
		return false
	}

	info, err := os.Stdin.Stat()

	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func (o outputs) in() io.Reader {
	if o.stdin == nil {
		return os.Stdin
	}

	return o.stdin
}

func (o outputs) out() io.Writer {
	if o.stdout == nil {
		return os.Stdout
	}

	return o.stdout
}

func (o outputs) errs() io.Writer {
	if o.stderr == nil {
		return os.Stderr
	}

	return o.stderr
}
