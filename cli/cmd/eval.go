package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/adcopy/lang"
	"github.com/ardnew/adcopy/log"
)

// Eval evaluates an expression, or each line of stdin.
type Eval struct {
	Expr   string `arg:"" help:"Expression to evaluate; if omitted, one expression is read per line of stdin" optional:""`
	Format string `default:"${format}" enum:"${formatEnum}" help:"Output format (${enum})."                                         short:"o"`
	Indent int    `default:"2"                              help:"Indentation of json and yaml output; 0 is compact."`
	Where  string `help:"Keep only results for which this expr-lang predicate over text, index and length holds." placeholder:"EXPR" short:"w"`

	std outputs
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := lang.ParseFormat(e.Format)
	if err != nil {
		return err
	}

	where, err := compileWhere(e.Where)
	if err != nil {
		return err
	}

	engine := engineFrom(ctx)

	if e.Expr != "" {
		return e.eval(ctx, engine, format, where, e.Expr)
	}

	if e.std.interactive() {
		return ErrNoInput
	}

	return e.batch(ctx, engine, format, where)
}

// batch evaluates each non-blank line of stdin that does not begin with #.
// A failing line is reported and skipped.
func (e *Eval) batch(
	ctx context.Context,
	engine *lang.Engine,
	format lang.Format,
	where predicate,
) error {
	var failed, total int

	scanner := bufio.NewScanner(e.std.in())
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		total++

		if err := e.eval(ctx, engine, format, where, text); err != nil {
			failed++

			log.ErrorContext(ctx, "eval failed",
				slog.Int("line", line),
				slog.Any("error", err),
			)
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	if failed > 0 {
		return ErrEval.With(
			slog.Int("failed", failed),
			slog.Int("total", total),
		)
	}

	return nil
}

func (e *Eval) eval(
	ctx context.Context,
	engine *lang.Engine,
	format lang.Format,
	where predicate,
	text string,
) error {
	val, err := engine.Parse(ctx, text)
	if err != nil {
		var lerr *lang.Error
		if errors.As(err, &lerr) {
			if _, ok := lerr.Position(); ok {
				fmt.Fprint(e.std.errs(), lerr.Snippet(text))
			}
		}

		return err
	}

	val, err = where.filter(val)
	if err != nil {
		return err
	}

	return val.Encode(ctx, e.std.out(), format, e.Indent)
}
