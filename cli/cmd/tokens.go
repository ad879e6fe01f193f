package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/ardnew/adcopy/lang"
)

// Tokens prints the token stream of an expression.
type Tokens struct {
	Expr string `arg:"" help:"Expression to tokenize"`

	std outputs
}

// Run executes the tokens command. Tokens read before a syntax error are
// printed before the error is returned.
func (t *Tokens) Run(context.Context) error {
	tokens, err := lang.Tokenize(t.Expr)

	tw := tabwriter.NewWriter(t.std.out(), 0, 4, 2, ' ', 0)

	for _, tok := range tokens {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			tok.Pos, tok.Kind, strconv.Quote(tok.Literal))
	}

	if ferr := tw.Flush(); ferr != nil {
		return errors.Join(err, ferr)
	}

	if err != nil {
		var lerr *lang.Error
		if errors.As(err, &lerr) {
			fmt.Fprint(t.std.errs(), lerr.Snippet(t.Expr))
		}
	}

	return err
}
