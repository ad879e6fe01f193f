package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/ardnew/adcopy/lang"
)

// Funcs lists the built-in functions.
type Funcs struct {
	Names bool `help:"Print only function names." short:"n"`

	std outputs
}

// Run executes the funcs command.
func (f *Funcs) Run(context.Context) error {
	if f.Names {
		for b := range lang.Builtins() {
			fmt.Fprintln(f.std.out(), b.Name())
		}

		return nil
	}

	tw := tabwriter.NewWriter(f.std.out(), 0, 4, 2, ' ', 0)

	for b := range lang.Builtins() {
		fmt.Fprintf(tw, "%s\t%s\n", b.Signature(), b.Doc())
	}

	return tw.Flush()
}
