package cmd

import (
	"context"

	"github.com/ardnew/adcopy/cli/cmd/repl"
	"github.com/ardnew/adcopy/log"
)

// Repl starts an interactive session.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	return repl.Run(ctx, engineFrom(ctx), log.Default())
}
