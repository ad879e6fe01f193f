package lang

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/ardnew/adcopy/log"
)

// DefaultRaiseOnMiss is the default policy for placeholders naming a
// variable that is not defined.
const DefaultRaiseOnMiss = true

// Engine evaluates expressions against a set of variables. The zero value
// is not usable; create engines with [New].
//
// Each call to [Engine.Parse] is independent: a failed parse leaves nothing
// behind that could affect the next one. Variables may be replaced between
// (or during) parses; a parse uses the variables set when it started.
type Engine struct {
	mu          sync.RWMutex
	vars        map[string]string // replaced, never mutated
	raiseOnMiss bool
	logger      log.Logger
}

// Option configures an [Engine].
type Option func(*Engine)

// New returns an Engine with no variables that fails on unknown variables,
// configured by opts.
func New(opts ...Option) *Engine {
	e := &Engine{
		vars:        map[string]string{},
		raiseOnMiss: DefaultRaiseOnMiss,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e
}

// WithVars sets the variables placeholders resolve against. The map is
// copied.
func WithVars(vars map[string]string) Option {
	return func(e *Engine) { e.vars = cloneVars(vars) }
}

// WithRaiseOnMiss sets whether a placeholder naming an undefined variable
// is an error (true) or resolves to the empty string (false).
func WithRaiseOnMiss(raise bool) Option {
	return func(e *Engine) { e.raiseOnMiss = raise }
}

// WithLogger sets the logger used for trace and debug output.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func cloneVars(vars map[string]string) map[string]string {
	if vars == nil {
		return map[string]string{}
	}

	return maps.Clone(vars)
}

// Vars returns a copy of the current variables.
func (e *Engine) Vars() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return maps.Clone(e.vars)
}

// SetVars replaces all variables with a copy of vars.
func (e *Engine) SetVars(vars map[string]string) {
	vars = cloneVars(vars)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.vars = vars
}

// SetVar defines or redefines one variable.
func (e *Engine) SetVar(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vars := maps.Clone(e.vars)
	vars[name] = value
	e.vars = vars
}

// UnsetVar removes one variable and reports whether it was defined.
func (e *Engine) UnsetVar(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.vars[name]; !ok {
		return false
	}

	vars := maps.Clone(e.vars)
	delete(vars, name)
	e.vars = vars

	return true
}

// RaiseOnMiss reports whether undefined variables are errors.
func (e *Engine) RaiseOnMiss() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.raiseOnMiss
}

// SetRaiseOnMiss changes the undefined-variable policy.
func (e *Engine) SetRaiseOnMiss(raise bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.raiseOnMiss = raise
}

// Parse evaluates text and returns its result.
//
// Errors match one of [ErrSyntax], [ErrInvalidFunc], [ErrInvalidUsage] or
// [ErrUnknownVariable]. No partial result is returned with an error.
func (e *Engine) Parse(ctx context.Context, text string) (Value, error) {
	e.mu.RLock()
	res := resolver{vars: e.vars, raiseOnMiss: e.raiseOnMiss, logger: e.logger}
	e.mu.RUnlock()

	res.logger.TraceContext(ctx, "parse start", slog.String("expr", text))

	p := parser{ctx: ctx, lex: newLexer(text), res: res}

	val, err := p.parseCommand()
	if err != nil {
		res.logger.DebugContext(ctx, "parse failed",
			slog.String("expr", text),
			slog.Any("error", err))

		return Value{}, err
	}

	res.logger.TraceContext(ctx, "parse complete",
		slog.String("expr", text),
		slog.Any("result", val))

	return val, nil
}
