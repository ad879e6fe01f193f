package profile

import "slices"

// Stopper ends a profiling session, flushing its output.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Dir   string // output directory; empty uses the working directory
	Quiet bool   // suppress pkg/profile's own log lines
}

// Option configures a [Profiler].
type Option func(*Profiler)

// New returns a Profiler configured by opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// WithMode sets the profiling mode.
func WithMode(mode string) Option { return func(p *Profiler) { p.Mode = mode } }

// WithDir sets the output directory.
func WithDir(dir string) Option { return func(p *Profiler) { p.Dir = dir } }

// WithQuiet suppresses progress logging.
func WithQuiet(quiet bool) Option { return func(p *Profiler) { p.Quiet = quiet } }

// Enabled reports whether Start would begin a profiling session.
func (p Profiler) Enabled() bool {
	return p.Mode != "" && slices.Contains(Modes(), p.Mode)
}

// Start begins profiling. It returns a no-op Stopper if the mode is empty,
// unsupported, or profiling is not compiled in. Stop must be called
// exactly once.
func (p Profiler) Start() Stopper {
	if !p.Enabled() {
		return nop{}
	}

	return start(p)
}

type nop struct{}

func (nop) Stop() {}
