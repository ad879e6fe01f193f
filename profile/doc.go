// Package profile starts and stops runtime profiling using
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	adcopy --pprof-mode=cpu eval 'combinations("{}", a, b, c, d, e, f)'
//
// Without the tag, [Modes] is empty and [Profiler.Start] does nothing.
// Profiles are written to the configured directory, one file per mode
// (cpu.pprof, mem.pprof, ...), for analysis with "go tool pprof".
package profile

// Tag is the build tag that enables profiling.
const Tag = "pprof"
