// Package cli contains the command line interface for adcopy.
//
// # Usage
//
//	adcopy [flags] [eval] [expr]
//	adcopy tokens <expr>
//	adcopy funcs
//	adcopy repl
//	adcopy init [--force]
//
// eval is the default command, so the command name may be omitted:
//
//	adcopy -V jo=JiMMY 'upper({jo})'
//	adcopy 'combinations("{} deals", fast, cheap, local)' --where 'length <= 30'
//
// # Variables
//
// Placeholders resolve against variables collected, lowest precedence first,
// from the files listed in $ADCOPY_VARS (a path list, missing entries are
// skipped), the --vars-file flags (earlier files win), and the --var flags.
// --no-strict makes undefined variables expand to the empty string.
//
// # Configuration
//
// Flag defaults are read from config.yaml (and config.json) in the user
// configuration directory, for example ~/.config/adcopy/config.yaml:
//
//	log-level: debug
//	vars-file:
//	  - ~/ads/brands.yaml
//
// "adcopy init" writes the current flag values to that file.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp layout (RFC3339, Kitchen, ... or none)
//   - --log-caller: include caller information
//   - --log-pretty: colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o adcopy .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory (default ~/.cache/adcopy/pprof)
package cli
