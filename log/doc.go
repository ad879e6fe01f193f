// Package log wraps [log/slog] with the small set of conveniences adcopy
// needs: an extra trace level, named time layouts, optional caller info and
// colorized output for terminals.
//
// A [Logger] is immutable once made. Derive new loggers with [Logger.Wrap]
// (reconfigure) or [Logger.With] (attach attributes):
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger = logger.With(slog.String("expr", text))
//	logger.Debug("parse start")
//
// Every level has a context-aware variant. The context-unaware variants use
// [DefaultContextProvider].
//
// The package-level functions ([Info], [Error], ...) write through a process
// wide default logger that [Config] reconfigures.
package log
