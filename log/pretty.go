package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset   = "\033[0m"
	ansiGray    = "\033[90m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// prettyHandler renders records for a human reading a terminal: unquoted
// values, keys in gray, values colored by kind. In JSON format each record
// spans multiple lines with one attribute per line.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	prefix string // dotted group path applied to new attrs
	attrs  []slog.Attr
	multi  bool
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		multi: format == FormatJSON,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(c.attrs[:len(c.attrs):len(c.attrs)], h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.prefix == "" {
		return attrs
	}

	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var fields []slog.Attr

	if !r.Time.IsZero() {
		fields = append(fields, h.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	var recAttrs []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		recAttrs = append(recAttrs, a)

		return true
	})

	fields = append(fields, h.qualify(recAttrs)...)

	buf := new(bytes.Buffer)

	if h.multi {
		buf.WriteString("{\n")
	}

	n := 0

	for _, a := range fields {
		n = h.writeAttr(buf, "", a, n)
	}

	if h.multi {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

// writeAttr writes a (expanding groups into dotted keys) and returns the
// updated count of fields written.
func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr, n int) int {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return n
	}

	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			n = h.writeAttr(buf, p, g, n)
		}

		return n
	}

	switch {
	case n == 0:
	case h.multi:
		buf.WriteString(",\n")
	default:
		buf.WriteByte(' ')
	}

	if h.multi {
		buf.WriteString("  ")
	}

	buf.WriteString(ansiGray)
	buf.WriteString(prefix)
	buf.WriteString(a.Key)
	buf.WriteString(ansiReset)

	if h.multi {
		buf.WriteString(": ")
	} else {
		buf.WriteByte('=')
	}

	writeValue(buf, a.Value)

	return n + 1
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	color, text := ansiCyan, ""

	switch v.Kind() {
	case slog.KindString:
		text = v.String()
	case slog.KindInt64:
		color, text = ansiYellow, strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		color, text = ansiYellow, strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		color, text = ansiYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		color, text = ansiRed, "false"
		if v.Bool() {
			color, text = ansiGreen, "true"
		}
	case slog.KindDuration:
		color, text = ansiMagenta, v.Duration().String()
	case slog.KindTime:
		color, text = ansiBlue, v.Time().Format(time.RFC3339)
	default:
		if level, ok := v.Any().(slog.Level); ok {
			color, text = levelColor(level), strings.ToUpper(Level(level).String())
		} else {
			text = v.String()
		}
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(ansiReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	default:
		return ansiBlue
	}
}
