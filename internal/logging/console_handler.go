package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// consoleHandler writes one line per record:
//
//	<utc time> <LEVEL> [<subcommand>] <component>: <message> key=value ...
//
// The command and component attributes become the line prefix instead of
// trailing pairs. Attributes added through WithAttrs are rendered once and
// reused for every record.
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     slog.Leveler
	addSource bool

	group     string
	command   string
	component string
	preset    []byte
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	command, component := h.command, h.component
	var pairs []byte
	record.Attrs(func(a slog.Attr) bool {
		if h.group == "" && takeLabel(a, &command, &component) {
			return true
		}
		pairs = appendAttr(pairs, h.group, a)
		return true
	})

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	buf := make([]byte, 0, 96+len(h.preset)+len(pairs))
	buf = ts.UTC().AppendFormat(buf, consoleTimeFormat)
	buf = append(buf, ' ')
	buf = append(buf, fmt.Sprintf("%-5s", levelLabel(record.Level))...)
	buf = append(buf, ' ')
	if command != "" {
		buf = append(buf, '[')
		buf = append(buf, subcommand(command)...)
		buf = append(buf, "] "...)
	}
	if component != "" {
		buf = append(buf, component...)
		buf = append(buf, ": "...)
	}
	if msg := strings.TrimSpace(record.Message); msg != "" {
		buf = append(buf, msg...)
	} else {
		buf = append(buf, "(no message)"...)
	}
	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			buf = append(buf, " ["...)
			buf = append(buf, filepath.Base(src.File)...)
			buf = append(buf, ':')
			buf = strconv.AppendInt(buf, int64(src.Line), 10)
			buf = append(buf, ']')
		}
	}
	buf = append(buf, h.preset...)
	buf = append(buf, pairs...)
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.preset = append([]byte(nil), h.preset...)
	for _, a := range attrs {
		if clone.group == "" && takeLabel(a, &clone.command, &clone.component) {
			continue
		}
		clone.preset = appendAttr(clone.preset, clone.group, a)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.group + name + "."
	return &clone
}

// takeLabel moves the command and component attributes into the prefix.
func takeLabel(a slog.Attr, command, component *string) bool {
	switch a.Key {
	case FieldCommand:
		*command = a.Value.Resolve().String()
		return true
	case FieldComponent:
		*component = a.Value.Resolve().String()
		return true
	}
	return false
}

// subcommand drops the binary name from a command path.
func subcommand(path string) string {
	if _, rest, ok := strings.Cut(path, " "); ok && rest != "" {
		return rest
	}
	return path
}

func appendAttr(buf []byte, group string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			group += a.Key + "."
		}
		for _, member := range a.Value.Group() {
			buf = appendAttr(buf, group, member)
		}
		return buf
	}
	buf = append(buf, ' ')
	buf = append(buf, group...)
	buf = append(buf, a.Key...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindString:
		return appendText(buf, v.String())
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(buf, v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().UTC().AppendFormat(buf, time.RFC3339)
	}
	if err, ok := v.Any().(error); ok {
		return appendText(buf, err.Error())
	}
	return appendText(buf, fmt.Sprint(v.Any()))
}

func appendText(buf []byte, s string) []byte {
	quote := s == "" || strings.IndexFunc(s, func(r rune) bool {
		return r <= ' ' || r == '=' || r == '"' || r == 0x7f
	}) >= 0
	if quote {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
