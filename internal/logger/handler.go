package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeHTTP   LogType = "HTTP"
	TypeDB     LogType = "DB"
	TypeSystem LogType = "SYS"
	TypeError  LogType = "ERR"
)

// CustomHandler prints one colored line per record:
// [SellFast] [15:04:05] [INFO] [HTTP] message key=value
type CustomHandler struct {
	opts   *slog.HandlerOptions
	prefix string
	color  bool

	mu  *sync.Mutex
	out io.Writer

	attrs  []slog.Attr
	groups []string
}

type Options struct {
	Level  slog.Leveler
	Prefix string
	Output io.Writer
	// NoColor disables ANSI escapes, for files and tests.
	NoColor bool
}

func NewHandler(o Options) *CustomHandler {
	if o.Level == nil {
		o.Level = slog.LevelInfo
	}
	if o.Prefix == "" {
		o.Prefix = "SellFast"
	}
	if o.Output == nil {
		o.Output = os.Stdout
	}
	return &CustomHandler{
		opts:   &slog.HandlerOptions{Level: o.Level},
		prefix: o.Prefix,
		color:  !o.NoColor,
		mu:     &sync.Mutex{},
		out:    o.Output,
		attrs:  make([]slog.Attr, 0),
		groups: make([]string, 0),
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append(make([]slog.Attr, 0, len(h.attrs)+len(attrs)), h.attrs...), attrs...)
	return &next
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append(make([]string, 0, len(h.groups)+1), h.groups...), name)
	return &next
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	if shouldSkipLog(&r) {
		return nil
	}

	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	all := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	all = append(all, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		all = append(all, a)
		return true
	})

	message := r.Message
	if r.Level >= slog.LevelError {
		if location := errorLocation(all); location != "" {
			message = fmt.Sprintf("%s (%s)", message, location)
		}
		if details := attrString(all, "error"); details != "" {
			message = fmt.Sprintf("%s: %s", message, details)
		}
	}
	if status := attrString(all, "status"); status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}

	var b strings.Builder
	for _, attr := range all {
		if isInternalAttr(attr.Key) {
			continue
		}
		key := attr.Key
		if len(h.groups) > 0 {
			key = strings.Join(h.groups, ".") + "." + key
		}
		fmt.Fprintf(&b, " %s=%v", key, attr.Value)
	}

	reset, white := colorReset, colorWhite
	if !h.color {
		reset, white, levelColor = "", "", ""
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s[%s] [%s] [%s%s%s] [%s] %s%s%s\n",
		white,
		h.prefix,
		r.Time.Format("15:04:05"),
		levelColor,
		levelText,
		white,
		logType(all),
		message,
		b.String(),
		reset,
	)
	return err
}

func shouldSkipLog(r *slog.Record) bool {
	// health probes hit every few seconds
	skipped := []string{
		"GET /health",
		"GET /metrics",
	}
	for _, skip := range skipped {
		if strings.Contains(r.Message, skip) {
			return true
		}
	}
	return false
}

func logType(attrs []slog.Attr) LogType {
	switch attrString(attrs, "type") {
	case "http":
		return TypeHTTP
	case "db":
		return TypeDB
	case "error":
		return TypeError
	}
	return TypeSystem
}

func attrString(attrs []slog.Attr, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value.String()
		}
	}
	return ""
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "status", "error", "error_location":
		return true
	}
	return false
}

func errorLocation(attrs []slog.Attr) string {
	if location := attrString(attrs, "error_location"); location != "" {
		return location
	}
	// skip Handle, slog internals and the slog.Error wrapper
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// Setup installs a CustomHandler as the slog default and returns it.
func Setup(level slog.Level, noColor bool) *slog.Logger {
	l := slog.New(NewHandler(Options{Level: level, NoColor: noColor}))
	slog.SetDefault(l)
	return l
}

var startTime = time.Now()

// Uptime reports how long the process has been running.
func Uptime() time.Duration {
	return time.Since(startTime)
}
