package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used across the benchmark engine.
// Strategies and the orchestrator only depend on this interface, never on a
// concrete backend.
type Logger interface {
	Info(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Printf(format string, args ...any)
	Println(args ...any)
}

// Field is a typed key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Duration creates a time.Duration field.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err creates a field holding an error under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Log formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatPlain   = "plain"
)

// New returns the logger the application writes to w: a zerolog console
// writer, zerolog JSON lines, or standard log lines, all filtered at level.
func New(w io.Writer, format, level string) Logger {
	switch format {
	case FormatJSON:
		return NewZerologAdapter(newJSON(w, "stratbench").Level(parseLevel(level)))
	case FormatPlain:
		return NewStdLoggerAdapter(log.New(w, "", log.LstdFlags)).WithLevel(level)
	default:
		return NewConsoleLogger(w, level)
	}
}

// NewLogger returns a JSON logger writing to w, tagging every entry with the
// given component name.
func NewLogger(w io.Writer, component string) Logger {
	return NewZerologAdapter(newJSON(w, component))
}

func newJSON(w io.Writer, component string) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("component", component).Logger()
}

// parseLevel maps a level name to zerolog. Empty or unknown names mean info.
func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewConsoleLogger returns a human-readable logger writing to w at the given
// level ("debug", "info", "warn", "error", "disabled"). Unknown levels fall
// back to info.
func NewConsoleLogger(w io.Writer, level string) Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	zl := zerolog.New(cw).Level(parseLevel(level)).With().Timestamp().Logger()
	return NewZerologAdapter(zl)
}

// NopLogger returns a logger that discards everything.
func NopLogger() Logger {
	return NewZerologAdapter(zerolog.Nop())
}

// Info logs a message at info level.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	z.applyFields(z.logger.Info(), fields).Msg(msg)
}

// Debug logs a message at debug level.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	z.applyFields(z.logger.Debug(), fields).Msg(msg)
}

// Error logs a message at error level with the given error attached.
func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	z.applyFields(z.logger.Error().Err(err), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (z *ZerologAdapter) Printf(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

// Println logs the space-separated arguments at info level.
func (z *ZerologAdapter) Println(args ...any) {
	z.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

func (z *ZerologAdapter) applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// StdLoggerAdapter implements Logger on top of the standard library logger
// for plain, unstructured log lines (--log-format plain).
type StdLoggerAdapter struct {
	logger *log.Logger
	min    zerolog.Level
}

// NewStdLoggerAdapter wraps a *log.Logger. Every level is written until
// WithLevel raises the threshold.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger, min: zerolog.DebugLevel}
}

// WithLevel returns a copy that drops entries below level.
func (s *StdLoggerAdapter) WithLevel(level string) *StdLoggerAdapter {
	c := *s
	c.min = parseLevel(level)
	return &c
}

func (s *StdLoggerAdapter) enabled(l zerolog.Level) bool {
	return s.min != zerolog.Disabled && l >= s.min
}

// Info logs a message prefixed with [INFO].
func (s *StdLoggerAdapter) Info(msg string, fields ...Field) {
	if s.enabled(zerolog.InfoLevel) {
		s.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
	}
}

// Debug logs a message prefixed with [DEBUG].
func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	if s.enabled(zerolog.DebugLevel) {
		s.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
	}
}

// Error logs a message prefixed with [ERROR] followed by the error.
func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if s.enabled(zerolog.ErrorLevel) {
		s.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
	}
}

// Printf logs a formatted message at info level.
func (s *StdLoggerAdapter) Printf(format string, args ...any) {
	if s.enabled(zerolog.InfoLevel) {
		s.logger.Printf(format, args...)
	}
}

// Println logs the arguments at info level.
func (s *StdLoggerAdapter) Println(args ...any) {
	if s.enabled(zerolog.InfoLevel) {
		s.logger.Println(args...)
	}
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}
