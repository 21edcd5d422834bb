package rayview

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

var (
	sinksMu sync.RWMutex
	sinks   []func(*slog.Logger)
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for rayview and all its sub-packages.
// By default, rayview produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by rayview:
//   - [slog.LevelDebug]: per-frame diagnostics (tessellation, buffer growth, texture uploads)
//   - [slog.LevelInfo]: lifecycle events (adapter selected, surface configured, shutdown)
//   - [slog.LevelWarn]: recoverable frame failures (surface lost, shader reload errors)
//   - [slog.LevelError]: fatal conditions reported right before exit
//
// Example:
//
//	rayview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	sinksMu.RLock()
	defer sinksMu.RUnlock()
	for _, fn := range sinks {
		fn(l)
	}
}

// Logger returns the current logger used by rayview.
// Sub-packages call this to share the same logger configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// RegisterLoggerSink registers fn to receive the logger on every SetLogger
// call. fn is invoked immediately with the current logger. GPU backends use
// this to forward the configuration into their own logging.
func RegisterLoggerSink(fn func(*slog.Logger)) {
	if fn == nil {
		return
	}
	sinksMu.Lock()
	sinks = append(sinks, fn)
	sinksMu.Unlock()
	fn(Logger())
}

// ParseLogLevel converts a level name into a slog.Level.
// The names "off" and "none" disable logging and report off=true.
func ParseLogLevel(name string) (level slog.Level, off bool, err error) {
	switch name {
	case "debug":
		return slog.LevelDebug, false, nil
	case "", "info":
		return slog.LevelInfo, false, nil
	case "warn", "warning":
		return slog.LevelWarn, false, nil
	case "error":
		return slog.LevelError, false, nil
	case "off", "none":
		return 0, true, nil
	default:
		return 0, false, ErrUnknownLogLevel
	}
}
