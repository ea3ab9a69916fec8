package logger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/dispatch"
	"github.com/philipp01105/asynclog/sink"
)

// ErrAlreadyInitialized is returned by TryInit when the global logger
// has already been installed.
var ErrAlreadyInitialized = errors.New("attempted to set a logger more than once")

var (
	defaultLogger = NewBuilder().Build()
	defaultMu     sync.RWMutex

	globalDispatcher *dispatch.Dispatcher
	initialized      bool
)

// TryInit starts a dispatcher over s with the given threshold and
// installs a Logger writing to it as the default. It fails with
// ErrAlreadyInitialized on every call after the first successful one;
// the sink passed to a failed call is not used.
func TryInit(s sink.Sink, level core.Level) error {
	return TryInitWithConfig(s, dispatch.Config{Level: level})
}

// TryInitWithConfig is TryInit with full dispatcher configuration.
func TryInitWithConfig(s sink.Sink, cfg dispatch.Config) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if initialized {
		return ErrAlreadyInitialized
	}

	d := dispatch.New(s, cfg)
	globalDispatcher = d
	defaultLogger = NewBuilder().WithDispatcher(d).Build()
	initialized = true
	return nil
}

// Init is like TryInit but panics if the global logger is already set.
func Init(s sink.Sink, level core.Level) {
	if err := TryInit(s, level); err != nil {
		panic(fmt.Sprintf("logger: %v", err))
	}
}

// Dispatcher returns the dispatcher installed by TryInit, or nil.
func Dispatcher() *dispatch.Dispatcher {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return globalDispatcher
}

// Shutdown flushes and stops the dispatcher installed by TryInit. The
// default logger keeps its dispatcher, so later records are counted as
// dropped. It is a no-op before TryInit.
func Shutdown(ctx context.Context) error {
	d := Dispatcher()
	if d == nil {
		return nil
	}
	return d.Shutdown(ctx)
}

// Default returns the default logger. Before TryInit it discards
// everything.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the default logger. It does not count as
// initialization: TryInit still succeeds afterwards, replacing l.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Package-level convenience functions using the default logger

// Trace logs a trace message using the default logger
func Trace(msg string, fields ...core.Field) {
	logDefault(core.TraceLevel, msg, fields)
}

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...core.Field) {
	logDefault(core.DebugLevel, msg, fields)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...core.Field) {
	logDefault(core.InfoLevel, msg, fields)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...core.Field) {
	logDefault(core.WarnLevel, msg, fields)
}

// Error logs an error message using the default logger
func Error(msg string, fields ...core.Field) {
	logDefault(core.ErrorLevel, msg, fields)
}

// Debugf logs a formatted debug message using the default logger
func Debugf(format string, args ...interface{}) {
	logDefaultf(core.DebugLevel, format, args)
}

// Infof logs a formatted info message using the default logger
func Infof(format string, args ...interface{}) {
	logDefaultf(core.InfoLevel, format, args)
}

// Warnf logs a formatted warning message using the default logger
func Warnf(format string, args ...interface{}) {
	logDefaultf(core.WarnLevel, format, args)
}

// Errorf logs a formatted error message using the default logger
func Errorf(format string, args ...interface{}) {
	logDefaultf(core.ErrorLevel, format, args)
}

// With creates a new logger with additional fields
func With(fields ...core.Field) *Logger {
	return Default().With(fields...)
}

// Flush flushes the default logger
func Flush() error {
	return Default().Flush()
}

func logDefault(level core.Level, msg string, fields []core.Field) {
	l := Default()
	if !l.Enabled(level) {
		return
	}
	l.log(1, level, msg, fields)
}

func logDefaultf(level core.Level, format string, args []interface{}) {
	l := Default()
	if !l.Enabled(level) {
		return
	}
	l.log(1, level, fmt.Sprintf(format, args...), nil)
}
