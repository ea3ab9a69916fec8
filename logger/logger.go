package logger

import (
	"fmt"
	"time"

	"github.com/philipp01105/asynclog/core"
)

// Emitter is the destination of a Logger. *dispatch.Dispatcher
// implements it.
type Emitter interface {
	Enabled(level core.Level, target string) bool
	Emit(rec core.Record)
	Flush() error
}

// callerSkip is the number of frames between core.GetCaller and the
// user's call site for the Logger methods.
const callerSkip = 2

// Logger is the main logging interface (immutable)
type Logger struct {
	emitter       Emitter
	target        string
	fields        []core.Field
	includeCaller bool
	coarseClock   bool
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	emitter       Emitter
	target        string
	fields        []core.Field
	includeCaller bool
	coarseClock   bool
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithDispatcher sets the emitter records are sent to
func (b *Builder) WithDispatcher(e Emitter) *Builder {
	b.emitter = e
	return b
}

// WithTarget sets the target stamped on every record
func (b *Builder) WithTarget(target string) *Builder {
	b.target = target
	return b
}

// WithFields adds default fields to all records
func (b *Builder) WithFields(fields ...core.Field) *Builder {
	b.fields = append(b.fields, fields...)
	return b
}

// WithCaller enables caller information
func (b *Builder) WithCaller(enabled bool) *Builder {
	b.includeCaller = enabled
	return b
}

// WithCoarseClock stamps records from the coarse clock (500µs
// resolution) instead of time.Now.
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	b.coarseClock = enabled
	if enabled {
		core.StartCoarseClock()
	}
	return b
}

// Build creates the Logger instance
func (b *Builder) Build() *Logger {
	fields := make([]core.Field, len(b.fields))
	copy(fields, b.fields)
	return &Logger{
		emitter:       b.emitter,
		target:        b.target,
		fields:        fields,
		includeCaller: b.includeCaller,
		coarseClock:   b.coarseClock,
	}
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	l2 := *l
	l2.fields = newFields
	return &l2
}

// Named creates a new Logger that stamps records with target
func (l *Logger) Named(target string) *Logger {
	l2 := *l
	l2.target = target
	return &l2
}

// Target returns the logger's target
func (l *Logger) Target() string {
	return l.target
}

// Enabled reports whether a record at level would be emitted
func (l *Logger) Enabled(level core.Level) bool {
	return l.emitter != nil && l.emitter.Enabled(level, l.target)
}

// Flush blocks until every record emitted so far has been written
func (l *Logger) Flush() error {
	if l.emitter == nil {
		return nil
	}
	return l.emitter.Flush()
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string, fields ...core.Field) {
	if !l.Enabled(level) {
		return
	}
	l.log(0, level, msg, fields)
}

// log builds the record and emits it. depth counts extra frames between
// the public entry point and the user's call site.
func (l *Logger) log(depth int, level core.Level, msg string, fields []core.Field) {
	var t time.Time
	if l.coarseClock {
		t = core.CoarseNow()
	} else {
		t = time.Now()
	}

	var all []core.Field
	if n := len(l.fields) + len(fields); n > 0 {
		all = make([]core.Field, 0, n)
		all = append(all, l.fields...)
		all = append(all, fields...)
	}

	rec := core.Record{
		Time:    t,
		Level:   level,
		Target:  l.target,
		Message: msg,
		Fields:  all,
	}
	if l.includeCaller {
		rec.Caller = core.GetCaller(callerSkip + depth)
	}

	l.emitter.Emit(rec)
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, fields ...core.Field) {
	if !l.Enabled(core.TraceLevel) {
		return
	}
	l.log(0, core.TraceLevel, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(0, core.DebugLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(0, core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(0, core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(0, core.ErrorLevel, msg, fields)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	if !l.Enabled(core.TraceLevel) {
		return
	}
	l.log(0, core.TraceLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(0, core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(0, core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	if !l.Enabled(core.WarnLevel) {
		return
	}
	l.log(0, core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(0, core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}
