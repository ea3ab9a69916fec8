package zapsink

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/sink"
)

// Sink forwards records to a zapcore.Core
type Sink struct {
	core zapcore.Core
}

var (
	_ sink.Sink    = (*Sink)(nil)
	_ sink.Enabler = (*Sink)(nil)
)

// New creates a sink writing to c. A nil core discards everything.
func New(c zapcore.Core) *Sink {
	if c == nil {
		c = zapcore.NewNopCore()
	}
	return &Sink{core: c}
}

// FromLogger creates a sink writing to the logger's core. Fields added
// to the logger with With are kept.
func FromLogger(l *zap.Logger) *Sink {
	if l == nil {
		return New(nil)
	}
	return New(l.Core())
}

// Enabled reports whether the zap core accepts the level
func (s *Sink) Enabled(level core.Level, _ string) bool {
	return s.core.Enabled(zapLevel(level))
}

// Write converts the record to a zap entry and writes it. The record's
// target becomes the entry's logger name. The entry goes through the
// core's Check, so each core of a tee applies its own level.
func (s *Sink) Write(rec core.Record) error {
	ent := zapcore.Entry{
		Level:      zapLevel(rec.Level),
		Time:       rec.Time,
		LoggerName: rec.Target,
		Message:    rec.Message,
	}
	if rec.Caller.Defined {
		ent.Caller = zapcore.EntryCaller{
			Defined:  true,
			File:     rec.Caller.File,
			Line:     rec.Caller.Line,
			Function: rec.Caller.Function,
		}
	}

	ce := s.core.Check(ent, nil)
	if ce == nil {
		return nil
	}
	// CheckedEntry.Write reports core failures to ErrorOutput only.
	var out errorOutput
	ce.ErrorOutput = &out
	ce.Write(zapFields(rec.Fields)...)
	return out.err()
}

// Flush syncs the core. Cores writing to a terminal may report an error
// here; wrap such writers with zapcore.AddSync over a non-syncing writer.
func (s *Sink) Flush() error {
	return s.core.Sync()
}

// errorOutput collects the failure report of a single CheckedEntry.Write
type errorOutput struct {
	msg []byte
}

func (o *errorOutput) Write(p []byte) (int, error) {
	o.msg = append(o.msg, p...)
	return len(p), nil
}

func (o *errorOutput) Sync() error { return nil }

func (o *errorOutput) err() error {
	if len(o.msg) == 0 {
		return nil
	}
	msg := strings.TrimSpace(string(o.msg))
	if i := strings.Index(msg, "write error: "); i >= 0 {
		msg = msg[i+len("write error: "):]
	}
	return fmt.Errorf("zapsink: %s", msg)
}

// zapLevel maps a record level to zap. zap has no trace level, so trace
// records go out at debug.
func zapLevel(level core.Level) zapcore.Level {
	switch level {
	case core.TraceLevel, core.DebugLevel:
		return zapcore.DebugLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	case core.WarnLevel:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func zapFields(fields []core.Field) []zapcore.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		out[i] = zapField(f)
	}
	return out
}

func zapField(f core.Field) zapcore.Field {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return zap.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Bool())
	case core.TimeType:
		return zap.Time(f.Key, f.Time())
	case core.DurationType:
		return zap.Duration(f.Key, time.Duration(f.Int64))
	default:
		return zap.Any(f.Key, f.Any)
	}
}
