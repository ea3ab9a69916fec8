package slogsink

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/sink"
)

// LevelTrace is the slog level used for trace records
const LevelTrace = slog.LevelDebug - 4

const (
	// TargetKey is the attribute that carries the record's target
	TargetKey = "target"
	// CallerKey is the attribute that carries file:line when the record has a caller
	CallerKey = "caller"
)

// Sink forwards records to a slog.Handler
type Sink struct {
	handler slog.Handler
}

var (
	_ sink.Sink    = (*Sink)(nil)
	_ sink.Enabler = (*Sink)(nil)
)

// New creates a sink writing to h (default: slog.Default().Handler())
func New(h slog.Handler) *Sink {
	if h == nil {
		h = slog.Default().Handler()
	}
	return &Sink{handler: h}
}

// Enabled asks the handler whether it handles the level
func (s *Sink) Enabled(level core.Level, _ string) bool {
	return s.handler.Enabled(context.Background(), slogLevel(level))
}

// Write builds a slog.Record and hands it to the handler
func (s *Sink) Write(rec core.Record) error {
	ctx := context.Background()
	lvl := slogLevel(rec.Level)
	if !s.handler.Enabled(ctx, lvl) {
		return nil
	}

	r := slog.NewRecord(rec.Time, lvl, rec.Message, 0)
	if rec.Target != "" {
		r.AddAttrs(slog.String(TargetKey, rec.Target))
	}
	if rec.Caller.Defined {
		r.AddAttrs(slog.String(CallerKey, rec.Caller.ShortFile+":"+strconv.Itoa(rec.Caller.Line)))
	}
	for _, f := range rec.Fields {
		r.AddAttrs(fieldToAttr(f))
	}

	return s.handler.Handle(ctx, r)
}

// Flush flushes handlers that expose a Flush method. slog handlers
// write synchronously, so most have nothing to flush.
func (s *Sink) Flush() error {
	if f, ok := s.handler.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func slogLevel(level core.Level) slog.Level {
	switch level {
	case core.TraceLevel:
		return LevelTrace
	case core.DebugLevel:
		return slog.LevelDebug
	case core.InfoLevel:
		return slog.LevelInfo
	case core.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func fieldToAttr(f core.Field) slog.Attr {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return slog.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return slog.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return slog.Float64(f.Key, f.Float64)
	case core.BoolType:
		return slog.Bool(f.Key, f.Bool())
	case core.TimeType:
		return slog.Time(f.Key, f.Time())
	case core.DurationType:
		return slog.Duration(f.Key, time.Duration(f.Int64))
	default:
		return slog.Any(f.Key, f.Any)
	}
}
