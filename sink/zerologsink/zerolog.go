package zerologsink

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/sink"
)

// TargetKey is the zerolog field that carries the record's target
const TargetKey = "target"

// Sink forwards records to a zerolog.Logger
type Sink struct {
	logger zerolog.Logger
	out    io.Writer
}

var (
	_ sink.Sink    = (*Sink)(nil)
	_ sink.Enabler = (*Sink)(nil)
)

// New creates a sink with a fresh zerolog.Logger writing JSON to w
// (default: os.Stdout).
func New(w io.Writer) *Sink {
	if w == nil {
		w = os.Stdout
	}
	return &Sink{logger: zerolog.New(w), out: w}
}

// Wrap creates a sink around an existing logger. out is the logger's
// writer, used by Flush; it may be nil.
//
// Write always adds the record's own time under
// zerolog.TimestampFieldName. A logger built with .With().Timestamp()
// adds a second one, so the output then holds the key twice; wrap a
// logger without a timestamp hook.
func Wrap(l zerolog.Logger, out io.Writer) *Sink {
	return &Sink{logger: l, out: out}
}

// Enabled reports whether the logger and zerolog's global level let the
// record through
func (s *Sink) Enabled(level core.Level, _ string) bool {
	lvl := zerologLevel(level)
	return lvl >= s.logger.GetLevel() && lvl >= zerolog.GlobalLevel()
}

// Write logs the record with its original timestamp. zerolog reports
// write failures through zerolog.ErrorHandler.
func (s *Sink) Write(rec core.Record) error {
	ev := s.logger.WithLevel(zerologLevel(rec.Level))
	if ev == nil {
		return nil
	}

	ev.Time(zerolog.TimestampFieldName, rec.Time)
	if rec.Target != "" {
		ev.Str(TargetKey, rec.Target)
	}
	if rec.Caller.Defined {
		ev.Str(zerolog.CallerFieldName, rec.Caller.ShortFile+":"+strconv.Itoa(rec.Caller.Line))
	}
	for _, f := range rec.Fields {
		appendField(ev, f)
	}

	ev.Msg(rec.Message)
	return nil
}

// Flush flushes the output writer when it buffers
func (s *Sink) Flush() error {
	if s.out == nil {
		return nil
	}
	return sink.FlushWriter(s.out)
}

func appendField(ev *zerolog.Event, f core.Field) {
	switch f.Type {
	case core.StringType, core.ErrorType:
		ev.Str(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		ev.Int64(f.Key, f.Int64)
	case core.Float64Type:
		ev.Float64(f.Key, f.Float64)
	case core.BoolType:
		ev.Bool(f.Key, f.Bool())
	case core.TimeType:
		ev.Time(f.Key, f.Time())
	case core.DurationType:
		ev.Dur(f.Key, time.Duration(f.Int64))
	default:
		ev.Interface(f.Key, f.Any)
	}
}

func zerologLevel(level core.Level) zerolog.Level {
	switch level {
	case core.TraceLevel:
		return zerolog.TraceLevel
	case core.DebugLevel:
		return zerolog.DebugLevel
	case core.InfoLevel:
		return zerolog.InfoLevel
	case core.WarnLevel:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
