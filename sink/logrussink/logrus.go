package logrussink

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/sink"
)

// TargetKey is the logrus field that carries the record's target
const TargetKey = "target"

// Sink forwards records to a *logrus.Logger
type Sink struct {
	logger *logrus.Logger
}

var (
	_ sink.Sink    = (*Sink)(nil)
	_ sink.Enabler = (*Sink)(nil)
)

// New creates a sink writing to l (default: logrus.StandardLogger())
func New(l *logrus.Logger) *Sink {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Sink{logger: l}
}

// Enabled reports whether the logger's level lets the record through
func (s *Sink) Enabled(level core.Level, _ string) bool {
	return s.logger.IsLevelEnabled(logrusLevel(level))
}

// Write logs the record with its original timestamp. logrus reports
// its own write failures to stderr, so Write always returns nil.
func (s *Sink) Write(rec core.Record) error {
	fields := make(logrus.Fields, len(rec.Fields)+2)
	for _, f := range rec.Fields {
		fields[f.Key] = f.Value()
	}
	if rec.Target != "" {
		fields[TargetKey] = rec.Target
	}
	if rec.Caller.Defined {
		fields["caller"] = fmt.Sprintf("%s:%d", rec.Caller.ShortFile, rec.Caller.Line)
	}

	s.logger.WithTime(rec.Time).WithFields(fields).Log(logrusLevel(rec.Level), rec.Message)
	return nil
}

// Flush flushes the logger's output when it buffers
func (s *Sink) Flush() error {
	return sink.FlushWriter(s.logger.Out)
}

func logrusLevel(level core.Level) logrus.Level {
	switch level {
	case core.TraceLevel:
		return logrus.TraceLevel
	case core.DebugLevel:
		return logrus.DebugLevel
	case core.InfoLevel:
		return logrus.InfoLevel
	case core.WarnLevel:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}
