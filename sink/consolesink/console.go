package consolesink

import (
	"bytes"
	"io"
	"os"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/sink"
)

// Config holds configuration for the console sink
type Config struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// MinLevel is the sink's own threshold, checked by the dispatcher
	// after its filter (default: TraceLevel)
	MinLevel core.Level
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *Config) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
}

// ConsoleSink writes formatted records to an io.Writer. It is not safe
// for concurrent use on its own; a dispatcher serializes all calls.
type ConsoleSink struct {
	writer          io.Writer
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	bufferFormatter formatter.BufferFormatter
	minLevel        core.Level
	buf             bytes.Buffer
}

var (
	_ sink.Sink    = (*ConsoleSink)(nil)
	_ sink.Enabler = (*ConsoleSink)(nil)
)

// New creates a console sink
func New(cfg Config) *ConsoleSink {
	applyConsoleDefaults(&cfg)

	s := &ConsoleSink{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
		minLevel:  cfg.MinLevel,
	}

	// Cache the optional formatter interfaces once; Write prefers the
	// handler-owned buffer path, then the direct writer path.
	s.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	s.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)
	if s.bufferFormatter != nil {
		s.buf.Grow(256)
	}

	return s
}

// Enabled reports whether level reaches the sink's own threshold
func (s *ConsoleSink) Enabled(level core.Level, _ string) bool {
	return level >= s.minLevel
}

// Write formats and writes a record in a single Write call
func (s *ConsoleSink) Write(rec core.Record) error {
	if s.bufferFormatter != nil {
		s.buf.Reset()
		s.bufferFormatter.FormatRecord(&rec, &s.buf)
		_, err := s.writer.Write(s.buf.Bytes())
		return err
	}

	if s.writerFormatter != nil {
		return s.writerFormatter.FormatTo(&rec, s.writer)
	}

	data, err := s.formatter.Format(&rec)
	if err != nil {
		return err
	}
	_, err = s.writer.Write(data)
	return err
}

// Flush flushes the writer when it buffers output
func (s *ConsoleSink) Flush() error {
	return sink.FlushWriter(s.writer)
}
