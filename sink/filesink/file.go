package filesink

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/sink"
)

// ErrNoFilename is returned by New when Config.Filename is empty
var ErrNoFilename = errors.New("filesink: filename is required")

const defaultBufferSize = 4096

// Config holds configuration for the file sink
type Config struct {
	// Filename is the path of the log file (required)
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// BufferSize is the size of the write buffer in bytes (default: 4096)
	BufferSize int
	// SyncOnFlush fsyncs the file on every Flush, not only on Close
	SyncOnFlush bool
	// MinLevel is the sink's own threshold (default: TraceLevel)
	MinLevel core.Level
}

// applyFileDefaults fills in zero-value fields with defaults.
func applyFileDefaults(cfg *Config) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
}

// FileSink appends formatted records to a file. It is driven by a
// single dispatcher worker and takes no locks.
type FileSink struct {
	filename        string
	file            *os.File
	bufWriter       *bufio.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	syncOnFlush     bool
	minLevel        core.Level
	buf             bytes.Buffer
	size            int64
	closed          bool
}

var (
	_ sink.Sink    = (*FileSink)(nil)
	_ sink.Enabler = (*FileSink)(nil)
)

// New opens (or creates) the file in append mode, creating parent
// directories as needed.
func New(cfg Config) (*FileSink, error) {
	if cfg.Filename == "" {
		return nil, ErrNoFilename
	}
	applyFileDefaults(&cfg)

	dir := filepath.Dir(cfg.Filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	s := &FileSink{
		filename:    cfg.Filename,
		file:        file,
		bufWriter:   bufio.NewWriterSize(file, cfg.BufferSize),
		formatter:   cfg.Formatter,
		syncOnFlush: cfg.SyncOnFlush,
		minLevel:    cfg.MinLevel,
		size:        info.Size(),
	}
	s.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)

	return s, nil
}

// Enabled reports whether level reaches the sink's own threshold
func (s *FileSink) Enabled(level core.Level, _ string) bool {
	return level >= s.minLevel
}

// Write appends one formatted record to the buffered writer
func (s *FileSink) Write(rec core.Record) error {
	if s.closed {
		return os.ErrClosed
	}

	var data []byte
	if s.bufferFormatter != nil {
		s.buf.Reset()
		s.bufferFormatter.FormatRecord(&rec, &s.buf)
		data = s.buf.Bytes()
	} else {
		var err error
		if data, err = s.formatter.Format(&rec); err != nil {
			return err
		}
	}

	n, err := s.bufWriter.Write(data)
	s.size += int64(n)
	return err
}

// Flush writes buffered data to the file, and fsyncs when SyncOnFlush is set
func (s *FileSink) Flush() error {
	if s.closed {
		return nil
	}
	if err := s.bufWriter.Flush(); err != nil {
		return err
	}
	if s.syncOnFlush {
		return s.file.Sync()
	}
	return nil
}

// Close flushes, syncs and closes the file. Safe to call more than once.
func (s *FileSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	return multierr.Combine(
		s.bufWriter.Flush(),
		s.file.Sync(),
		s.file.Close(),
	)
}

// Size returns the current file size in bytes, including buffered data
func (s *FileSink) Size() int64 {
	return s.size
}

// Filename returns the path of the log file
func (s *FileSink) Filename() string {
	return s.filename
}
