package redissink

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/sink"
)

const (
	defaultKey       = "logs:queue"
	defaultBatchSize = 100
	defaultTimeout   = 5 * time.Second
)

// Config holds configuration for the Redis sink
type Config struct {
	// Key is the Redis list records are pushed onto (default: "logs:queue")
	Key string
	// MaxLen trims the list to its newest MaxLen entries after each push (0 = unlimited)
	MaxLen int64
	// BatchSize is the number of records buffered before a push (default: 100)
	BatchSize int
	// Timeout bounds each pipeline round trip (default: 5s)
	Timeout time.Duration
	// Formatter encodes each list entry (default: JSONFormatter)
	Formatter *formatter.JSONFormatter
	// MinLevel is the sink's own threshold (default: TraceLevel)
	MinLevel core.Level
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Key:       defaultKey,
		BatchSize: defaultBatchSize,
		Timeout:   defaultTimeout,
	}
}

// applyRedisDefaults fills in zero-value fields with defaults.
func applyRedisDefaults(cfg *Config) {
	if cfg.Key == "" {
		cfg.Key = defaultKey
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Config{})
	}
}

// Sink buffers JSON-encoded records and RPUSHes them onto a Redis list
// in batches. Each list entry is one JSON object.
type Sink struct {
	client  redis.Cmdable
	cfg     Config
	pending []interface{}
	buf     bytes.Buffer
}

var (
	_ sink.Sink    = (*Sink)(nil)
	_ sink.Enabler = (*Sink)(nil)
)

// New creates a Redis sink. The caller owns client and closes it after
// the dispatcher has shut down.
func New(client redis.Cmdable, cfg Config) *Sink {
	applyRedisDefaults(&cfg)
	return &Sink{
		client:  client,
		cfg:     cfg,
		pending: make([]interface{}, 0, cfg.BatchSize),
	}
}

// Enabled reports whether level reaches the sink's own threshold
func (s *Sink) Enabled(level core.Level, _ string) bool {
	return level >= s.cfg.MinLevel
}

// Write buffers the record and pushes the batch once it is full
func (s *Sink) Write(rec core.Record) error {
	s.buf.Reset()
	s.cfg.Formatter.AppendObject(&rec, &s.buf)
	s.pending = append(s.pending, s.buf.String())

	if len(s.pending) >= s.cfg.BatchSize {
		return s.push()
	}
	return nil
}

// Flush pushes buffered records
func (s *Sink) Flush() error {
	return s.push()
}

// Pending returns the number of buffered records not yet pushed
func (s *Sink) Pending() int {
	return len(s.pending)
}

// push sends the buffered batch in one pipeline. A failed batch is
// discarded: the error reports how many records were lost.
func (s *Sink) push() error {
	if len(s.pending) == 0 {
		return nil
	}
	values := s.pending
	s.pending = make([]interface{}, 0, s.cfg.BatchSize)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, s.cfg.Key, values...)
	if s.cfg.MaxLen > 0 {
		pipe.LTrim(ctx, s.cfg.Key, -s.cfg.MaxLen, -1)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redissink: failed to push %d records: %w", len(values), err)
	}
	return nil
}
