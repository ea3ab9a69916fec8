package httpsink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/formatter"
	"github.com/philipp01105/asynclog/sink"
)

// ErrNoURL is returned by New when Config.URL is empty
var ErrNoURL = errors.New("httpsink: URL is required")

// Compression selects the request body encoding
type Compression string

const (
	// None sends plain JSON
	None Compression = ""
	// Gzip sends a gzip body with Content-Encoding: gzip
	Gzip Compression = "gzip"
	// Zstd sends a zstd body with Content-Encoding: zstd
	Zstd Compression = "zstd"
)

const (
	// InstanceIDHeader identifies the sending process
	InstanceIDHeader = "X-Instance-ID"
	// ServiceHeader names the sending service
	ServiceHeader = "X-Service-Name"

	defaultBatchSize = 100
	defaultTimeout   = 5 * time.Second
	maxErrorBody     = 512
)

// Config holds configuration for the HTTP sink
type Config struct {
	// URL of the batch ingest endpoint (required)
	URL string
	// APIKey is sent as a bearer token when set
	APIKey string
	// Service is sent in the X-Service-Name header when set
	Service string
	// InstanceID is sent in the X-Instance-ID header (default: random UUID)
	InstanceID string
	// BatchSize is the number of records buffered before a POST (default: 100)
	BatchSize int
	// Timeout bounds each request (default: 5s)
	Timeout time.Duration
	// Compression of the request body (default: None)
	Compression Compression
	// Client sends the requests (default: a client with Timeout)
	Client *http.Client
	// MinLevel is the sink's own threshold (default: TraceLevel)
	MinLevel core.Level
}

// applyHTTPDefaults fills in zero-value fields with defaults.
func applyHTTPDefaults(cfg *Config) {
	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.New().String()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: cfg.Timeout}
	}
}

// Sink POSTs records as a JSON array to an ingest endpoint
type Sink struct {
	cfg       Config
	formatter *formatter.JSONFormatter
	zstdEnc   *zstd.Encoder
	batch     []core.Record
	body      bytes.Buffer
	packed    bytes.Buffer
	zbuf      []byte
}

var (
	_ sink.Sink    = (*Sink)(nil)
	_ sink.Enabler = (*Sink)(nil)
	_ io.Closer    = (*Sink)(nil)
)

// New creates an HTTP sink
func New(cfg Config) (*Sink, error) {
	if cfg.URL == "" {
		return nil, ErrNoURL
	}
	applyHTTPDefaults(&cfg)

	s := &Sink{
		cfg:       cfg,
		formatter: formatter.NewJSONFormatter(formatter.Config{IncludeCaller: true}),
		batch:     make([]core.Record, 0, cfg.BatchSize),
	}

	switch cfg.Compression {
	case None, Gzip:
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("httpsink: failed to create zstd encoder: %w", err)
		}
		s.zstdEnc = enc
	default:
		return nil, fmt.Errorf("httpsink: unknown compression %q", cfg.Compression)
	}

	return s, nil
}

// InstanceID returns the id sent with every request
func (s *Sink) InstanceID() string {
	return s.cfg.InstanceID
}

// Enabled reports whether level reaches the sink's own threshold
func (s *Sink) Enabled(level core.Level, _ string) bool {
	return level >= s.cfg.MinLevel
}

// Write buffers the record and sends the batch once it is full
func (s *Sink) Write(rec core.Record) error {
	s.batch = append(s.batch, rec)
	if len(s.batch) >= s.cfg.BatchSize {
		return s.send()
	}
	return nil
}

// Flush sends buffered records
func (s *Sink) Flush() error {
	return s.send()
}

// Close releases the encoder and idle connections. The dispatcher calls
// it after the final flush.
func (s *Sink) Close() error {
	if s.zstdEnc != nil {
		err := s.zstdEnc.Close()
		s.zstdEnc = nil
		if err != nil {
			return err
		}
	}
	s.cfg.Client.CloseIdleConnections()
	return nil
}

// send POSTs the buffered batch. A failed batch is discarded.
func (s *Sink) send() error {
	if len(s.batch) == 0 {
		return nil
	}
	n := len(s.batch)

	s.body.Reset()
	s.formatter.AppendArray(s.batch, &s.body)
	s.batch = s.batch[:0]

	payload, err := s.encode(s.body.Bytes())
	if err != nil {
		return fmt.Errorf("httpsink: failed to encode %d records: %w", n, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("httpsink: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.Compression != None {
		req.Header.Set("Content-Encoding", string(s.cfg.Compression))
	}
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}
	if s.cfg.Service != "" {
		req.Header.Set(ServiceHeader, s.cfg.Service)
	}
	req.Header.Set(InstanceIDHeader, s.cfg.InstanceID)

	resp, err := s.cfg.Client.Do(req)
	if err != nil {
		return fmt.Errorf("httpsink: failed to send %d records: %w", n, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(msg)), Records: n}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *Sink) encode(data []byte) ([]byte, error) {
	switch s.cfg.Compression {
	case Gzip:
		s.packed.Reset()
		zw := gzip.NewWriter(&s.packed)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return s.packed.Bytes(), nil
	case Zstd:
		if s.zstdEnc == nil {
			return nil, errors.New("encoder closed")
		}
		s.zbuf = s.zstdEnc.EncodeAll(data, s.zbuf[:0])
		return s.zbuf, nil
	default:
		return data, nil
	}
}

// StatusError reports a non-2xx response from the ingest endpoint
type StatusError struct {
	StatusCode int
	Body       string
	Records    int
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("httpsink: %d records rejected: HTTP %d", e.Records, e.StatusCode)
	}
	return fmt.Sprintf("httpsink: %d records rejected: HTTP %d: %s", e.Records, e.StatusCode, e.Body)
}
