package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/asynclog/core"
)

// Formatter defines the interface for record formatters
type Formatter interface {
	// Format formats a record into bytes
	Format(rec *core.Record) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a record and writes it directly to the writer
	FormatTo(rec *core.Record, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatRecord appends the formatted record to buf.
	FormatRecord(rec *core.Record, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// OmitTarget leaves the record target out of the output
	OmitTarget bool
	// TimestampFormat specifies the time format (empty for RFC3339)
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// format runs fn against a pooled buffer and returns a copy of the result.
func format(rec *core.Record, fn func(*core.Record, *bytes.Buffer)) []byte {
	buf := getBuffer()
	fn(rec, buf)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	putBuffer(buf)
	return result
}

// formatTo runs fn against a pooled buffer and writes it to w in one call.
func formatTo(rec *core.Record, w io.Writer, fn func(*core.Record, *bytes.Buffer)) error {
	buf := getBuffer()
	fn(rec, buf)
	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}
