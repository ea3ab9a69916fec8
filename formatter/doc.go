// Package formatter defines how records are serialized into bytes.
//
// It exposes three interfaces: Formatter, which returns a []byte,
// WriterFormatter, which writes directly to an io.Writer, and
// BufferFormatter, which appends to a caller-owned bytes.Buffer. Sinks
// check for BufferFormatter at construction time and prefer it, so the
// worker formats every record into one reused buffer.
//
// Both built-in formatters (TextFormatter and JSONFormatter) implement
// all three. They rely on Go's Append-style functions (time.AppendFormat,
// strconv.AppendInt) to avoid per-call allocations. The TextFormatter
// additionally pre-computes level bracket strings (" [INFO] ", etc.) so
// that the most common path is a single WriteString call. JSONFormatter
// can also encode a batch of records as one JSON array for network sinks.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
