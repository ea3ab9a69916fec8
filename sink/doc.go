// Package sink defines the contract between the dispatcher and the
// synchronous logger it wraps.
//
// A Sink exposes Write and Flush. Both may block on I/O and both may fail;
// the dispatcher calls them from its single worker goroutine and routes any
// error to its error hook instead of returning it to the application.
//
// A Sink may also implement Enabler to reject records the dispatcher's own
// threshold let through, and io.Closer to release resources once the
// dispatcher has drained and flushed it for the last time.
//
// Built-in sinks live in sub-packages:
//
//   - consolesink writes formatted records to any io.Writer (default: stdout).
//   - filesink appends formatted records to a file through a bufio.Writer.
//   - zapsink, logrussink and zerologsink forward to an existing zap,
//     logrus or zerolog logger.
//   - slogsink forwards to any log/slog Handler.
//   - redissink pipelines JSON records onto a Redis list.
//   - httpsink posts JSON batches, optionally gzip or zstd compressed, to an
//     ingest endpoint.
package sink
