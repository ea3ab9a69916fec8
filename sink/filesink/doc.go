// Package filesink provides a sink that appends formatted records to a
// file.
//
// Output goes through a bufio.Writer (4096 bytes by default). Flush pushes
// the buffer to the file; set SyncOnFlush to also fsync on every flush.
// Close flushes, syncs and closes the file, and the dispatcher calls it
// during shutdown.
//
// The sink does not rotate files.
package filesink
