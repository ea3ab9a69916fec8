// Package dispatch is the asynchronous engine between code that emits log
// records and the synchronous sink that writes them.
//
// New starts a single worker goroutine that owns the sink and returns a
// Dispatcher. Any number of goroutines may call Emit concurrently; records
// travel through an ordered channel and the worker forwards them to the
// sink one at a time, in arrival order. Only the worker ever touches the
// sink, so the I/O path needs no locking.
//
// Filtering happens before anything is queued. Enabled is a single atomic
// load of the threshold, and callers are expected to check it before
// building a record:
//
//	if d.Enabled(core.DebugLevel, "db") {
//	    d.Emit(core.NewRecord(core.DebugLevel, "db", "query", fields...))
//	}
//
// Flush and shutdown travel through the same channel as records. A Flush
// therefore returns only after every record queued before it has been
// written and the sink's own Flush has run. Shutdown drains whatever is
// left, flushes and closes the sink, and moves the worker to Stopped;
// emits after that are dropped without blocking.
//
// The channel is bounded by default (1000 records). When it is full the
// OverflowPolicy decides: Block waits up to BlockTimeout (default 100ms)
// and then drops, DropNewest drops the new record, DropOldest evicts the
// oldest queued record. Use Unbounded as the capacity to never drop.
//
// Logging must never break the application: no Dispatcher method panics,
// sink errors and sink panics are caught on the worker and handed to
// Config.OnSinkError, and dropped records go to Config.OnDrop. Stats
// exposes dropped, blocked, processed and failure counters.
package dispatch
