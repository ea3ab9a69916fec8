package sink

import (
	"os"

	"github.com/philipp01105/asynclog/core"
)

// Sink is the synchronous backend a dispatcher forwards records to. A Sink
// handed to a dispatcher is only ever called from the dispatcher's worker
// goroutine, so implementations need no locking of their own.
type Sink interface {
	// Write formats and outputs one record
	Write(rec core.Record) error

	// Flush pushes any buffered output to its destination
	Flush() error
}

// Enabler is an optional interface a Sink implements to veto records the
// dispatcher's threshold let through.
type Enabler interface {
	Enabled(level core.Level, target string) bool
}

// Funcs adapts plain functions to the Sink interface. A nil FlushFunc
// makes Flush a no-op.
type Funcs struct {
	WriteFunc func(rec core.Record) error
	FlushFunc func() error
}

// Write calls WriteFunc
func (f Funcs) Write(rec core.Record) error {
	if f.WriteFunc == nil {
		return nil
	}
	return f.WriteFunc(rec)
}

// Flush calls FlushFunc
func (f Funcs) Flush() error {
	if f.FlushFunc == nil {
		return nil
	}
	return f.FlushFunc()
}

// Discard drops every record.
var Discard Sink = Funcs{}

// syncer is implemented by *os.File and zapcore.WriteSyncer.
type syncer interface {
	Sync() error
}

// flusher is implemented by *bufio.Writer and friends.
type flusher interface {
	Flush() error
}

// FlushWriter flushes w if it buffers output or can be synced. Writers
// that do neither are left alone. os.Stdout and os.Stderr are never
// synced: fsync fails on terminals and pipes.
func FlushWriter(w interface{}) error {
	if w == os.Stdout || w == os.Stderr {
		return nil
	}
	switch v := w.(type) {
	case flusher:
		return v.Flush()
	case syncer:
		return v.Sync()
	default:
		return nil
	}
}
