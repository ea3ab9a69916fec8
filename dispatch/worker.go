package dispatch

import (
	"io"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/sink"
)

// State is the lifecycle state of a Worker
type State int32

const (
	// Running forwards records as they arrive
	Running State = iota
	// Draining is entered while a flush or shutdown request is served
	Draining
	// Stopped is terminal: the sink was flushed for the last time
	Stopped
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Draining:
		return "Draining"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// ErrorHandler observes sink failures. It runs on the worker goroutine,
// so a slow handler delays the records queued behind the failure.
type ErrorHandler func(err error)

// Worker is the single consumer of a channel and the only caller of its
// Sink.
type Worker struct {
	sink    sink.Sink
	enabler sink.Enabler
	ch      *channel
	stats   *Stats
	onError ErrorHandler

	state atomic.Int32
	done  chan struct{}
	// err holds the final flush and close failures; written before done
	// is closed
	err error
}

func newWorker(s sink.Sink, ch *channel, stats *Stats, onError ErrorHandler) *Worker {
	w := &Worker{
		sink:    s,
		ch:      ch,
		stats:   stats,
		onError: onError,
		done:    make(chan struct{}),
	}
	w.enabler, _ = s.(sink.Enabler)
	return w
}

// State returns the current lifecycle state
func (w *Worker) State() State {
	return State(w.state.Load())
}

// Done is closed once the worker reaches Stopped
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// run is the worker loop. The receive call is the only place it waits.
func (w *Worker) run() {
	defer close(w.done)

	for {
		msg, ok := w.ch.receive()
		if !ok {
			// Channel closed without a shutdown request
			w.state.Store(int32(Draining))
			w.stop()
			return
		}

		switch msg.kind {
		case msgRecord:
			w.write(msg.record)
		case msgFlush:
			w.state.Store(int32(Draining))
			w.flush()
			close(msg.done)
			w.state.Store(int32(Running))
		case msgShutdown:
			// The channel was closed when the request was queued, so
			// every record emitted before it has already been written.
			w.state.Store(int32(Draining))
			w.stop()
			return
		}
	}
}

// stop performs the final flush, closes the sink and marks the worker Stopped.
func (w *Worker) stop() {
	err := w.flush()
	if c, ok := w.sink.(io.Closer); ok {
		if cerr := protect(c.Close); cerr != nil {
			w.stats.IncrementFlushFailures()
			w.report(&SinkError{Op: OpClose, Err: cerr})
			err = multierr.Append(err, cerr)
		}
	}
	w.err = err
	w.state.Store(int32(Stopped))
}

func (w *Worker) write(rec core.Record) {
	if w.enabler != nil && !w.enabled(rec) {
		w.stats.IncrementFiltered()
		return
	}
	if err := protect(func() error { return w.sink.Write(rec) }); err != nil {
		w.stats.IncrementWriteFailures()
		w.report(&SinkError{Op: OpWrite, Record: rec, Err: err})
		return
	}
	w.stats.IncrementProcessed()
}

// enabled consults the sink's own filter. A panicking Enabled lets the
// record through so that Write can report the failure.
func (w *Worker) enabled(rec core.Record) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = true
		}
	}()
	return w.enabler.Enabled(rec.Level, rec.Target)
}

func (w *Worker) flush() error {
	if err := protect(w.sink.Flush); err != nil {
		w.stats.IncrementFlushFailures()
		w.report(&SinkError{Op: OpFlush, Err: err})
		return err
	}
	w.stats.IncrementFlushes()
	return nil
}

func (w *Worker) report(err error) {
	if w.onError == nil {
		return
	}
	_ = protect(func() error {
		w.onError(err)
		return nil
	})
}
