package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/sink"
)

// Dispatcher is the producer-side handle of the asynchronous pipeline. It
// is safe for concurrent use; every copy of the pointer shares the same
// channel, filter and worker.
type Dispatcher struct {
	filter   *core.Filter
	ch       *channel
	worker   *Worker
	stats    *Stats
	stopOnce sync.Once
}

// New starts a worker that owns s and returns the dispatcher feeding it.
// A nil sink discards every record.
func New(s sink.Sink, cfg Config) *Dispatcher {
	applyDefaults(&cfg)
	if s == nil {
		s = sink.Discard
	}

	capacity := cfg.Capacity
	if capacity < 0 {
		capacity = 0
	}

	stats := NewStats()
	ch := newChannel(capacity, cfg.OverflowPolicy, cfg.BlockTimeout, stats, cfg.OnDrop)

	d := &Dispatcher{
		filter: core.NewFilter(cfg.Level),
		ch:     ch,
		worker: newWorker(s, ch, stats, cfg.OnSinkError),
		stats:  stats,
	}
	go d.worker.run()

	return d
}

// Start is New with default settings and the given threshold.
func Start(s sink.Sink, threshold core.Level) *Dispatcher {
	return New(s, Config{Level: threshold})
}

// Enabled reports whether a record at level would be dispatched. Callers
// check it before building a record so that filtered-out calls cost a
// single atomic load.
func (d *Dispatcher) Enabled(level core.Level, _ string) bool {
	return d.filter.Enabled(level)
}

// Emit hands a record to the worker. It never blocks on sink I/O and never
// fails: records below the threshold are ignored, and records lost to a
// full or closed channel are counted and passed to Config.OnDrop.
func (d *Dispatcher) Emit(rec core.Record) {
	_ = d.TryEmit(rec)
}

// TryEmit is Emit for callers that want to know about drops. It returns
// ErrChannelFull or ErrChannelClosed when the record was lost.
func (d *Dispatcher) TryEmit(rec core.Record) error {
	if !d.filter.Enabled(rec.Level) {
		return nil
	}
	return d.ch.Send(rec)
}

// Flush blocks until every record emitted before it was written and the
// sink was flushed. It returns ErrChannelClosed after shutdown.
func (d *Dispatcher) Flush() error {
	return d.FlushContext(context.Background())
}

// FlushTimeout is Flush bounded by timeout. On timeout it returns an error
// wrapping ErrFlushTimeout; the worker still completes the flush.
func (d *Dispatcher) FlushTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return d.FlushContext(ctx)
}

// FlushContext is Flush bounded by ctx.
func (d *Dispatcher) FlushContext(ctx context.Context) error {
	done := make(chan struct{})
	if err := d.ch.sendControl(message{kind: msgFlush, done: done}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrFlushTimeout, ctx.Err())
	}
}

// Stop requests shutdown without waiting for it. Records emitted before
// Stop are still written; later emits are dropped.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		_ = d.ch.sendControl(message{kind: msgShutdown})
	})
}

// Shutdown requests shutdown and waits until the worker has drained the
// channel, flushed and closed the sink. Shutdown cannot be cancelled: if
// ctx ends first Shutdown returns ctx.Err() while the worker keeps
// draining. The returned error aggregates final flush and close failures.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.Stop()
	select {
	case <-d.worker.done:
		return d.worker.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the dispatcher down and waits for the worker.
func (d *Dispatcher) Close() error {
	return d.Shutdown(context.Background())
}

// Done is closed once the worker has stopped
func (d *Dispatcher) Done() <-chan struct{} {
	return d.worker.done
}

// State returns the worker's lifecycle state
func (d *Dispatcher) State() State {
	return d.worker.State()
}

// Level returns the current threshold
func (d *Dispatcher) Level() core.Level {
	return d.filter.Threshold()
}

// SetLevel atomically replaces the threshold
func (d *Dispatcher) SetLevel(level core.Level) {
	d.filter.SetThreshold(level)
}

// Pending returns the number of records waiting for the worker
func (d *Dispatcher) Pending() int {
	return d.ch.Len()
}

// Stats returns a snapshot of the current statistics
func (d *Dispatcher) Stats() Snapshot {
	return d.stats.GetSnapshot()
}
