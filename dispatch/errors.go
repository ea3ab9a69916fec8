package dispatch

import (
	"errors"
	"fmt"

	"github.com/philipp01105/asynclog/core"
)

var (
	// ErrChannelFull is reported when a bounded channel had no room for a record
	ErrChannelFull = errors.New("dispatch: channel full")

	// ErrChannelClosed is returned when emitting or flushing after shutdown
	ErrChannelClosed = errors.New("dispatch: channel closed")

	// ErrFlushTimeout is returned when a flush did not complete in time.
	// The worker still completes the flush.
	ErrFlushTimeout = errors.New("dispatch: flush timed out")

	// ErrSinkPanic wraps a panic recovered from a sink call
	ErrSinkPanic = errors.New("dispatch: sink panicked")
)

// SinkOp names the sink operation that failed
type SinkOp string

const (
	OpWrite SinkOp = "write"
	OpFlush SinkOp = "flush"
	OpClose SinkOp = "close"
)

// SinkError is handed to the error hook when a sink call fails
type SinkError struct {
	Op SinkOp
	// Record is set for OpWrite failures
	Record core.Record
	Err    error
}

func (e *SinkError) Error() string {
	if e.Op == OpWrite {
		return fmt.Sprintf("dispatch: sink %s %s record: %v", e.Op, e.Record.Level, e.Err)
	}
	return fmt.Sprintf("dispatch: sink %s: %v", e.Op, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// protect runs a sink call, turning a panic into an error wrapping ErrSinkPanic.
func protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSinkPanic, r)
		}
	}()
	return fn()
}
