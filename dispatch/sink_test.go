package dispatch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/philipp01105/asynclog/core"
)

// recordingSink records the order of write and flush calls.
type recordingSink struct {
	mu     sync.Mutex
	events []string

	writeDelay time.Duration
	writeErr   error
	closeErr   error
	// started receives a value (without blocking) whenever Write begins
	started chan struct{}
	// gate, when set, holds every Write until it is closed
	gate chan struct{}

	flushes atomic.Int32
	closed  atomic.Bool
}

func newRecordingSink() *recordingSink {
	return &recordingSink{started: make(chan struct{}, 64)}
}

func (s *recordingSink) Write(rec core.Record) error {
	select {
	case s.started <- struct{}{}:
	default:
	}
	if s.gate != nil {
		<-s.gate
	}
	if s.writeDelay > 0 {
		time.Sleep(s.writeDelay)
	}
	if s.writeErr != nil {
		return s.writeErr
	}
	if rec.Message == "panic" {
		panic("sink exploded")
	}
	s.mu.Lock()
	s.events = append(s.events, "write:"+rec.Message)
	s.mu.Unlock()
	return nil
}

func (s *recordingSink) Flush() error {
	s.flushes.Add(1)
	s.mu.Lock()
	s.events = append(s.events, "flush")
	s.mu.Unlock()
	return nil
}

func (s *recordingSink) Close() error {
	s.closed.Store(true)
	return s.closeErr
}

func (s *recordingSink) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	copy(out, s.events)
	return out
}

// Writes returns only the write events, in order.
func (s *recordingSink) Writes() []string {
	var out []string
	for _, e := range s.Events() {
		if e != "flush" {
			out = append(out, e)
		}
	}
	return out
}

// filteringSink vetoes records whose target is "noisy".
type filteringSink struct {
	*recordingSink
}

func (s *filteringSink) Enabled(_ core.Level, target string) bool {
	return target != "noisy"
}

func rec(level core.Level, msg string) core.Record {
	return core.NewRecord(level, "test", msg)
}

func msgs(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("write:%s%d", prefix, i)
	}
	return out
}
