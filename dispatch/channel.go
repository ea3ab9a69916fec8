package dispatch

import (
	"sync"
	"time"

	"github.com/philipp01105/asynclog/core"
)

type msgKind uint8

const (
	msgRecord msgKind = iota
	msgFlush
	msgShutdown
)

// message is one slot of the channel: a record or a control request.
type message struct {
	kind   msgKind
	record core.Record
	done   chan struct{} // closed by the worker once a flush completes
}

// compactThreshold is the number of consumed slots at the front of the
// queue after which the backing slice is compacted.
const compactThreshold = 1024

// channel is an ordered multi-producer, single-consumer queue of records
// and control messages. Only records count against the capacity: flush and
// shutdown requests are always accepted while the channel is open.
type channel struct {
	mu           sync.Mutex
	items        []message
	head         int
	records      int
	capacity     int
	policy       OverflowPolicy
	blockTimeout time.Duration
	closed       bool

	// ready holds at most one pending wake-up for the consumer
	ready chan struct{}
	// space is closed and replaced whenever a record leaves the queue
	// while producers are waiting for room
	space   chan struct{}
	waiters int

	stats  *Stats
	onDrop func(rec core.Record, err error)
}

// newChannel creates a channel. A capacity <= 0 makes it unbounded. For
// the Block policy a negative blockTimeout waits for space indefinitely.
func newChannel(capacity int, policy OverflowPolicy, blockTimeout time.Duration, stats *Stats, onDrop func(core.Record, error)) *channel {
	return &channel{
		capacity:     capacity,
		policy:       policy,
		blockTimeout: blockTimeout,
		ready:        make(chan struct{}, 1),
		space:        make(chan struct{}),
		stats:        stats,
		onDrop:       onDrop,
	}
}

// Send enqueues a record, applying the overflow policy when the channel is
// full. It returns ErrChannelFull when the record was dropped for lack of
// room and ErrChannelClosed after shutdown. Under DropOldest Send returns
// nil: the record made it in and an older one was evicted instead.
func (c *channel) Send(rec core.Record) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.drop(rec, ErrChannelClosed)
		return ErrChannelClosed
	}
	if c.hasRoomLocked() {
		c.enqueueLocked(message{kind: msgRecord, record: rec})
		c.mu.Unlock()
		return nil
	}

	switch c.policy {
	case DropOldest:
		evicted, ok := c.evictOldestLocked()
		c.enqueueLocked(message{kind: msgRecord, record: rec})
		c.mu.Unlock()
		if ok {
			c.drop(evicted, ErrChannelFull)
		}
		return nil

	case DropNewest:
		c.mu.Unlock()
		c.drop(rec, ErrChannelFull)
		return ErrChannelFull

	default:
		return c.sendBlockingLocked(rec)
	}
}

// sendBlockingLocked waits for room up to the block timeout. It must be
// called with mu held and releases it.
func (c *channel) sendBlockingLocked(rec core.Record) error {
	c.stats.IncrementBlocked()

	var timeout <-chan time.Time
	if c.blockTimeout >= 0 {
		timer := time.NewTimer(c.blockTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		space := c.space
		c.waiters++
		c.mu.Unlock()

		expired := false
		select {
		case <-space:
		case <-timeout:
			expired = true
		}

		c.mu.Lock()
		c.waiters--
		switch {
		case c.closed:
			c.mu.Unlock()
			c.drop(rec, ErrChannelClosed)
			return ErrChannelClosed
		case c.hasRoomLocked():
			c.enqueueLocked(message{kind: msgRecord, record: rec})
			c.mu.Unlock()
			return nil
		case expired:
			c.mu.Unlock()
			c.drop(rec, ErrChannelFull)
			return ErrChannelFull
		}
		// Another producer took the slot; wait again.
	}
}

// sendControl enqueues a flush or shutdown request regardless of
// capacity. A shutdown request closes the channel in the same critical
// section, so it is always the last message the worker sees.
func (c *channel) sendControl(msg message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrChannelClosed
	}
	c.enqueueLocked(msg)
	if msg.kind == msgShutdown {
		c.closed = true
		c.wakeProducersLocked()
	}
	return nil
}

// Close stops accepting messages. Queued messages can still be received.
func (c *channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.wakeProducersLocked()
	c.signalLocked()
}

// receive blocks until a message is available. It returns false once the
// channel is closed and empty.
func (c *channel) receive() (message, bool) {
	for {
		c.mu.Lock()
		if c.head < len(c.items) {
			msg := c.dequeueLocked()
			c.mu.Unlock()
			return msg, true
		}
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return message{}, false
		}
		<-c.ready
	}
}

// tryReceive returns the next message without blocking.
func (c *channel) tryReceive() (message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.head < len(c.items) {
		return c.dequeueLocked(), true
	}
	return message{}, false
}

// Len returns the number of queued records
func (c *channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records
}

// Cap returns the record capacity, 0 when unbounded
func (c *channel) Cap() int {
	if c.capacity <= 0 {
		return 0
	}
	return c.capacity
}

// Closed reports whether the channel stopped accepting messages
func (c *channel) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Stats returns the counters the channel updates
func (c *channel) Stats() *Stats {
	return c.stats
}

func (c *channel) hasRoomLocked() bool {
	return c.capacity <= 0 || c.records < c.capacity
}

func (c *channel) enqueueLocked(msg message) {
	c.items = append(c.items, msg)
	if msg.kind == msgRecord {
		c.records++
	}
	c.signalLocked()
}

func (c *channel) dequeueLocked() message {
	msg := c.items[c.head]
	c.items[c.head] = message{}
	c.head++

	if c.head == len(c.items) {
		c.items = c.items[:0]
		c.head = 0
	} else if c.head >= compactThreshold && c.head*2 >= len(c.items) {
		n := copy(c.items, c.items[c.head:])
		clear(c.items[n:])
		c.items = c.items[:n]
		c.head = 0
	}

	if msg.kind == msgRecord {
		c.records--
		c.wakeProducersLocked()
	}
	return msg
}

// evictOldestLocked removes the oldest queued record. Control messages
// are never evicted.
func (c *channel) evictOldestLocked() (core.Record, bool) {
	for i := c.head; i < len(c.items); i++ {
		if c.items[i].kind != msgRecord {
			continue
		}
		rec := c.items[i].record
		copy(c.items[i:], c.items[i+1:])
		c.items[len(c.items)-1] = message{}
		c.items = c.items[:len(c.items)-1]
		c.records--
		return rec, true
	}
	return core.Record{}, false
}

func (c *channel) signalLocked() {
	select {
	case c.ready <- struct{}{}:
	default:
	}
}

func (c *channel) wakeProducersLocked() {
	if c.waiters == 0 {
		return
	}
	close(c.space)
	c.space = make(chan struct{})
}

// drop counts a lost record and reports it to the drop hook.
func (c *channel) drop(rec core.Record, err error) {
	if err == ErrChannelClosed {
		c.stats.IncrementDroppedClosed()
	} else {
		c.stats.IncrementDropped(rec.Level)
	}
	if c.onDrop != nil {
		_ = protect(func() error {
			c.onDrop(rec, err)
			return nil
		})
	}
}
