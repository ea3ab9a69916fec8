package dispatch

import (
	"sync/atomic"

	"github.com/philipp01105/asynclog/core"
)

// numLevels covers TraceLevel..ErrorLevel.
const numLevels = int(core.OffLevel)

// Stats tracks dispatcher statistics. All counters are updated atomically
// and can be read while records are flowing.
type Stats struct {
	// Records dropped because the channel was full, per level
	droppedFull [numLevels]atomic.Uint64
	// DroppedClosed counts records emitted after shutdown
	droppedClosed atomic.Uint64
	// Filtered counts records vetoed by the sink's Enabled. Records below
	// the dispatcher threshold are discarded before queueing and not counted
	filtered atomic.Uint64
	// Blocked counts emits that had to wait for space
	blocked atomic.Uint64
	// Processed counts records the sink accepted without error
	processed atomic.Uint64
	// Flushes counts completed sink flushes, including the final one
	flushes       atomic.Uint64
	writeFailures atomic.Uint64
	flushFailures atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementDropped atomically increments the channel-full counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	s.droppedFull[level.Index()].Add(1)
}

// IncrementDroppedClosed records a record lost because the channel was closed
func (s *Stats) IncrementDroppedClosed() {
	s.droppedClosed.Add(1)
}

// IncrementFiltered records a record vetoed by the sink
func (s *Stats) IncrementFiltered() {
	s.filtered.Add(1)
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() {
	s.blocked.Add(1)
}

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() {
	s.processed.Add(1)
}

// IncrementFlushes records a completed sink flush
func (s *Stats) IncrementFlushes() {
	s.flushes.Add(1)
}

// IncrementWriteFailures records a failed Sink.Write
func (s *Stats) IncrementWriteFailures() {
	s.writeFailures.Add(1)
}

// IncrementFlushFailures records a failed Sink.Flush or Close
func (s *Stats) IncrementFlushFailures() {
	s.flushFailures.Add(1)
}

// GetDropped returns the channel-full dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	if !level.Valid() {
		return 0
	}
	return s.droppedFull[level.Index()].Load()
}

// GetTotalDropped returns the dropped count across all levels, closed
// channel drops included
func (s *Stats) GetTotalDropped() uint64 {
	var total uint64
	for i := range s.droppedFull {
		total += s.droppedFull[i].Load()
	}
	return total + s.droppedClosed.Load()
}

// GetProcessed returns the processed count
func (s *Stats) GetProcessed() uint64 {
	return s.processed.Load()
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for i := range s.droppedFull {
		s.droppedFull[i].Store(0)
	}
	s.droppedClosed.Store(0)
	s.filtered.Store(0)
	s.blocked.Store(0)
	s.processed.Store(0)
	s.flushes.Store(0)
	s.writeFailures.Store(0)
	s.flushFailures.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	DroppedTotal   map[core.Level]uint64
	DroppedClosed  uint64
	FilteredTotal  uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
	FlushTotal     uint64
	WriteFailures  uint64
	FlushFailures  uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	dropped := make(map[core.Level]uint64, numLevels)
	for _, l := range core.Levels() {
		dropped[l] = s.GetDropped(l)
	}
	return Snapshot{
		DroppedTotal:   dropped,
		DroppedClosed:  s.droppedClosed.Load(),
		FilteredTotal:  s.filtered.Load(),
		BlockedTotal:   s.blocked.Load(),
		ProcessedTotal: s.processed.Load(),
		FlushTotal:     s.flushes.Load(),
		WriteFailures:  s.writeFailures.Load(),
		FlushFailures:  s.flushFailures.Load(),
	}
}

// Dropped returns the total number of records dropped for a full channel
func (s Snapshot) Dropped() uint64 {
	var total uint64
	for _, n := range s.DroppedTotal {
		total += n
	}
	return total
}
