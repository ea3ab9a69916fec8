package core

import "sync/atomic"

// Filter is a severity threshold shared by every producer. Reads are a
// single atomic load.
type Filter struct {
	threshold atomic.Int32
}

// NewFilter creates a filter that lets through records at or above level.
func NewFilter(level Level) *Filter {
	f := &Filter{}
	f.threshold.Store(int32(level))
	return f
}

// Threshold returns the current minimum level.
func (f *Filter) Threshold() Level {
	return Level(f.threshold.Load())
}

// Enabled reports whether a record at level passes the filter. Levels a
// record cannot carry (OffLevel, out of range) never pass.
func (f *Filter) Enabled(level Level) bool {
	return level.Valid() && level >= Level(f.threshold.Load())
}

// SetThreshold atomically replaces the minimum level. Records already
// queued are not re-checked.
func (f *Filter) SetThreshold(level Level) {
	f.threshold.Store(int32(level))
}
