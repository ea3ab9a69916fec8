package benchmark

import "github.com/philipp01105/asynclog/core"

// noopSink touches the record and discards it.
type noopSink struct{}

func (noopSink) Write(rec core.Record) error {
	_ = len(rec.Message)
	return nil
}

func (noopSink) Flush() error { return nil }
