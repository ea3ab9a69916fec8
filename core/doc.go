// Package core defines the value types shared by every asynclog package.
//
// Level orders severities from TraceLevel to ErrorLevel. OffLevel sits
// above them and is only used as a threshold that disables everything.
//
// Record is one log event. It is built once, stamped with its creation
// time, and then passed by value: the producer's copy, the queued copy and
// the copy handed to the sink never share mutable state except the Fields
// backing array, which NewRecord allocates privately.
//
// Filter is the process-wide threshold consulted before a Record is even
// built. It is a single atomic int, so the check costs one load and never
// contends with the dispatch queue.
//
// Field encodes values into fixed-size numeric fields (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap. The Any field exists as a fallback for
// arbitrary types but will cause an allocation.
package core
