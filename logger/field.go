package logger

import "github.com/philipp01105/asynclog/core"

// Field constructors, re-exported so that callers of this package rarely
// need to import core.
var (
	String   = core.String
	Int      = core.Int
	Int64    = core.Int64
	Float64  = core.Float64
	Bool     = core.Bool
	Time     = core.Time
	Duration = core.Duration
	Err      = core.Err
	NamedErr = core.NamedErr
	Any      = core.Any
)
