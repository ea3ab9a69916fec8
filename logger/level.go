package logger

import "github.com/philipp01105/asynclog/core"

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel = core.TraceLevel
	DebugLevel = core.DebugLevel
	InfoLevel  = core.InfoLevel
	WarnLevel  = core.WarnLevel
	ErrorLevel = core.ErrorLevel
	OffLevel   = core.OffLevel
)

// ParseLevel converts a string to a Level (default: InfoLevel)
func ParseLevel(s string) Level {
	return core.ParseLevel(s)
}
