package core

import "strings"

// Level represents the severity level of a record
type Level int8

const (
	// TraceLevel for very fine-grained diagnostic events
	TraceLevel Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// OffLevel is only meaningful as a threshold: nothing passes it.
	OffLevel
)

// numLevels is the number of record levels, OffLevel excluded.
const numLevels = int(OffLevel)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case OffLevel:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether l is a level a record can carry.
func (l Level) Valid() bool {
	return l >= TraceLevel && l < OffLevel
}

// Index returns l as a zero-based index suitable for per-level counters.
// Out of range levels are clamped into [TraceLevel, ErrorLevel].
func (l Level) Index() int {
	if l < TraceLevel {
		return 0
	}
	if int(l) >= numLevels {
		return numLevels - 1
	}
	return int(l)
}

// Levels returns every record level in ascending order.
func Levels() []Level {
	return []Level{TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel}
}

// ParseLevel converts a string to a Level. Unknown strings map to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TraceLevel
	case "DEBUG":
		return DebugLevel
	case "INFO":
		return InfoLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	case "OFF", "NONE":
		return OffLevel
	default:
		return InfoLevel
	}
}
