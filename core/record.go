package core

import (
	"path/filepath"
	"runtime"
	"time"
)

// Record is a single log event. A Record is a value: once built it is
// never modified, and it travels by copy from the emitting goroutine to
// the sink.
type Record struct {
	Time    time.Time
	Level   Level
	Target  string
	Message string
	Fields  []Field
	Caller  CallerInfo
}

// CallerInfo contains information about the call site that emitted a record
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// NewRecord builds a Record stamped with the current time. The fields are
// copied so later changes to the caller's slice are not observed.
func NewRecord(level Level, target, msg string, fields ...Field) Record {
	return NewRecordAt(time.Now(), level, target, msg, fields...)
}

// NewRecordAt builds a Record with an explicit timestamp.
func NewRecordAt(t time.Time, level Level, target, msg string, fields ...Field) Record {
	r := Record{
		Time:    t,
		Level:   level,
		Target:  target,
		Message: msg,
	}
	if len(fields) > 0 {
		r.Fields = make([]Field, len(fields))
		copy(r.Fields, fields)
	}
	return r
}

// WithCaller returns a copy of r carrying the given call site.
func (r Record) WithCaller(c CallerInfo) Record {
	r.Caller = c
	return r
}

// Field returns the first field with the given key.
func (r Record) Field(key string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// GetCaller retrieves caller information skip frames above its own caller
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}
