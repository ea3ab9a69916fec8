package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Field is one structured key-value pair attached to a Record. Numeric,
// boolean, time and duration values live in Int64/Float64 so that they
// do not escape to the heap.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType, ErrorType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).Format(time.RFC3339)
	case DurationType:
		return time.Duration(f.Int64).String()
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	default:
		return ""
	}
}

// Value returns the field's value as a Go value of its natural type.
// Adapters for third-party loggers use it when they have no typed
// constructor for a FieldType.
func (f Field) Value() interface{} {
	switch f.Type {
	case StringType, ErrorType:
		return f.Str
	case IntType:
		return int(f.Int64)
	case Int64Type:
		return f.Int64
	case Float64Type:
		return f.Float64
	case BoolType:
		return f.Int64 == 1
	case TimeType:
		return f.Time()
	case DurationType:
		return time.Duration(f.Int64)
	default:
		return f.Any
	}
}

// Time decodes a TimeType field.
func (f Field) Time() time.Time {
	return time.Unix(0, f.Int64)
}

// Bool decodes a BoolType field.
func (f Field) Bool() bool {
	return f.Int64 == 1
}

// String builds a StringType field.
func String(key, val string) Field {
	return Field{Key: key, Type: StringType, Str: val}
}

// Int builds an IntType field.
func Int(key string, val int) Field {
	return Field{Key: key, Type: IntType, Int64: int64(val)}
}

// Int64 builds an Int64Type field.
func Int64(key string, val int64) Field {
	return Field{Key: key, Type: Int64Type, Int64: val}
}

func Float64(key string, val float64) Field {
	return Field{Key: key, Type: Float64Type, Float64: val}
}

func Bool(key string, val bool) Field {
	f := Field{Key: key, Type: BoolType}
	if val {
		f.Int64 = 1
	}
	return f
}

// Time stores val as Unix nanoseconds; the location is not kept.
func Time(key string, val time.Time) Field {
	return Field{Key: key, Type: TimeType, Int64: val.UnixNano()}
}

func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Type: DurationType, Int64: int64(val)}
}

// Err is NamedErr under the key "error".
func Err(err error) Field {
	return NamedErr("error", err)
}

// NamedErr builds an ErrorType field holding err's message. A nil error
// gives an empty message.
func NamedErr(key string, err error) Field {
	f := Field{Key: key, Type: ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Any builds an AnyType field. Formatters render it with %v.
func Any(key string, val interface{}) Field {
	return Field{Key: key, Type: AnyType, Any: val}
}
