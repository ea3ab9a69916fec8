package sloghandler

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/philipp01105/asynclog/core"
)

// Emitter is the part of a dispatcher the handler needs.
// *dispatch.Dispatcher implements it.
type Emitter interface {
	Enabled(level core.Level, target string) bool
	Emit(rec core.Record)
}

// Options configures a Handler
type Options struct {
	// Target is set on every record (default: empty)
	Target string
	// AddSource records the caller's file, line and function
	AddSource bool
}

// Handler is a slog.Handler that emits records into a dispatcher. It
// never blocks on formatting or I/O: Handle only enqueues.
type Handler struct {
	emitter   Emitter
	target    string
	addSource bool
	attrs     []core.Field
	group     string
}

var _ slog.Handler = (*Handler)(nil)

// New creates a handler emitting into e. opts may be nil.
func New(e Emitter, opts *Options) *Handler {
	h := &Handler{emitter: e}
	if opts != nil {
		h.target = opts.Target
		h.addSource = opts.AddSource
	}
	return h
}

// Enabled reports whether the dispatcher accepts the level. The answer
// follows the dispatcher's threshold at call time.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return h.emitter.Enabled(slogLevelToCore(level), h.target)
}

// Handle converts the slog.Record and emits it. It always returns nil;
// delivery failures are counted by the dispatcher.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]core.Field, len(h.attrs), len(h.attrs)+r.NumAttrs())
	copy(fields, h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, h.group, a)
		return true
	})

	t := r.Time
	if t.IsZero() {
		t = core.CoarseNow()
	}
	// fields is already a private copy.
	rec := core.Record{
		Time:    t,
		Level:   slogLevelToCore(r.Level),
		Target:  h.target,
		Message: r.Message,
		Fields:  fields,
	}
	if h.addSource && r.PC != 0 {
		rec.Caller = callerFromPC(r.PC)
	}

	h.emitter.Emit(rec)
	return nil
}

// WithAttrs returns a new Handler with additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newAttrs := make([]core.Field, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, a := range attrs {
		newAttrs = appendAttr(newAttrs, h.group, a)
	}
	h2 := *h
	h2.attrs = newAttrs
	return &h2
}

// WithGroup returns a new Handler that prefixes later attribute keys
// with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	if h.group != "" {
		h2.group = h.group + "." + name
	} else {
		h2.group = name
	}
	return &h2
}

// slogLevelToCore converts a slog.Level to a core.Level. Levels below
// slog.LevelDebug map to trace.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// appendAttr converts a to fields, prepending the group prefix. Groups
// are flattened into dotted keys; a group with an empty key is inlined.
func appendAttr(fields []core.Field, group string, a slog.Attr) []core.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, key, ga)
		}
		return fields
	}

	return append(fields, valueToField(key, a.Value))
}

func valueToField(key string, v slog.Value) core.Field {
	switch v.Kind() {
	case slog.KindString:
		return core.String(key, v.String())
	case slog.KindInt64:
		return core.Int64(key, v.Int64())
	case slog.KindFloat64:
		return core.Float64(key, v.Float64())
	case slog.KindBool:
		return core.Bool(key, v.Bool())
	case slog.KindTime:
		return core.Time(key, v.Time())
	case slog.KindDuration:
		return core.Duration(key, v.Duration())
	default:
		if err, ok := v.Any().(error); ok {
			return core.NamedErr(key, err)
		}
		// Uint64 and everything else keep their Go value.
		return core.Any(key, v.Any())
	}
}

func callerFromPC(pc uintptr) core.CallerInfo {
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return core.CallerInfo{}
	}
	return core.CallerInfo{
		File:      f.File,
		ShortFile: filepath.Base(f.File),
		Line:      f.Line,
		Function:  f.Function,
		Defined:   true,
	}
}
