package zapsink

import (
	"errors"

	"go.uber.org/zap"

	"github.com/philipp01105/asynclog/core"
	"github.com/philipp01105/asynclog/dispatch"
)

// ErrorObserver returns a dispatch.ErrorHandler that logs sink failures
// to l. Use it as dispatch.Config.OnSinkError.
func ErrorObserver(l *zap.Logger) dispatch.ErrorHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return func(err error) {
		var sinkErr *dispatch.SinkError
		if errors.As(err, &sinkErr) {
			fields := []zap.Field{
				zap.String("op", string(sinkErr.Op)),
				zap.Error(sinkErr.Err),
			}
			if sinkErr.Op == dispatch.OpWrite {
				fields = append(fields,
					zap.String("target", sinkErr.Record.Target),
					zap.Stringer("level", sinkErr.Record.Level),
				)
			}
			l.Error("log sink failed", fields...)
			return
		}
		l.Error("log sink failed", zap.Error(err))
	}
}

// DropObserver returns a hook that logs dropped records to l at warn
// level. Use it as dispatch.Config.OnDrop.
func DropObserver(l *zap.Logger) func(core.Record, error) {
	if l == nil {
		l = zap.NewNop()
	}
	return func(rec core.Record, err error) {
		l.Warn("log record dropped",
			zap.Stringer("level", rec.Level),
			zap.String("target", rec.Target),
			zap.Error(err),
		)
	}
}
