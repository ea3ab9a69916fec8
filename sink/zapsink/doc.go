// Package zapsink connects a dispatcher to go.uber.org/zap.
//
// Sink writes records to a zapcore.Core: the record's target becomes the
// entry's logger name, fields become typed zap fields, and trace records
// are written at debug level since zap has no trace level. Flush syncs
// the core.
//
// ErrorObserver and DropObserver turn a *zap.Logger into the dispatcher's
// OnSinkError and OnDrop hooks, so failures of one log pipeline can be
// reported through another:
//
//	diag, _ := zap.NewProduction()
//	d := dispatch.New(s, dispatch.Config{
//		OnSinkError: zapsink.ErrorObserver(diag),
//		OnDrop:      zapsink.DropObserver(diag),
//	})
package zapsink
