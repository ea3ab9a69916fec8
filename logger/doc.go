// Package logger is the front end most programs use: a typed, immutable
// Logger that builds records and hands them to a dispatcher.
//
// A Logger is immutable after construction. The dispatcher, target,
// default fields and caller setting are fixed by the Builder; With and
// Named return new loggers. Loggers are safe for concurrent use without
// locking on the read path.
//
//	d := dispatch.New(consolesink.New(consolesink.Config{}), dispatch.Config{Level: core.InfoLevel})
//	defer d.Close()
//
//	log := logger.NewBuilder().
//	    WithDispatcher(d).
//	    WithTarget("api").
//	    WithCaller(true).
//	    Build()
//
//	reqLog := log.With(logger.String("request_id", id))
//
// The level check asks the dispatcher before any record is built, so
// filtered calls do not allocate.
//
// # Global logger
//
// TryInit installs a process-wide dispatcher and logger used by the
// package-level functions Info, Errorf, etc. It succeeds once; later
// calls return ErrAlreadyInitialized and Init panics instead. Until then
// the package-level functions discard everything. Call Shutdown before
// exit to drain queued records.
package logger
