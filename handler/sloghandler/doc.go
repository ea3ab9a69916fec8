// Package sloghandler lets log/slog front a dispatcher: slog.New(h) with
// h from New turns every slog call into a core.Record emitted
// asynchronously.
//
// Attributes from WithAttrs and the record are converted to typed fields.
// Groups are flattened into dotted keys ("req.id"). Levels below
// slog.LevelDebug map to trace.
//
//	d := dispatch.Start(consolesink.New(consolesink.Config{}), core.InfoLevel)
//	defer d.Close()
//	slog.SetDefault(slog.New(sloghandler.New(d, &sloghandler.Options{Target: "app"})))
package sloghandler
