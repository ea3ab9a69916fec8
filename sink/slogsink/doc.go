// Package slogsink connects a dispatcher to any log/slog.Handler, such as
// slog.NewJSONHandler or a third-party handler.
//
// It is the reverse of handler/sloghandler: there slog is the front end
// and the dispatcher the back end, here the dispatcher feeds slog.
package slogsink
