// Package zerologsink connects a dispatcher to github.com/rs/zerolog.
//
// Each record becomes one zerolog event at the matching level, stamped
// with the record's creation time rather than the time it is written.
package zerologsink
