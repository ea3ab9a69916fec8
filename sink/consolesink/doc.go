// Package consolesink provides a sink that writes formatted records to
// any io.Writer (default: os.Stdout).
//
// The sink formats into a buffer it owns and issues one Write per record.
// It takes no locks: the dispatcher's worker is its only caller. Flush
// flushes writers that buffer (bufio.Writer) and syncs files, except
// stdout and stderr.
package consolesink
