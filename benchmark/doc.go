// Package benchmark compares the caller-side cost of logging through a
// dispatcher against calling zap, logrus, zerolog and slog directly.
//
// Every backend writes JSON to io.Discard. The "direct" runs measure the
// synchronous library; the "dispatched" runs measure Logger.Info into a
// dispatcher whose sink wraps the same library, which is the latency an
// application goroutine actually pays.
//
//	go test -bench=. -benchmem ./benchmark
package benchmark
