package core

import (
	"sync"
	"sync/atomic"
	"time"
)

// coarseResolution is how often the cached clock is refreshed.
const coarseResolution = 500 * time.Microsecond

var (
	coarseOnce sync.Once
	coarseNow  atomic.Pointer[time.Time]
)

// StartCoarseClock starts the goroutine that refreshes the cached time
// every 500µs. Only the first call starts it; it then runs for the life
// of the process.
func StartCoarseClock() {
	coarseOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go func() {
			ticker := time.NewTicker(coarseResolution)
			for now := range ticker.C {
				coarseNow.Store(&now)
			}
		}()
	})
}

// CoarseNow returns the most recently cached time. It falls back to
// time.Now when the coarse clock was never started.
func CoarseNow() time.Time {
	if t := coarseNow.Load(); t != nil {
		return *t
	}
	return time.Now()
}
