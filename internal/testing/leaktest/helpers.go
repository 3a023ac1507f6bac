// Package leaktest checks that background machinery (worker pools, retry
// goroutines) shuts down cleanly in tests.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	settlePoll    = 10 * time.Millisecond
)

// CheckNoGoroutineLeak runs fn and fails the test if the goroutine count has
// not returned to its starting level afterwards. The count is polled for a
// short settling period so goroutines that are mid-exit are not reported as
// leaks.
func CheckNoGoroutineLeak(t *testing.T, fn func()) {
	t.Helper()

	runtime.Gosched()
	before := runtime.NumGoroutine()

	fn()

	deadline := time.Now().Add(settleTimeout)
	var after int
	for {
		runtime.GC()
		runtime.Gosched()
		after = runtime.NumGoroutine()
		if after <= before || time.Now().After(deadline) {
			break
		}
		time.Sleep(settlePoll)
	}

	if after > before {
		t.Errorf("goroutine leak: before=%d after=%d", before, after)
	}
}
