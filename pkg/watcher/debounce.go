package watcher

import (
	"sync"
	"time"
)

// debouncer collapses bursts of triggers into one callback after a quiet
// period. Safe for concurrent Trigger calls.
type debouncer struct {
	d     time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(d time.Duration) *debouncer {
	return &debouncer{d: d}
}

// Trigger schedules fn after the quiet period, resetting the countdown if a
// previous trigger is still pending. The last fn wins.
func (db *debouncer) Trigger(fn func()) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.timer != nil {
		db.timer.Stop()
	}
	if db.d <= 0 {
		// Zero debounce fires synchronously; used by tests.
		db.timer = nil
		go fn()
		return
	}
	db.timer = time.AfterFunc(db.d, fn)
}

// Cancel drops any pending callback.
func (db *debouncer) Cancel() {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.timer != nil {
		db.timer.Stop()
		db.timer = nil
	}
}

// Duration returns the configured quiet period.
func (db *debouncer) Duration() time.Duration {
	return db.d
}
