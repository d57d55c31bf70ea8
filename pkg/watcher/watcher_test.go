package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func tempPayload(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(`{"nodes":[],"edges":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWatcher_DetectsWriteInPollingMode(t *testing.T) {
	path := tempPayload(t)
	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithDebounceDuration(10*time.Millisecond),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("forced polling not active")
	}

	// Mtime granularity can be coarse; change the size too.
	time.Sleep(30 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"nodes":[{"id":"reg_1"}],"edges":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Changed():
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification after write")
	}
}

func TestWatcher_ZeroPollIntervalKeepsDefault(t *testing.T) {
	// A config with poll_seconds unset maps to a zero duration; starting in
	// polling mode must not hand that to time.NewTicker.
	w, err := New(tempPayload(t), WithForcePoll(true), WithPollInterval(0))
	if err != nil {
		t.Fatal(err)
	}
	if w.pollInterval != DefaultPollInterval {
		t.Fatalf("pollInterval = %v, want %v", w.pollInterval, DefaultPollInterval)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Fatal("forced polling not active")
	}
	// Give the polling goroutine a moment to construct its ticker; a
	// non-positive interval panics right there and crashes the test binary.
	time.Sleep(20 * time.Millisecond)
}

func TestWatcher_StartTwiceFails(t *testing.T) {
	w, err := New(tempPayload(t), WithForcePoll(true), WithPollInterval(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := New(tempPayload(t), WithForcePoll(true), WithPollInterval(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	w.Stop()
	w.Stop()
	if w.IsStarted() {
		t.Error("watcher still started after Stop")
	}
}

func TestDebouncer_CollapsesBursts(t *testing.T) {
	db := newDebouncer(30 * time.Millisecond)
	var fired atomic.Int32

	for i := 0; i < 10; i++ {
		db.Trigger(func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("burst fired %d times, want 1", got)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	db := newDebouncer(20 * time.Millisecond)
	var fired atomic.Int32
	db.Trigger(func() { fired.Add(1) })
	db.Cancel()

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("cancelled trigger still fired %d times", got)
	}
}

func TestDebouncer_ZeroDurationFiresImmediately(t *testing.T) {
	db := newDebouncer(0)
	done := make(chan struct{})
	db.Trigger(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("zero-debounce trigger never fired")
	}
}
