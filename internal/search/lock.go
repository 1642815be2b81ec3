// Package search implements the incremental, interruptible line search that
// runs on a worker goroutine alongside the list view.
package search

import "time"

// timedMutex is a mutual-exclusion lock that supports a bounded-wait
// acquisition, mirroring parking_lot's try_lock_for from the reference
// implementation. The standard library's sync.Mutex has no timed variant;
// no third-party dependency in the pack offers one either, so this is a
// small channel-based implementation.
type timedMutex struct {
	slot chan struct{}
}

func newTimedMutex() *timedMutex {
	m := &timedMutex{slot: make(chan struct{}, 1)}
	m.slot <- struct{}{}
	return m
}

// tryLockFor attempts to acquire the lock within d, returning false on
// timeout. On success the caller owns the lock and must call unlock.
func (m *timedMutex) tryLockFor(d time.Duration) bool {
	select {
	case <-m.slot:
		return true
	case <-time.After(d):
		return false
	}
}

// lock acquires the lock, waiting as long as necessary. Used by the quick
// status accessors, which don't need the bounded-wait semantics that let a
// busy search sweep yield to the UI thread.
func (m *timedMutex) lock() {
	<-m.slot
}

func (m *timedMutex) unlock() {
	m.slot <- struct{}{}
}
