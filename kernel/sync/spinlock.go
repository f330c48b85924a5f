// Package sync provides synchronization primitive implementations for
// spinlocks. The console uses exactly one of these (cons.lock) to exclude
// interrupt-time editing from reader-side copy-out.
package sync

import "sync/atomic"

var (
	// yieldFn, when non-nil, is called after a run of failed acquire
	// attempts so a busy spinner gives other goroutines a chance to run. It
	// is nil by default; tests substitute it with runtime.Gosched.
	yieldFn func()
)

const spinsBeforeYield = 64

// Spinlock implements a lock where each task trying to acquire it busy-waits
// till the lock becomes available.
type Spinlock struct {
	state uint32
}

// Acquire blocks until the lock can be acquired by the currently active task.
// Any attempt to re-acquire a lock already held by the current task will cause
// a deadlock.
func (l *Spinlock) Acquire() {
	var spins uint32
	for !l.TryToAcquire() {
		spins++
		if spins >= spinsBeforeYield && yieldFn != nil {
			yieldFn()
			spins = 0
		}
	}
}

// TryToAcquire attempts to acquire the lock and returns true if the lock could
// be acquired or false otherwise.
func (l *Spinlock) TryToAcquire() bool {
	return atomic.SwapUint32(&l.state, 1) == 0
}

// Release relinquishes a held lock allowing other tasks to acquire it. Calling
// Release while the lock is free has no effect.
func (l *Spinlock) Release() {
	atomic.StoreUint32(&l.state, 0)
}

// Lock acquires the lock. It allows Spinlock to satisfy sync.Locker so it can
// back a sync.Cond for the reader's sleep/wakeup dance.
func (l *Spinlock) Lock() { l.Acquire() }

// Unlock releases the lock. It allows Spinlock to satisfy sync.Locker.
func (l *Spinlock) Unlock() { l.Release() }
