package tty

import "sync"

// Scheduler abstracts the host's sleep/wakeup primitives. The real kernel
// maps this onto sleep(chan, lock)/wakeup(chan) and a per-process killed
// flag; a standalone or test build maps it onto a condition variable, which
// is what CondScheduler below provides.
type Scheduler interface {
	// Sleep atomically releases lock and blocks the caller until Wakeup is
	// called, then reacquires lock before returning.
	Sleep(lock sync.Locker)
	// Wakeup wakes every caller currently blocked in Sleep.
	Wakeup()
	// Killed reports whether the calling reader should abort instead of
	// blocking or consuming a byte.
	Killed() bool
}

// CondScheduler is a Scheduler backed by a sync.Cond, suitable for any
// goroutine-based caller (tests, the demo binary, or a hosted build that
// has no real process scheduler of its own).
type CondScheduler struct {
	cond     *sync.Cond
	killedFn func() bool
}

// NewCondScheduler builds a CondScheduler whose condition variable is keyed
// on lock. lock must be the same lock the caller holds across the Sleep
// call (the console's single spinlock).
func NewCondScheduler(lock sync.Locker) *CondScheduler {
	return &CondScheduler{cond: sync.NewCond(lock)}
}

// SetKilledFunc installs the predicate Killed delegates to. A nil predicate
// (the default) means no reader is ever considered killed.
func (s *CondScheduler) SetKilledFunc(fn func() bool) { s.killedFn = fn }

// Sleep waits on the condition variable. lock is accepted to satisfy the
// Scheduler interface but is expected to be the same lock the cond was
// built with.
func (s *CondScheduler) Sleep(lock sync.Locker) { s.cond.Wait() }

// Wakeup broadcasts to every blocked Sleep call.
func (s *CondScheduler) Wakeup() { s.cond.Broadcast() }

// Killed reports the configured predicate's result, or false if none was
// set.
func (s *CondScheduler) Killed() bool {
	if s.killedFn == nil {
		return false
	}
	return s.killedFn()
}
