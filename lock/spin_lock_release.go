//go:build !debug

package lock

import (
	"sync/atomic"
	"time"

	"github.com/ameise84/spinwait"
)

// SpinLock is a mutual exclusion lock that waits by spinning. The zero value
// is unlocked. Waiters escalate from pause instructions to yields to short
// sleeps, so a long held SpinLock does not pin a core.
type SpinLock struct {
	isLocked atomic.Int64
}

func (l *SpinLock) Lock() {
	if l.TryLock() {
		return
	}
	s := spinwait.Spinner{}
	for !l.TryLock() {
		s.SpinOnce()
	}
}

func (l *SpinLock) TryLock() bool {
	return l.isLocked.CompareAndSwap(unlocked, locked)
}

func (l *SpinLock) TryLockInTime(dur time.Duration) bool {
	return tryInTime(l.TryLock, dur)
}

func (l *SpinLock) Unlock() {
	l.isLocked.Store(unlocked)
}
