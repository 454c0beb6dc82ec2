//go:build !debug

package lock

import (
	"sync/atomic"
	"time"

	"github.com/ameise84/spinwait"
)

// ReinLock is a SpinLock that the holding goroutine may take again. Every
// Lock must be paired with an Unlock.
type ReinLock struct {
	mu    SpinLock
	gid   atomic.Int64
	count uint64
}

func (l *ReinLock) Lock() {
	gid := getGID()
	if l.tryReinLock(gid) {
		return
	}
	s := spinwait.Spinner{}
	for !l.trySpinLock(gid) {
		s.SpinOnce()
	}
}

func (l *ReinLock) TryLock() bool {
	return l.tryReinLock(getGID())
}

func (l *ReinLock) TryLockInTime(dur time.Duration) bool {
	gid := getGID()
	return tryInTime(func() bool { return l.tryReinLock(gid) }, dur)
}

func (l *ReinLock) tryReinLock(gid int) bool {
	if l.gid.Load() == int64(gid) {
		// only the holder gets here, count needs no atomics
		l.count++
		return true
	}
	return l.trySpinLock(gid)
}

func (l *ReinLock) trySpinLock(gid int) bool {
	if !l.mu.TryLock() {
		return false
	}
	l.gid.Store(int64(gid))
	l.count = 1
	return true
}

func (l *ReinLock) Unlock() {
	l.count--
	if l.count == 0 {
		l.gid.Store(0)
		l.mu.Unlock()
	}
}
