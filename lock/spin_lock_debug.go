//go:build debug

package lock

import (
	"sync/atomic"
	"time"

	"github.com/ameise84/spinwait"
)

// SpinLock is a mutual exclusion lock that waits by spinning. Debug builds
// remember where it was taken so dead locks can be reported.
type SpinLock struct {
	isLocked atomic.Int64
	infos    atomic.Pointer[[]stack]
}

// LockSkip is Lock reporting the caller n frames above.
func (l *SpinLock) LockSkip(n int) {
	if l.tryLock(n) {
		return
	}
	s := spinwait.Spinner{}
	w := newDeadWatch()
	for !l.tryLock(n) {
		s.SpinOnce()
		w.check(&s, n+1, l.holders)
	}
}

func (l *SpinLock) Lock() {
	l.LockSkip(1)
}

func (l *SpinLock) TryLock() bool {
	return l.tryLock(1)
}

func (l *SpinLock) TryLockInTime(dur time.Duration) bool {
	return tryInTime(func() bool { return l.tryLock(2) }, dur)
}

func (l *SpinLock) tryLock(skip int) bool {
	if !l.isLocked.CompareAndSwap(unlocked, locked) {
		return false
	}
	l.infos.Store(&[]stack{callerStack(getGID(), skip+1)})
	return true
}

func (l *SpinLock) Unlock() {
	l.isLocked.Store(unlocked)
}

// recordLockIndex is called by the holder only. The list is copied so
// waiters reading an older snapshot never see it change.
func (l *SpinLock) recordLockIndex(gid int, skip int) {
	var infos []stack
	if old := l.infos.Load(); old != nil {
		infos = append(infos, *old...)
	}
	infos = append(infos, callerStack(gid, skip+1))
	l.infos.Store(&infos)
}

func (l *SpinLock) holders() []stack {
	if p := l.infos.Load(); p != nil {
		return *p
	}
	return nil
}
