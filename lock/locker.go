// Package lock provides spin based locks whose waiting is driven by
// spinwait: a process local SpinLock, a re-entrant ReinLock, a resettable
// Once and a Redis backed distributed lock.
//
// Build with -tags debug to record lock holders and report suspected dead
// locks, see CheckDead.
package lock

import (
	"math"
	"time"

	"github.com/ameise84/spinwait"
)

type Locker interface {
	Lock()
	Unlock()
	TryLock() bool
	// TryLockInTime keeps trying for dur. A negative or zero dur tries once,
	// a positive dur below a millisecond is rounded up to one.
	TryLockInTime(dur time.Duration) bool
}

const (
	unlocked int64 = 0
	locked   int64 = 1
)

const maxTimeout = math.MaxInt32 * time.Millisecond

func tryInTime(try func() bool, dur time.Duration) bool {
	switch {
	case dur <= 0:
		return try()
	case dur > maxTimeout:
		return spinwait.WaitUntil(try)
	case dur < time.Millisecond:
		dur = time.Millisecond
	}
	ok, err := spinwait.WaitUntilTimeout(try, dur)
	return ok && err == nil
}
