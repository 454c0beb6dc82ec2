//go:build debug

package lock

import (
	"github.com/ameise84/spinwait"
)

func (l *redisLock) Lock() {
	l.mu.LockSkip(1)
	s := spinwait.Spinner{}
	w := newDeadWatch()
	for !l.acquire() {
		_ = s.SpinOnceWith(redisSleepThreshold)
		w.check(&s, 1, l.mu.holders)
	}
}
