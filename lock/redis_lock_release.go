//go:build !debug

package lock

import (
	"github.com/ameise84/spinwait"
)

func (l *redisLock) Lock() {
	l.mu.Lock()
	s := spinwait.Spinner{}
	for !l.acquire() {
		_ = s.SpinOnceWith(redisSleepThreshold)
	}
}
