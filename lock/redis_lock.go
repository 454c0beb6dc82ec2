package lock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/xid"
)

const (
	redisKeyPrefix  = "_redis_lock:"
	defaultRedisTTL = 30 * time.Second
	// Every acquire is a round trip, so waiters go to bounded sleeps as soon
	// as the yield phase starts.
	redisSleepThreshold = 10
)

var (
	releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)
	renewScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("PEXPIRE", KEYS[1], ARGV[2])
	else
		return 0
	end
`)
)

// NewRedisLock returns a Locker shared by every process using the same key on
// cli. The key expires after ttl (30s by default) unless the holder is alive,
// a watchdog renews it every ttl/2. Goroutines of one process first serialize
// on a local SpinLock.
func NewRedisLock(cli redis.UniversalClient, key string, ttl ...time.Duration) Locker {
	t := defaultRedisTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		t = ttl[0]
	}
	return &redisLock{
		cli:   cli,
		key:   redisKeyPrefix + key,
		value: xid.New().String(),
		ttl:   t,
	}
}

type redisLock struct {
	mu    SpinLock
	cli   redis.UniversalClient
	key   string
	value string
	ttl   time.Duration
	held  atomic.Bool
	stop  chan struct{}
	done  chan struct{}
}

func (l *redisLock) TryLock() bool {
	if !l.mu.TryLock() {
		return false
	}
	if !l.acquire() {
		l.mu.Unlock()
		return false
	}
	return true
}

func (l *redisLock) TryLockInTime(dur time.Duration) bool {
	return tryInTime(l.TryLock, dur)
}

func (l *redisLock) Unlock() {
	if l.stop == nil {
		panic("lock: unlock of unlocked redis lock")
	}
	close(l.stop)
	<-l.done
	if l.held.CompareAndSwap(true, false) {
		if err := releaseScript.Run(context.Background(), l.cli, []string{l.key}, l.value).Err(); err != nil {
			warnf("redis key[%s] release failed: %v", l.key, err)
		}
	}
	l.stop, l.done = nil, nil
	l.mu.Unlock()
}

// acquire must be called with mu held.
func (l *redisLock) acquire() bool {
	ok, err := l.cli.SetNX(context.Background(), l.key, l.value, l.ttl).Result()
	if err != nil {
		warnf("redis key[%s] acquire failed: %v", l.key, err)
		return false
	}
	if !ok {
		return false
	}
	l.held.Store(true)
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	go l.watchDog(l.stop, l.done)
	return true
}

func (l *redisLock) watchDog(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	tk := time.NewTicker(l.ttl / 2)
	defer tk.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tk.C:
			n, err := renewScript.Run(context.Background(), l.cli, []string{l.key}, l.value, l.ttl.Milliseconds()).Int64()
			if err != nil || n == 0 {
				warnf("redis key[%s] expired failed: %v", l.key, err)
				l.held.Store(false)
				return
			}
		}
	}
}

// owned reports whether this process still owns the key. It turns false when
// the watchdog failed to renew it.
func (l *redisLock) owned() bool {
	return l.held.Load()
}
