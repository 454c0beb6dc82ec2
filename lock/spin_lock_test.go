package lock

import (
	"sync"
	"testing"
	"time"
)

func TestSpinLockMutualExclusion(t *testing.T) {
	const (
		workers = 8
		rounds  = 2000
	)

	l := SpinLock{}
	counter := 0
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				l.Lock()
				counter++
				l.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != workers*rounds {
		t.Errorf("TestSpinLockMutualExclusion: got counter == %d, want %d", counter, workers*rounds)
	}
}

func TestSpinLockTryLock(t *testing.T) {
	l := SpinLock{}
	if !l.TryLock() {
		t.Fatalf("TestSpinLockTryLock: TryLock() on a free lock == false")
	}
	if l.TryLock() {
		t.Fatalf("TestSpinLockTryLock: TryLock() on a held lock == true")
	}
	l.Unlock()
	if !l.TryLock() {
		t.Fatalf("TestSpinLockTryLock: TryLock() after Unlock() == false")
	}
}

func TestSpinLockTryLockInTime(t *testing.T) {
	l := SpinLock{}
	l.Lock()

	start := time.Now()
	if l.TryLockInTime(20 * time.Millisecond) {
		t.Fatalf("TestSpinLockTryLockInTime: got true on a held lock")
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("TestSpinLockTryLockInTime: gave up after %v, want >= 20ms", elapsed)
	}
	if l.TryLockInTime(-1) {
		t.Errorf("TestSpinLockTryLockInTime: negative duration on a held lock == true")
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		l.Unlock()
	}()
	if !l.TryLockInTime(5 * time.Second) {
		t.Errorf("TestSpinLockTryLockInTime: lock released by another goroutine was not taken")
	}
}

func TestTryInTime(t *testing.T) {
	tests := []struct {
		desc string
		dur  time.Duration
		want int
	}{
		{"negative tries once", -time.Second, 1},
		{"zero tries once", 0, 1},
		{"below a millisecond rounds up", 500 * time.Microsecond, 3},
		{"beyond millisecond range waits", maxTimeout + time.Millisecond, 3},
		{"finite waits", time.Minute, 3},
	}

	for _, test := range tests {
		calls := 0
		ok := tryInTime(func() bool {
			calls++
			return calls == 3
		}, test.dur)
		if ok != (test.want == 3) {
			t.Errorf("TestTryInTime(%s): got %v", test.desc, ok)
		}
		if calls != test.want {
			t.Errorf("TestTryInTime(%s): got %d calls, want %d", test.desc, calls, test.want)
		}
	}
}
