package spinwait

import (
	"runtime"
	"time"
)

// Platform is the set of primitives the escalation is built from. They must be
// safe to call from any number of goroutines at once.
type Platform interface {
	// SpinHint issues n CPU pause instructions without touching memory.
	SpinHint(n int)
	// YieldSameAffinity gives the processor to another runnable goroutine,
	// it is a no-op when there is none.
	YieldSameAffinity()
	// YieldAny yields the underlying thread to any ready thread of the system.
	YieldAny()
	// Sleep blocks for at least ms milliseconds.
	Sleep(ms int)
	Now() time.Time
	Since(t time.Time) time.Duration
}

type osPlatform struct{}

// OSPlatform returns the primitives of the running host.
func OSPlatform() Platform {
	return osPlatform{}
}

func (osPlatform) SpinHint(n int) {
	if n > 0 {
		procyield(uint32(n))
	}
}

func (osPlatform) YieldSameAffinity() {
	runtime.Gosched()
}

func (osPlatform) YieldAny() {
	runtime.Gosched()
	osYield()
}

func (osPlatform) Sleep(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// Now keeps the monotonic reading, Since compares on it.
func (osPlatform) Now() time.Time {
	return time.Now()
}

func (osPlatform) Since(t time.Time) time.Duration {
	return time.Since(t)
}
