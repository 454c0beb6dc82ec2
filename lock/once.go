package lock

import (
	"sync/atomic"
)

// Once runs a function once until Reset. Unlike sync.Once a panicking f
// leaves the Once not done, so the next Do runs again.
type Once struct {
	done atomic.Uint32
	m    SpinLock
}

func (o *Once) Reset() {
	o.done.Store(0)
}

// Done reports whether a Do has completed since the last Reset.
func (o *Once) Done() bool {
	return o.done.Load() == 1
}

// Do calls f if no call has completed since creation or the last Reset. A
// nil f marks the Once done without running anything.
func (o *Once) Do(f func()) {
	if f == nil {
		o.done.Store(1)
		return
	}
	if o.done.Load() == 0 {
		o.doSlow(f)
	}
}

func (o *Once) doSlow(f func()) {
	o.m.Lock()
	defer o.m.Unlock()
	if o.done.Load() == 0 {
		f()
		o.done.Store(1)
	}
}
