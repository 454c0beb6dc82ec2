package spinwait

import (
	"fmt"
	"math"
	"time"
)

const (
	// InfiniteMillis waits until the condition holds.
	InfiniteMillis = -1
	// Infinite is InfiniteMillis as a duration.
	Infinite = InfiniteMillis * time.Millisecond
)

// Poller evaluates a condition between Spinner steps. The zero value uses
// DefaultConfig. A Poller keeps no per-call state and may be shared.
type Poller struct {
	cfg *Config
}

// NewPoller returns a Poller bound to cfg, nil means DefaultConfig.
func NewPoller(cfg *Config) *Poller {
	return &Poller{cfg: cfg}
}

var defaultPoller Poller

// WaitUntil blocks until cond returns true.
func WaitUntil(cond func() bool) bool {
	return defaultPoller.WaitUntil(cond)
}

// WaitUntilTimeout is Poller.WaitUntilTimeout on the default Poller.
func WaitUntilTimeout(cond func() bool, timeout time.Duration) (bool, error) {
	return defaultPoller.WaitUntilTimeout(cond, timeout)
}

// WaitUntilMillis is Poller.WaitUntilMillis on the default Poller.
func WaitUntilMillis(cond func() bool, ms int) (bool, error) {
	return defaultPoller.WaitUntilMillis(cond, ms)
}

// WaitUntil blocks until cond returns true. It panics if cond is nil.
func (p *Poller) WaitUntil(cond func() bool) bool {
	if cond == nil {
		panic(ErrNilPredicate)
	}
	ok := p.waitUntil(cond, InfiniteMillis)
	assert(ok, "infinite wait returned false")
	return ok
}

// WaitUntilTimeout waits for cond for at most timeout, truncated to whole
// milliseconds. Infinite is the only negative timeout accepted.
func (p *Poller) WaitUntilTimeout(cond func() bool, timeout time.Duration) (bool, error) {
	ms := int64(timeout / time.Millisecond)
	if (timeout < 0 && timeout != Infinite) || ms > math.MaxInt32 {
		return false, fmt.Errorf("timeout %v out of range: %w", timeout, ErrInvalidArgument)
	}
	return p.WaitUntilMillis(cond, int(ms))
}

// WaitUntilMillis waits for cond for at most ms milliseconds, InfiniteMillis
// waits forever and 0 evaluates cond once. A timeout is reported as false with
// a nil error.
func (p *Poller) WaitUntilMillis(cond func() bool, ms int) (bool, error) {
	if ms < InfiniteMillis || int64(ms) > math.MaxInt32 {
		return false, fmt.Errorf("timeout %dms out of range: %w", ms, ErrInvalidArgument)
	}
	if cond == nil {
		return false, ErrNilPredicate
	}
	return p.waitUntil(cond, ms), nil
}

func (p *Poller) waitUntil(cond func() bool, ms int) bool {
	cfg := p.cfg
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.platform()
	timeout := time.Duration(ms) * time.Millisecond

	var start time.Time
	if ms != 0 && ms != InfiniteMillis {
		start = clock.Now()
	}

	s := NewSpinner(cfg)
	for {
		if cond() {
			return true
		}
		if ms == 0 {
			return false
		}
		s.SpinOnce()
		// Reading the clock is skipped while the spinner is still in its
		// tight spin phase.
		if ms != InfiniteMillis && s.NextWillYield() && clock.Since(start) >= timeout {
			return false
		}
	}
}
