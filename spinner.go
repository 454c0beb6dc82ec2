// Package spinwait provides an adaptive busy wait. A Spinner escalates from
// pause instructions to goroutine yields to short sleeps as a wait grows, and a
// Poller drives a Spinner until a condition holds or a timeout expires.
//
// A Spinner is meant to be created for one wait and thrown away afterwards:
//
//	var s spinwait.Spinner
//	for !ready() {
//		s.SpinOnce()
//	}
package spinwait

import (
	"fmt"
	"math"
)

// Spinner holds the state of a single wait. The zero value is ready to use
// with DefaultConfig. It is not safe for concurrent use and must be Reset
// before it is reused for an unrelated wait.
type Spinner struct {
	count uint32
	cfg   *Config
}

// NewSpinner returns a Spinner bound to cfg, nil means DefaultConfig.
func NewSpinner(cfg *Config) Spinner {
	return Spinner{cfg: cfg}
}

// Count is the number of steps taken since creation or the last Reset.
func (s *Spinner) Count() uint32 {
	return s.count
}

// NextWillYield reports whether the next step yields or sleeps instead of
// spinning. It is also true whenever only one processor is available.
func (s *Spinner) NextWillYield() bool {
	return s.count >= YieldThreshold || s.config().SingleProcessor
}

// Reset puts the spinner back at the start of the spin phase.
func (s *Spinner) Reset() {
	s.count = 0
}

// SpinOnce performs one step of the escalation with DefaultSleep1Threshold.
func (s *Spinner) SpinOnce() {
	s.spinOnce(DefaultSleep1Threshold)
}

// SpinOnceWith performs one step that starts sleeping once the count reaches
// sleepThreshold. -1 disables sleeping, values below YieldThreshold are raised
// to it.
func (s *Spinner) SpinOnceWith(sleepThreshold int) error {
	if sleepThreshold < -1 {
		return fmt.Errorf("sleep threshold %d must be >= -1: %w", sleepThreshold, ErrInvalidArgument)
	}
	if sleepThreshold >= 0 && sleepThreshold < YieldThreshold {
		sleepThreshold = YieldThreshold
	}
	s.spinOnce(sleepThreshold)
	return nil
}

// spinOnce expects sleepThreshold to be -1 or >= YieldThreshold.
func (s *Spinner) spinOnce(sleepThreshold int) {
	cfg := s.config()
	p := cfg.platform()
	count := int64(s.count)
	thr := int64(sleepThreshold)
	sleeping := thr >= 0 && count >= thr

	// Past YieldThreshold, steps alternate between yielding and spinning
	// until sleeping starts.
	if cfg.SingleProcessor || (count >= YieldThreshold && (sleeping || (count-YieldThreshold)%2 == 0)) {
		switch {
		case sleeping:
			ms := count - thr + 1
			if ms > MaxSleepMillis {
				ms = MaxSleepMillis
			}
			p.Sleep(int(ms))
		default:
			yields := count
			if count >= YieldThreshold {
				yields = (count - YieldThreshold) / 2
			}
			// every Sleep0Period-th yield goes to any thread of the system
			if yields%Sleep0Period == Sleep0Period-1 {
				p.YieldAny()
			} else {
				p.YieldSameAffinity()
			}
		}
	} else {
		p.SpinHint(spinIterations(s.count))
	}

	if s.count == math.MaxUint32 {
		s.count = YieldThreshold
	} else {
		s.count++
	}
}

// spinIterations is 2^count capped at MaxSpinIterationsPerStep.
func spinIterations(count uint32) int {
	if count > 30 {
		return MaxSpinIterationsPerStep
	}
	n := 1 << count
	if n > MaxSpinIterationsPerStep {
		n = MaxSpinIterationsPerStep
	}
	return n
}

func (s *Spinner) config() *Config {
	if s.cfg == nil {
		s.cfg = DefaultConfig()
	}
	return s.cfg
}
