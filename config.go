package spinwait

import (
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/cpu"
)

const (
	// YieldThreshold is the iteration count at which pure spinning gives way
	// to yielding and sleeping.
	YieldThreshold = 10
	// Sleep0Period makes every Nth yield a system wide yield instead of a
	// goroutine yield.
	Sleep0Period = 5
	// DefaultSleep1Threshold is the iteration count at which SpinOnce starts
	// to sleep.
	DefaultSleep1Threshold = 20
	// MaxSpinIterationsPerStep caps the pause instructions issued by one step.
	MaxSpinIterationsPerStep = 35
	// MaxSleepMillis caps a single bounded sleep.
	MaxSleepMillis = 10
)

// Config is the process wide, read-only state the escalation depends on.
// A Config must not be modified after it is handed to a Spinner or Poller.
type Config struct {
	SingleProcessor bool
	Platform        Platform
}

// Option adjusts a Config built by NewConfig.
type Option func(*Config)

// WithPlatform replaces the yield, sleep and clock primitives.
func WithPlatform(p Platform) Option {
	return func(c *Config) {
		c.Platform = p
	}
}

// WithSingleProcessor overrides the probed processor count.
func WithSingleProcessor(single bool) Option {
	return func(c *Config) {
		c.SingleProcessor = single
	}
}

// NewConfig probes the host and applies opts on top.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		SingleProcessor: ProcessorCount() <= 1,
		Platform:        OSPlatform(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Platform == nil {
		c.Platform = OSPlatform()
	}
	return c
}

func (c *Config) platform() Platform {
	if c.Platform == nil {
		return OSPlatform()
	}
	return c.Platform
}

var (
	defaultOnce sync.Once
	defaultCfg  *Config
)

// DefaultConfig returns the config shared by zero value Spinners and Pollers.
// The host is probed on first use only.
func DefaultConfig() *Config {
	defaultOnce.Do(func() {
		defaultCfg = NewConfig()
	})
	return defaultCfg
}

// ProcessorCount reports how many goroutines can run in parallel: the logical
// CPU count bounded by GOMAXPROCS.
func ProcessorCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		n = runtime.NumCPU()
	}
	if procs := runtime.GOMAXPROCS(0); procs < n {
		n = procs
	}
	return n
}
