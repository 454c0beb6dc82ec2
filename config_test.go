package spinwait

import (
	"runtime"
	"testing"
)

func TestNewConfig(t *testing.T) {
	r := newRecorder()
	cfg := NewConfig(WithPlatform(r), WithSingleProcessor(true))
	if cfg.Platform != r {
		t.Errorf("TestNewConfig: WithPlatform not applied")
	}
	if !cfg.SingleProcessor {
		t.Errorf("TestNewConfig: WithSingleProcessor not applied")
	}

	cfg = NewConfig(WithPlatform(nil))
	if cfg.Platform == nil {
		t.Errorf("TestNewConfig: nil platform not replaced by OSPlatform()")
	}
	if cfg.SingleProcessor != (ProcessorCount() <= 1) {
		t.Errorf("TestNewConfig: SingleProcessor == %v with %d processors", cfg.SingleProcessor, ProcessorCount())
	}
}

func TestDefaultConfig(t *testing.T) {
	if DefaultConfig() != DefaultConfig() {
		t.Errorf("TestDefaultConfig: probed more than once")
	}
}

func TestProcessorCount(t *testing.T) {
	n := ProcessorCount()
	if n < 1 || n > runtime.GOMAXPROCS(0) {
		t.Errorf("TestProcessorCount: got %d, want in [1, %d]", n, runtime.GOMAXPROCS(0))
	}
}

func TestLiteralConfig(t *testing.T) {
	s := NewSpinner(&Config{})
	for i := 0; i < 2*YieldThreshold; i++ {
		s.SpinOnce()
	}
	if s.Count() != 2*YieldThreshold {
		t.Errorf("TestLiteralConfig: got Count() == %d, want %d", s.Count(), 2*YieldThreshold)
	}
}

func TestOSPlatform(t *testing.T) {
	p := OSPlatform()
	p.SpinHint(0)
	p.SpinHint(MaxSpinIterationsPerStep)
	p.YieldSameAffinity()
	p.YieldAny()

	start := p.Now()
	p.Sleep(1)
	if d := p.Since(start); d.Milliseconds() < 1 {
		t.Errorf("TestOSPlatform: Sleep(1) returned after %v", d)
	}
}
