package core

import (
	"fmt"

	"github.com/spaghettifunk/anima2d/engine/containers"
)

// FixedStepFunc runs one simulation step of exactly fixedDelta seconds.
type FixedStepFunc func(fixedDelta float64)

// SchedulerConfig holds the timing parameters of a FrameScheduler. All
// durations are in seconds.
type SchedulerConfig struct {
	FixedDelta         float64 `toml:"fixed_delta" yaml:"fixed_delta"`
	MinDelta           float64 `toml:"min_delta" yaml:"min_delta"`
	MaxDelta           float64 `toml:"max_delta" yaml:"max_delta"`
	WindowSize         int     `toml:"window_size" yaml:"window_size"`
	MaxFixedIterations int     `toml:"max_fixed_iterations" yaml:"max_fixed_iterations"`
}

// DefaultSchedulerConfig is a 60Hz simulation with a 10 frame smoothing window.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		FixedDelta:         1.0 / 60.0,
		MinDelta:           1e-6,
		MaxDelta:           0.25,
		WindowSize:         10,
		MaxFixedIterations: 8,
	}
}

func (c SchedulerConfig) Validate() error {
	switch {
	case c.FixedDelta <= 0:
		return fmt.Errorf("%w: fixed delta must be positive, got %v", ErrInvalidSchedulerConfig, c.FixedDelta)
	case c.MinDelta < 0:
		return fmt.Errorf("%w: min delta must not be negative, got %v", ErrInvalidSchedulerConfig, c.MinDelta)
	case c.MaxDelta < c.MinDelta:
		return fmt.Errorf("%w: max delta %v is below min delta %v", ErrInvalidSchedulerConfig, c.MaxDelta, c.MinDelta)
	case c.WindowSize <= 0:
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidSchedulerConfig, c.WindowSize)
	case c.MaxFixedIterations <= 0:
		return fmt.Errorf("%w: max fixed iterations must be positive, got %d", ErrInvalidSchedulerConfig, c.MaxFixedIterations)
	}
	return nil
}

// FrameScheduler turns noisy wall-clock frame durations into a smoothed
// variable delta plus a bounded number of fixed simulation steps.
//
// Every frame the raw duration is clamped to [MinDelta, MaxDelta] and pushed
// into a sliding window; the smoothed delta is the mean of the filled part of
// that window. The smoothed delta feeds an accumulator that is drained in
// FixedDelta steps, at most MaxFixedIterations per frame. What is left over
// becomes the interpolation factor for rendering.
type FrameScheduler struct {
	cfg         SchedulerConfig
	clock       *Clock
	samples     *containers.RingBuffer[float64]
	delta       float64
	accumulator float64
}

// NewFrameScheduler validates cfg and creates a scheduler reading time from
// clock. A nil clock uses the wall clock.
func NewFrameScheduler(cfg SchedulerConfig, clock *Clock) (*FrameScheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = NewClock()
	}
	return &FrameScheduler{
		cfg:     cfg,
		clock:   clock,
		samples: containers.NewRingBuffer[float64](cfg.WindowSize),
	}, nil
}

// Tick measures the wall time since the previous Tick and advances the
// scheduler by it. The first Tick after construction measures zero, which is
// clamped up to MinDelta.
func (s *FrameScheduler) Tick(fixed FixedStepFunc) (delta float64, steps int, alpha float64) {
	return s.Advance(s.clock.Lap(), fixed)
}

// Advance feeds one raw frame duration through the scheduler. fixed is called
// once per fixed step; a nil fixed still consumes the accumulated time.
func (s *FrameScheduler) Advance(raw float64, fixed FixedStepFunc) (delta float64, steps int, alpha float64) {
	clamped := min(max(raw, s.cfg.MinDelta), s.cfg.MaxDelta)
	s.samples.Push(clamped)

	sum := 0.0
	s.samples.Each(func(v float64) { sum += v })
	s.delta = sum / float64(s.samples.Len())

	s.accumulator += s.delta
	for s.accumulator >= s.cfg.FixedDelta && steps < s.cfg.MaxFixedIterations {
		if fixed != nil {
			fixed(s.cfg.FixedDelta)
		}
		s.accumulator -= s.cfg.FixedDelta
		steps++
	}

	// The iteration cap was hit: keep the backlog bounded so repeated stalls
	// cannot grow it without limit.
	if s.accumulator >= s.cfg.FixedDelta && s.accumulator > clamped {
		s.accumulator = max(clamped, s.cfg.FixedDelta)
	}

	alpha = min(s.accumulator/s.cfg.FixedDelta, 1)
	return s.delta, steps, alpha
}

// Reset drops the smoothing history and the accumulated time.
func (s *FrameScheduler) Reset() {
	s.samples.Reset()
	s.delta = 0
	s.accumulator = 0
	s.clock.Start()
}

func (s *FrameScheduler) Accumulator() float64 {
	return s.accumulator
}

func (s *FrameScheduler) FixedDelta() float64 {
	return s.cfg.FixedDelta
}

// Delta is the smoothed delta computed by the last Tick or Advance.
func (s *FrameScheduler) Delta() float64 {
	return s.delta
}

// Samples returns how many raw samples the smoothing window currently holds.
func (s *FrameScheduler) Samples() int {
	return s.samples.Len()
}

func (s *FrameScheduler) Config() SchedulerConfig {
	return s.cfg
}
