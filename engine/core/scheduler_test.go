package core

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func newTestScheduler(t *testing.T, mutate func(*SchedulerConfig)) *FrameScheduler {
	t.Helper()
	cfg := DefaultSchedulerConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewFrameScheduler(cfg, nil)
	require.NoError(t, err)
	return s
}

func TestNewFrameSchedulerRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SchedulerConfig)
	}{
		{"zero fixed delta", func(c *SchedulerConfig) { c.FixedDelta = 0 }},
		{"negative fixed delta", func(c *SchedulerConfig) { c.FixedDelta = -1.0 / 60 }},
		{"negative min delta", func(c *SchedulerConfig) { c.MinDelta = -1 }},
		{"max below min", func(c *SchedulerConfig) { c.MaxDelta = c.MinDelta / 2 }},
		{"empty window", func(c *SchedulerConfig) { c.WindowSize = 0 }},
		{"no fixed iterations", func(c *SchedulerConfig) { c.MaxFixedIterations = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSchedulerConfig()
			tt.mutate(&cfg)
			s, err := NewFrameScheduler(cfg, nil)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrInvalidSchedulerConfig)
		})
	}
}

func TestSmoothedDeltaIsMeanOfFilledWindow(t *testing.T) {
	s := newTestScheduler(t, func(c *SchedulerConfig) { c.WindowSize = 4 })
	raws := []float64{0.010, 0.020, 0.030, 0.040, 0.050, 0.060, 0.5}
	var history []float64
	for _, raw := range raws {
		delta, _, _ := s.Advance(raw, nil)
		history = append(history, math.Min(math.Max(raw, 1e-6), 0.25))

		window := history
		if len(window) > 4 {
			window = window[len(window)-4:]
		}
		want := 0.0
		for _, v := range window {
			want += v
		}
		want /= float64(len(window))
		assert.InDelta(t, want, delta, eps, "raw %v", raw)
	}
	assert.Equal(t, 4, s.Samples())
}

func TestFirstFrameIsNotDilutedByEmptySlots(t *testing.T) {
	s := newTestScheduler(t, nil)
	delta, _, _ := s.Advance(0.016, nil)
	assert.InDelta(t, 0.016, delta, eps)
}

func TestClampBounds(t *testing.T) {
	s := newTestScheduler(t, nil)
	delta, _, _ := s.Advance(-3, nil)
	assert.InDelta(t, 1e-6, delta, eps)

	s = newTestScheduler(t, nil)
	delta, _, _ = s.Advance(10, nil)
	assert.InDelta(t, 0.25, delta, eps)
}

func TestAccumulatorInvariantWithoutCap(t *testing.T) {
	s := newTestScheduler(t, nil)
	fixed := s.FixedDelta()
	raws := []float64{0.001, 0.016, 0.017, 0.033, 0.005, 0.020, 0.016, 0.016, 0.040, 0.002}
	total := 0
	for _, raw := range raws {
		_, steps, alpha := s.Advance(raw, func(dt float64) {
			assert.Equal(t, fixed, dt)
		})
		total += steps
		assert.LessOrEqual(t, steps, 8)
		assert.GreaterOrEqual(t, s.Accumulator(), 0.0)
		assert.Less(t, s.Accumulator(), fixed)
		assert.InDelta(t, s.Accumulator()/fixed, alpha, eps)
		assert.GreaterOrEqual(t, alpha, 0.0)
		assert.Less(t, alpha, 1.0)
	}
	assert.Positive(t, total)
}

func TestStepsPerFrameNeverExceedCap(t *testing.T) {
	s := newTestScheduler(t, func(c *SchedulerConfig) { c.MaxFixedIterations = 3 })
	for i := 0; i < 50; i++ {
		_, steps, alpha := s.Advance(0.25, nil)
		assert.LessOrEqual(t, steps, 3)
		assert.LessOrEqual(t, alpha, 1.0)
		// backlog stays bounded by one clamped frame
		assert.LessOrEqual(t, s.Accumulator(), 0.25+eps)
	}
}

func TestStallRunsCappedStepsAndKeepsBacklog(t *testing.T) {
	s := newTestScheduler(t, nil)
	calls := 0
	delta, steps, alpha := s.Advance(0.5, func(float64) { calls++ })

	assert.InDelta(t, 0.25, delta, eps)
	assert.Equal(t, 8, steps)
	assert.Equal(t, 8, calls)
	assert.GreaterOrEqual(t, s.Accumulator(), s.FixedDelta())
	assert.InDelta(t, 0.25-8*s.FixedDelta(), s.Accumulator(), eps)
	assert.Equal(t, 1.0, alpha)
}

func TestStepCounterResetsEveryFrame(t *testing.T) {
	s := newTestScheduler(t, nil)
	_, steps, _ := s.Advance(0.5, nil)
	require.Equal(t, 8, steps)
	// the backlog keeps draining at up to the cap per frame
	_, steps, _ = s.Advance(0.25, nil)
	assert.Equal(t, 8, steps)
}

func TestNilFixedStepStillDrains(t *testing.T) {
	s := newTestScheduler(t, nil)
	_, steps, _ := s.Advance(0.045, nil)
	assert.Equal(t, 2, steps)
	assert.Less(t, s.Accumulator(), s.FixedDelta())
}

func TestTickReadsClock(t *testing.T) {
	src := NewManualTime(time.Unix(0, 0))
	s, err := NewFrameScheduler(DefaultSchedulerConfig(), NewClockWithSource(src.Now))
	require.NoError(t, err)

	// first tick only starts the clock
	delta, steps, _ := s.Tick(nil)
	assert.InDelta(t, 1e-6, delta, eps)
	assert.Zero(t, steps)

	src.Advance(20 * time.Millisecond)
	_, _, _ = s.Tick(nil)
	assert.Equal(t, 2, s.Samples())
	assert.InDelta(t, (1e-6+0.020)/2, s.Delta(), eps)
}

func TestReset(t *testing.T) {
	s := newTestScheduler(t, nil)
	s.Advance(0.5, nil)
	s.Reset()
	assert.Zero(t, s.Accumulator())
	assert.Zero(t, s.Samples())
	assert.Zero(t, s.Delta())
}
