package core

import "time"

// TimeSource returns the current time. Tests swap it for a manual source.
type TimeSource func() time.Time

// Clock measures elapsed wall time in seconds since Start.
type Clock struct {
	now       TimeSource
	startTime time.Time
	lastTime  time.Time
	elapsed   float64
	running   bool
}

func NewClock() *Clock {
	return NewClockWithSource(time.Now)
}

func NewClockWithSource(now TimeSource) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.running {
		c.elapsed = c.now().Sub(c.startTime).Seconds()
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.now()
	c.lastTime = c.startTime
	c.elapsed = 0
	c.running = true
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.running = false
}

// Elapsed returns the seconds between Start and the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Running reports whether Start was called without a matching Stop.
func (c *Clock) Running() bool {
	return c.running
}

// Lap returns the seconds since the previous Lap (or Start) and moves the
// lap mark forward. A stopped clock is started and reports zero.
func (c *Clock) Lap() float64 {
	if !c.running {
		c.Start()
		return 0
	}
	now := c.now()
	lap := now.Sub(c.lastTime).Seconds()
	c.lastTime = now
	c.elapsed = now.Sub(c.startTime).Seconds()
	return lap
}

// ManualTime is a TimeSource that only moves when told to.
type ManualTime struct {
	current time.Time
}

func NewManualTime(start time.Time) *ManualTime {
	return &ManualTime{current: start}
}

func (m *ManualTime) Now() time.Time {
	return m.current
}

func (m *ManualTime) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

// AdvanceSeconds moves the source forward by a fractional number of seconds.
func (m *ManualTime) AdvanceSeconds(s float64) {
	m.Advance(time.Duration(s * float64(time.Second)))
}
