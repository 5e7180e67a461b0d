package stage

import "time"

// Clock measures per-frame wall-clock time from a monotonic source and
// keeps a frames-per-second estimate updated at a fixed interval.
//
// Call Tick once at the top of every frame; all per-second rates in the
// engine are multiplied by the returned delta so simulation speed does
// not depend on frame rate.
type Clock struct {
	now func() time.Time

	prev    time.Time
	started bool

	fps      float64
	frames   int
	fpsStart time.Time
	interval time.Duration
}

// NewClock creates a clock with a 1-second FPS update interval.
func NewClock() *Clock {
	return &Clock{
		now:      time.Now,
		interval: time.Second,
	}
}

// SetFPSInterval sets how often the FPS estimate is refreshed.
// The interval is clamped to [0, 10] seconds.
func (c *Clock) SetFPSInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	if d > 10*time.Second {
		d = 10 * time.Second
	}
	c.interval = d
}

// Tick advances the clock by one frame and returns the time elapsed
// since the previous Tick, in seconds. The first Tick returns 0.
func (c *Clock) Tick() float32 {
	t := c.now()
	if !c.started {
		c.started = true
		c.prev = t
		c.fpsStart = t
		return 0
	}

	dt := t.Sub(c.prev)
	c.prev = t

	c.frames++
	if elapsed := t.Sub(c.fpsStart); elapsed >= c.interval {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.fpsStart = t
	}

	return float32(dt.Seconds())
}

// FPS returns the most recent frames-per-second estimate.
// It reads 0 until the first interval has elapsed.
func (c *Clock) FPS() float64 {
	return c.fps
}
