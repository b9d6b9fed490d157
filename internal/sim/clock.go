package sim

import "time"

// Clock converts wall-clock frame time into a simulation step. The raw
// delta is clamped to MaxDelta before TimeScale is applied, so a stalled
// frame never produces a step larger than MaxDelta*TimeScale.
type Clock struct {
	MaxDelta  float64
	TimeScale float64
	last      time.Time
}

func NewClock(maxDelta, timeScale float64) *Clock {
	return &Clock{MaxDelta: maxDelta, TimeScale: timeScale}
}

// Delta returns the step for a frame observed at now. The first call only
// records the reference time and returns 0.
func (c *Clock) Delta(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	raw := now.Sub(c.last).Seconds()
	c.last = now
	return c.Scale(raw)
}

// Scale clamps a raw delta in seconds and applies the time scale.
// Negative deltas become 0.
func (c *Clock) Scale(raw float64) float64 {
	if !(raw > 0) {
		return 0
	}
	if raw > c.MaxDelta {
		raw = c.MaxDelta
	}
	return raw * c.TimeScale
}

// Restart forgets the reference time, e.g. after a pause.
func (c *Clock) Restart() { c.last = time.Time{} }
