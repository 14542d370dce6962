package render

import "time"

// DefaultStep is the nominal frame step of the fixed clock, about 60 fps.
const DefaultStep = 0.016

// Clock advances the animation time once per frame.
type Clock interface {
	// Advance moves the clock forward for a frame drawn at now and returns
	// the new animation time in seconds.
	Advance(now time.Time) float64
}

// FixedStep advances by Step every frame regardless of wall time. The
// effects are periodic and cosmetic, so dropped frames only slow them down.
type FixedStep struct {
	Step float64
	t    float64
}

// Advance implements Clock.
func (c *FixedStep) Advance(time.Time) float64 {
	step := c.Step
	if step <= 0 {
		step = DefaultStep
	}
	c.t += step
	return c.t
}

// Measured advances by the wall time elapsed since the previous frame. The
// first frame advances by DefaultStep.
type Measured struct {
	last time.Time
	t    float64
}

// Advance implements Clock.
func (c *Measured) Advance(now time.Time) float64 {
	if c.last.IsZero() || !now.After(c.last) {
		c.t += DefaultStep
	} else {
		c.t += now.Sub(c.last).Seconds()
	}
	c.last = now
	return c.t
}
