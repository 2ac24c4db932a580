// Package clock supplies the elapsed time that drives the animation.
package clock

import "time"

// Clock reports monotonic time elapsed since it was started.
type Clock interface {
	Now() time.Duration
}

// System reads the process monotonic clock.
type System struct {
	start time.Time
}

func NewSystem() *System {
	return &System{start: time.Now()}
}

func (c *System) Now() time.Duration { return time.Since(c.start) }

// Manual is a synthetic clock that only moves when told to.
// Headless rendering and tests step it one frame at a time.
type Manual struct {
	now time.Duration
}

func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

func (c *Manual) Now() time.Duration { return c.now }

func (c *Manual) Advance(d time.Duration) { c.now += d }

func (c *Manual) Set(t time.Duration) { c.now = t }

// FrameInterval is the period of a refresh rate given in frames per second.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
