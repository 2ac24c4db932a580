package timeline

import (
	"time"

	"github.com/san-kum/asciikey/internal/camera"
	"github.com/san-kum/asciikey/internal/scene"
)

// State is everything the timeline remembers between ticks.
type State struct {
	Phase      Phase
	PhaseStart time.Duration
	// Progress is the clamped progress computed by the last Advance.
	Progress float64
	Camera   camera.Mode
	// Cycle counts completed cycles.
	Cycle int

	DoorProgress float64
	DoorOpen     bool
	DoorOpenedAt time.Duration
	// Released holds each ball's release time once the door is open.
	Released [scene.BallCount]time.Duration
	Passed   [scene.BallCount]bool

	// HandsSince is only meaningful while HandsArmed is set.
	HandsSince time.Duration
	HandsArmed bool
}

// Initial is the state at the start of a cycle.
func Initial(now time.Duration) State {
	return State{Phase: Ball, PhaseStart: now, Camera: camera.Front}
}

// Elapsed is the time spent in the current phase.
func (s State) Elapsed(now time.Duration) time.Duration {
	return now - s.PhaseStart
}

// InFlight counts released balls that have not yet passed the camera.
func (s State) InFlight(now time.Duration) int {
	if !s.DoorOpen {
		return 0
	}
	n := 0
	for i, r := range s.Released {
		if now >= r && !s.Passed[i] {
			n++
		}
	}
	return n
}

// AllPassed reports whether every ball has flown past the camera.
func (s State) AllPassed() bool {
	for _, p := range s.Passed {
		if !p {
			return false
		}
	}
	return true
}
