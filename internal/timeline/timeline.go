package timeline

import (
	"math"
	"time"

	"github.com/san-kum/asciikey/internal/camera"
	"github.com/san-kum/asciikey/internal/scene"
)

const (
	// DoorRate is how much the door opens per tick.
	DoorRate = 0.01
	// BallStagger separates consecutive ball releases.
	BallStagger = 350 * time.Millisecond
	// HandsWindow is how long the hands stay up once the key starts falling.
	HandsWindow = 4000 * time.Millisecond
	// MinScale keeps shrinking objects away from degenerate geometry.
	MinScale = 0.05
	// GroundVanish is the ground scale reached at the end of GroundToKey.
	GroundVanish = 0.01
	// JumpHeight is the key's peak offset above the ground.
	JumpHeight   = 6.0
	bobRate      = 0.002
	bobAmplitude = 1.5
)

// ProximityZ is the depth past which a ball is considered to have passed the camera.
var ProximityZ = camera.FrontPosition.Z - 2

// BallSpeed is the distance ball i travels towards the camera per tick.
func BallSpeed(i int) float64 { return 0.4 + 0.1*float64(i) }

// JumpY is the key height at jump progress t. The arc is symmetric about t=0.5.
func JumpY(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return scene.GroundY + JumpHeight*math.Sin(math.Pi*t)
	}
	return scene.GroundY + JumpHeight*math.Sin(math.Pi*(1-t))
}

// Advance moves the timeline to now, mutating objects in r, and returns the new state.
// At most one phase transition happens per call; the next phase starts at now.
func Advance(s State, r *scene.Registry, now time.Duration) State {
	elapsed := s.Elapsed(now)
	s.Progress = Progress(elapsed, s.Phase.Duration())
	if rules[s.Phase](&s, r, now, elapsed) {
		s = nextPhase(s, r, now)
	}
	return s
}

// Reset restores every object and returns the initial state of a new cycle.
func Reset(r *scene.Registry, now time.Duration) State {
	r.Reset()
	return Initial(now)
}

type rule func(s *State, r *scene.Registry, now, elapsed time.Duration) bool

var rules = [PhaseCount]rule{advanceBall, advanceGroundToKey, advanceKeyJump, advanceKeyToDoor}

func advanceBall(s *State, r *scene.Registry, now, _ time.Duration) bool {
	door := r.MustGet(scene.Door)
	if !s.DoorOpen {
		if s.DoorProgress >= 1 {
			s.DoorOpen = true
			s.DoorOpenedAt = now
			door.Visible = false
			for i := range s.Released {
				s.Released[i] = now + time.Duration(i)*BallStagger
			}
		} else {
			door.Transform.Scale.X = math.Max(1-s.DoorProgress, MinScale)
			s.DoorProgress = math.Min(1, s.DoorProgress+DoorRate)
		}
	}

	g := scene.GroundScale - (scene.GroundScale-1)*s.Progress
	ground := r.MustGet(scene.Ground)
	ground.Transform.Scale = scene.Vec3{X: g, Y: 1, Z: g}

	if !s.DoorOpen {
		return false
	}
	for i, id := range scene.BallIDs {
		b := r.MustGet(id)
		if s.Passed[i] {
			b.Visible = false
			continue
		}
		if now < s.Released[i] {
			continue
		}
		b.Visible = true
		b.Transform.Position.Z += BallSpeed(i)
		b.Transform.Position.Y = math.Sin(ms(now)*bobRate+float64(i)) * bobAmplitude
		if b.Transform.Position.Z >= ProximityZ {
			b.Visible = false
			s.Passed[i] = true
		}
	}
	return s.AllPassed()
}

func advanceGroundToKey(s *State, r *scene.Registry, _, elapsed time.Duration) bool {
	t := s.Progress
	g := 1 - (1-GroundVanish)*t
	r.MustGet(scene.Ground).Transform.Scale = scene.Vec3{X: g, Y: 1, Z: g}

	key := r.MustGet(scene.Key)
	if t > 0.5 {
		kt := (t - 0.5) * 2
		key.Visible = true
		key.Transform.Scale = scene.Uniform(math.Max(kt, MinScale))
		key.Transform.Rotation.Y = math.Pi * (1 - kt)
		if kt > 0.5 {
			s.Camera = camera.Split
		} else {
			s.Camera = camera.Front
		}
	} else {
		key.Visible = false
		s.Camera = camera.Front
	}
	return elapsed > GroundToKey.Duration()
}

func advanceKeyJump(s *State, r *scene.Registry, now, elapsed time.Duration) bool {
	key := r.MustGet(scene.Key)
	key.Visible = true
	key.Transform.Position.Y = JumpY(s.Progress)

	show := false
	if s.Progress >= 0.5 {
		if !s.HandsArmed {
			s.HandsArmed = true
			s.HandsSince = now
		}
		show = now-s.HandsSince < HandsWindow
	} else {
		s.HandsArmed = false
	}
	setHands(r, show)
	return elapsed > KeyJump.Duration()
}

func advanceKeyToDoor(s *State, r *scene.Registry, _, elapsed time.Duration) bool {
	t := s.Progress
	key, door := r.MustGet(scene.Key), r.MustGet(scene.Door)
	key.Visible = true
	door.Visible = true
	key.Transform.Scale = scene.Uniform(math.Max(1-t, MinScale))
	key.Transform.Rotation.Y = math.Pi * t
	door.Transform.Scale = scene.Vec3{X: math.Max(t, MinScale), Y: 1, Z: 1}
	return elapsed > KeyToDoor.Duration()
}

func setHands(r *scene.Registry, visible bool) {
	r.MustGet(scene.HandLeft).Visible = visible
	r.MustGet(scene.HandRight).Visible = visible
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
