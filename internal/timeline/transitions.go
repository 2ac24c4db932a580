package timeline

import (
	"time"

	"github.com/san-kum/asciikey/internal/camera"
	"github.com/san-kum/asciikey/internal/scene"
)

// transition describes what happens when a phase times out.
type transition struct {
	exit  func(s *State, r *scene.Registry)
	next  Phase
	entry func(s *State, r *scene.Registry, now time.Duration)
}

var transitions = map[Phase]transition{
	Ball:        {exit: exitBall, next: GroundToKey, entry: enter},
	GroundToKey: {exit: exitGroundToKey, next: KeyJump, entry: enter},
	KeyJump:     {exit: exitKeyJump, next: KeyToDoor, entry: enter},
	KeyToDoor:   {exit: func(*State, *scene.Registry) {}, next: Ball, entry: restart},
}

func nextPhase(s State, r *scene.Registry, now time.Duration) State {
	tr := transitions[s.Phase]
	tr.exit(&s, r)
	s.Phase = tr.next
	tr.entry(&s, r, now)
	return s
}

func enter(s *State, _ *scene.Registry, now time.Duration) {
	s.PhaseStart = now
	s.Progress = 0
	s.Camera = camera.Front
}

// restart is the only place the whole scene is bulk-reset.
func restart(s *State, r *scene.Registry, now time.Duration) {
	cycle := s.Cycle + 1
	*s = Reset(r, now)
	s.Cycle = cycle
}

func exitBall(_ *State, r *scene.Registry) {
	for _, id := range scene.BallIDs {
		r.MustGet(id).Visible = false
	}
}

func exitGroundToKey(s *State, r *scene.Registry) {
	key := r.MustGet(scene.Key)
	key.Transform.Scale = scene.Uniform(1)
	key.Transform.Rotation = scene.Vec3{}
	s.Camera = camera.Front
}

func exitKeyJump(s *State, r *scene.Registry) {
	r.MustGet(scene.Key).Transform.Position.Y = scene.GroundY
	setHands(r, false)
	s.HandsArmed = false
	s.HandsSince = 0
}
