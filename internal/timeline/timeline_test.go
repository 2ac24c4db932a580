package timeline_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/asciikey/internal/camera"
	"github.com/san-kum/asciikey/internal/scene"
	"github.com/san-kum/asciikey/internal/timeline"
)

const frame = 16 * time.Millisecond

// runUntil advances s one frame at a time until stop returns true or limit ticks pass.
func runUntil(s timeline.State, reg *scene.Registry, now time.Duration, limit int, stop func(timeline.State, time.Duration) bool) (timeline.State, time.Duration) {
	for i := 0; i < limit; i++ {
		now += frame
		s = timeline.Advance(s, reg, now)
		if stop(s, now) {
			return s, now
		}
	}
	Fail("timeline did not reach the expected state")
	return s, now
}

var _ = Describe("Progress", func() {
	It("clamps to [0, 1]", func() {
		Expect(timeline.Progress(-time.Second, time.Second)).To(Equal(0.0))
		Expect(timeline.Progress(0, time.Second)).To(Equal(0.0))
		Expect(timeline.Progress(500*time.Millisecond, time.Second)).To(BeNumerically("~", 0.5, 1e-12))
		Expect(timeline.Progress(time.Hour, time.Second)).To(Equal(1.0))
		Expect(timeline.Progress(time.Second, 0)).To(Equal(0.0))
	})

	It("stays in range however large the frame gaps are", func() {
		reg := scene.Build()
		s := timeline.Reset(reg, 0)
		now := time.Duration(0)
		gaps := []time.Duration{frame, 3 * time.Second, frame, time.Hour, 7 * time.Millisecond, 90 * time.Second}
		for i := 0; i < 2000; i++ {
			now += gaps[i%len(gaps)]
			s = timeline.Advance(s, reg, now)
			Expect(s.Progress).To(BeNumerically(">=", 0))
			Expect(s.Progress).To(BeNumerically("<=", 1))
		}
	})
})

var _ = Describe("Phase", func() {
	It("has the nominal durations", func() {
		Expect(timeline.Ball.Duration()).To(Equal(5000 * time.Millisecond))
		Expect(timeline.GroundToKey.Duration()).To(Equal(4000 * time.Millisecond))
		Expect(timeline.KeyJump.Duration()).To(Equal(2000 * time.Millisecond))
		Expect(timeline.KeyToDoor.Duration()).To(Equal(3000 * time.Millisecond))
	})

	It("cycles in a fixed order", func() {
		Expect(timeline.Ball.Next()).To(Equal(timeline.GroundToKey))
		Expect(timeline.GroundToKey.Next()).To(Equal(timeline.KeyJump))
		Expect(timeline.KeyJump.Next()).To(Equal(timeline.KeyToDoor))
		Expect(timeline.KeyToDoor.Next()).To(Equal(timeline.Ball))
	})
})

var _ = Describe("Advance", func() {
	var reg *scene.Registry

	BeforeEach(func() {
		reg = scene.Build()
	})

	It("visits every phase in order across cycles", func() {
		s := timeline.Reset(reg, 0)
		now := time.Duration(0)
		seen := []timeline.Phase{s.Phase}
		for i := 0; i < 10000 && s.Cycle < 2; i++ {
			now += frame
			s = timeline.Advance(s, reg, now)
			if s.Phase != seen[len(seen)-1] {
				seen = append(seen, s.Phase)
			}
		}
		Expect(seen).To(Equal([]timeline.Phase{
			timeline.Ball, timeline.GroundToKey, timeline.KeyJump, timeline.KeyToDoor,
			timeline.Ball, timeline.GroundToKey, timeline.KeyJump, timeline.KeyToDoor,
			timeline.Ball,
		}))
	})

	It("never skips a phase after a huge frame gap", func() {
		s := timeline.State{Phase: timeline.GroundToKey, PhaseStart: 0}
		s = timeline.Advance(s, reg, time.Hour)
		Expect(s.Phase).To(Equal(timeline.KeyJump))
		Expect(s.PhaseStart).To(Equal(time.Hour))

		s = timeline.Advance(s, reg, 2*time.Hour)
		Expect(s.Phase).To(Equal(timeline.KeyToDoor))
	})

	It("restores the initial scene after KeyToDoor times out", func() {
		s := timeline.State{Phase: timeline.KeyToDoor, PhaseStart: 0, Cycle: 3}
		s = timeline.Advance(s, reg, 1500*time.Millisecond)
		Expect(reg.MustGet(scene.Key).Visible).To(BeTrue())

		end := 3001 * time.Millisecond
		s = timeline.Advance(s, reg, end)
		Expect(s.Phase).To(Equal(timeline.Ball))
		Expect(s.Cycle).To(Equal(4))

		want := timeline.Initial(end)
		want.Cycle = 4
		Expect(s).To(Equal(want))

		for _, o := range reg.Objects() {
			tr, visible := reg.Initial(o.ID)
			Expect(o.Transform).To(Equal(tr), "transform of %s", o.ID)
			Expect(o.Visible).To(Equal(visible), "visibility of %s", o.ID)
		}
	})

	Describe("Ball phase", func() {
		It("starts with the door fully closed", func() {
			s := timeline.Reset(reg, 0)
			s = timeline.Advance(s, reg, 0)
			door := reg.MustGet(scene.Door)
			Expect(door.Transform.Scale.X).To(Equal(1.0))
			Expect(door.Visible).To(BeTrue())
			Expect(s.DoorOpen).To(BeFalse())
		})

		It("hides the door and schedules staggered releases once open", func() {
			s := timeline.Reset(reg, 0)
			s, now := runUntil(s, reg, 0, 500, func(s timeline.State, _ time.Duration) bool { return s.DoorOpen })

			Expect(reg.MustGet(scene.Door).Visible).To(BeFalse())
			Expect(s.DoorOpenedAt).To(Equal(now))
			for i, r := range s.Released {
				Expect(r).To(Equal(now + time.Duration(i)*timeline.BallStagger))
			}
		})

		It("never lets the door scale collapse below the floor", func() {
			s := timeline.Reset(reg, 0)
			runUntil(s, reg, 0, 500, func(s timeline.State, _ time.Duration) bool {
				Expect(reg.MustGet(scene.Door).Transform.Scale.X).To(BeNumerically(">=", timeline.MinScale))
				return s.DoorOpen
			})
		})

		It("releases balls in index order, no earlier than their slot", func() {
			s := timeline.Reset(reg, 0)
			var firstSeen [scene.BallCount]time.Duration
			var opened time.Duration
			s, _ = runUntil(s, reg, 0, 5000, func(s timeline.State, now time.Duration) bool {
				if s.DoorOpen && opened == 0 {
					opened = s.DoorOpenedAt
				}
				for i, id := range scene.BallIDs {
					if reg.MustGet(id).Visible && firstSeen[i] == 0 {
						firstSeen[i] = now
					}
				}
				return s.Phase != timeline.Ball
			})

			Expect(s.Phase).To(Equal(timeline.GroundToKey))
			for i := range firstSeen {
				Expect(firstSeen[i]).To(BeNumerically(">=", opened+time.Duration(i)*timeline.BallStagger))
				if i > 0 {
					Expect(firstSeen[i]).To(BeNumerically(">", firstSeen[i-1]))
				}
			}
		})

		It("ends only once every ball has passed the camera", func() {
			s := timeline.Reset(reg, 0)
			s, now := runUntil(s, reg, 0, 5000, func(s timeline.State, _ time.Duration) bool {
				return s.DoorOpen
			})
			// Ball 5 has not been released yet, so the phase must go on.
			Expect(s.InFlight(now)).To(BeNumerically("<", scene.BallCount))
			s, _ = runUntil(s, reg, now, 5000, func(s timeline.State, _ time.Duration) bool {
				return s.Phase != timeline.Ball
			})
			for _, id := range scene.BallIDs {
				Expect(reg.MustGet(id).Visible).To(BeFalse())
				Expect(reg.MustGet(id).Transform.Position.Z).To(BeNumerically(">=", timeline.ProximityZ))
			}
		})

		It("zooms the ground out with phase progress", func() {
			s := timeline.Reset(reg, 0)
			timeline.Advance(s, reg, 2500*time.Millisecond)
			Expect(reg.MustGet(scene.Ground).Transform.Scale.X).To(BeNumerically("~", 1.75, 1e-9))
		})
	})

	Describe("GroundToKey phase", func() {
		It("keeps the key hidden and the camera in front during the first half", func() {
			s := timeline.State{Phase: timeline.GroundToKey, Camera: camera.Split}
			s = timeline.Advance(s, reg, 1000*time.Millisecond)
			Expect(reg.MustGet(scene.Key).Visible).To(BeFalse())
			Expect(s.Camera).To(Equal(camera.Front))
			Expect(reg.MustGet(scene.Ground).Transform.Scale.X).To(BeNumerically("~", 1-0.99*0.25, 1e-9))
		})

		It("morphs the key in at progress 0.6", func() {
			s := timeline.State{Phase: timeline.GroundToKey}
			s = timeline.Advance(s, reg, 2400*time.Millisecond)
			key := reg.MustGet(scene.Key)
			Expect(key.Visible).To(BeTrue())
			Expect(key.Transform.Scale.X).To(BeNumerically("~", 0.2, 1e-9))
			Expect(key.Transform.Scale.Y).To(BeNumerically("~", 0.2, 1e-9))
			Expect(key.Transform.Rotation.Y).To(BeNumerically("~", 0.8*math.Pi, 1e-9))
			Expect(s.Camera).To(Equal(camera.Front))
		})

		It("splits the camera once the key morph passes halfway", func() {
			s := timeline.State{Phase: timeline.GroundToKey}
			s = timeline.Advance(s, reg, 3200*time.Millisecond)
			Expect(s.Camera).To(Equal(camera.Split))
		})

		It("normalises the key and returns to the front camera on timeout", func() {
			s := timeline.State{Phase: timeline.GroundToKey}
			s = timeline.Advance(s, reg, 3900*time.Millisecond)
			Expect(s.Camera).To(Equal(camera.Split))

			s = timeline.Advance(s, reg, 4001*time.Millisecond)
			key := reg.MustGet(scene.Key)
			Expect(s.Phase).To(Equal(timeline.KeyJump))
			Expect(s.Camera).To(Equal(camera.Front))
			Expect(key.Transform.Scale).To(Equal(scene.Uniform(1)))
			Expect(key.Transform.Rotation).To(Equal(scene.Vec3{}))
		})
	})

	Describe("KeyJump phase", func() {
		It("follows a symmetric arc peaking at the midpoint", func() {
			for t := 0.0; t <= 0.5; t += 0.05 {
				Expect(timeline.JumpY(t)).To(BeNumerically("~", timeline.JumpY(1-t), 1e-9))
			}
			Expect(timeline.JumpY(0.5)).To(BeNumerically("~", -1, 1e-12))
			Expect(timeline.JumpY(0)).To(BeNumerically("~", scene.GroundY, 1e-12))
			for t := 0.0; t <= 1; t += 0.01 {
				Expect(timeline.JumpY(t)).To(BeNumerically("<=", -1+1e-12))
			}
		})

		It("shows the hands only on the way down", func() {
			s := timeline.State{Phase: timeline.KeyJump}
			step := 10 * time.Millisecond
			var shownAt time.Duration = -1
			for now := time.Duration(0); now <= 2000*time.Millisecond; now += step {
				s = timeline.Advance(s, reg, now)
				left, right := reg.MustGet(scene.HandLeft).Visible, reg.MustGet(scene.HandRight).Visible
				Expect(left).To(Equal(right))
				if s.Progress < 0.5 {
					Expect(left).To(BeFalse(), "hands visible on the way up at %v", now)
				} else {
					Expect(left).To(BeTrue(), "hands hidden on the way down at %v", now)
					if shownAt < 0 {
						shownAt = now
					}
				}
			}
			Expect(shownAt).To(Equal(1000 * time.Millisecond))
			Expect(s.HandsSince).To(Equal(shownAt))
		})

		It("keeps the hands up for the window measured from the first descent tick", func() {
			s := timeline.State{Phase: timeline.KeyJump, HandsArmed: true, HandsSince: -2400 * time.Millisecond}
			timeline.Advance(s, reg, 1500*time.Millisecond)
			Expect(reg.MustGet(scene.HandLeft).Visible).To(BeTrue())

			s = timeline.State{Phase: timeline.KeyJump, HandsArmed: true, HandsSince: -2500 * time.Millisecond}
			timeline.Advance(s, reg, 1500*time.Millisecond)
			Expect(reg.MustGet(scene.HandLeft).Visible).To(BeFalse())
		})

		It("grounds the key and hides the hands on timeout", func() {
			s := timeline.State{Phase: timeline.KeyJump}
			s = timeline.Advance(s, reg, 1500*time.Millisecond)
			s = timeline.Advance(s, reg, 2001*time.Millisecond)
			Expect(s.Phase).To(Equal(timeline.KeyToDoor))
			Expect(s.HandsArmed).To(BeFalse())
			Expect(reg.MustGet(scene.Key).Transform.Position.Y).To(Equal(scene.GroundY))
			Expect(reg.MustGet(scene.HandLeft).Visible).To(BeFalse())
			Expect(reg.MustGet(scene.HandRight).Visible).To(BeFalse())
		})
	})

	Describe("KeyToDoor phase", func() {
		It("shrinks the key while the door grows back", func() {
			s := timeline.State{Phase: timeline.KeyToDoor}
			timeline.Advance(s, reg, 1500*time.Millisecond)
			key, door := reg.MustGet(scene.Key), reg.MustGet(scene.Door)
			Expect(key.Visible).To(BeTrue())
			Expect(door.Visible).To(BeTrue())
			Expect(key.Transform.Scale.X).To(BeNumerically("~", 0.5, 1e-9))
			Expect(key.Transform.Rotation.Y).To(BeNumerically("~", math.Pi/2, 1e-9))
			Expect(door.Transform.Scale).To(Equal(scene.Vec3{X: 0.5, Y: 1, Z: 1}))
		})
	})

	It("uses the split camera only in the back half of GroundToKey", func() {
		s := timeline.Reset(reg, 0)
		now := time.Duration(0)
		for i := 0; i < 20000 && s.Cycle < 1; i++ {
			now += frame
			s = timeline.Advance(s, reg, now)
			if s.Camera == camera.Split {
				Expect(s.Phase).To(Equal(timeline.GroundToKey))
				Expect(s.Progress).To(BeNumerically(">", 0.75))
			}
		}
		Expect(s.Cycle).To(Equal(1))
	})
})

var _ = Describe("Timeline", func() {
	It("tracks state and camera mode for the loop", func() {
		reg := scene.Build()
		reg.MustGet(scene.Key).Visible = true
		tl := timeline.New(reg, time.Second)
		Expect(reg.MustGet(scene.Key).Visible).To(BeFalse())
		Expect(tl.State().PhaseStart).To(Equal(time.Second))
		Expect(tl.CameraMode()).To(Equal(camera.Front))

		s := tl.Advance(time.Second + frame)
		Expect(s).To(Equal(tl.State()))
		Expect(tl.Registry()).To(BeIdenticalTo(reg))
	})
})
