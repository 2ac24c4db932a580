package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/san-kum/asciikey/internal/camera"
	"github.com/san-kum/asciikey/internal/clock"
	"github.com/san-kum/asciikey/internal/render"
	"github.com/san-kum/asciikey/internal/scene"
	"github.com/san-kum/asciikey/internal/timeline"
)

type fakeTarget struct {
	surface *render.Surface
	calls   []camera.Placement
	fail    error
	resizes int
}

func newFakeTarget(w, h int) *fakeTarget {
	return &fakeTarget{surface: render.NewSurface(w, h, ' ')}
}

func (f *fakeTarget) Render(_ *scene.Registry, p camera.Placement) error {
	f.calls = append(f.calls, p)
	return f.fail
}

func (f *fakeTarget) Resize(w, h int) {
	f.resizes++
	f.surface.Resize(w, h)
}

func (f *fakeTarget) Surface() *render.Surface { return f.surface }

type recorder struct{ ticks []Tick }

func (r *recorder) OnTick(t Tick) { r.ticks = append(r.ticks, t) }

func TestTickRendersOncePerFrontFrame(t *testing.T) {
	c := clock.NewManual(0)
	target := newFakeTarget(80, 24)
	lp := New(c, target)

	if lp.Frame() != nil {
		t.Fatal("no frame should be presented before the first tick")
	}
	if err := lp.Tick(); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if len(target.calls) != 1 {
		t.Errorf("expected 1 render, got %d", len(target.calls))
	}
	if lp.Frame() == nil {
		t.Error("expected a presented frame")
	}
}

func TestTickRendersBothHalvesInSplitMode(t *testing.T) {
	c := clock.NewManual(0)
	target := newFakeTarget(80, 24)
	rec := &recorder{}
	lp := New(c, target, WithObserver(rec))

	err := lp.Run(c, 16*time.Millisecond, func(tk Tick) bool {
		return tk.State.Camera == camera.Split
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	last := rec.ticks[len(rec.ticks)-1]
	if last.State.Phase != timeline.GroundToKey {
		t.Errorf("split view outside GroundToKey: %s", last.State.Phase)
	}
	n := len(target.calls)
	if n < 2 || target.calls[n-2].Name != "front" || target.calls[n-1].Name != "top" {
		t.Errorf("expected front then top renders, got %+v", target.calls[max(0, n-2):])
	}
}

func TestRenderFailureDoesNotStallTimeline(t *testing.T) {
	c := clock.NewManual(0)
	target := newFakeTarget(80, 24)
	target.fail = render.ErrNoSurface
	lp := New(c, target)

	err := lp.Tick()
	var rerr *RenderError
	if !errors.As(err, &rerr) || !errors.Is(err, render.ErrNoSurface) {
		t.Fatalf("expected wrapped RenderError, got %v", err)
	}
	if rerr.Tick != 1 {
		t.Errorf("expected tick 1, got %d", rerr.Tick)
	}
	if lp.Frame() != nil {
		t.Error("a failed tick must not be presented")
	}

	c.Advance(3 * time.Second)
	_ = lp.Tick()
	if lp.State().DoorProgress == 0 {
		t.Error("timeline did not advance while rendering failed")
	}
	if lp.Ticks() != 2 {
		t.Errorf("expected 2 ticks, got %d", lp.Ticks())
	}
}

func TestResizeIsAppliedAtNextTick(t *testing.T) {
	c := clock.NewManual(0)
	target := newFakeTarget(80, 24)
	lp := New(c, target)

	lp.Resize(100, 30)
	lp.Resize(120, 40)
	if w, _ := target.Surface().Size(); w != 80 {
		t.Fatal("resize must wait for the next tick")
	}
	if err := lp.Tick(); err != nil {
		t.Fatal(err)
	}
	if target.resizes != 1 {
		t.Errorf("expected coalesced resize, got %d", target.resizes)
	}
	if w, h := target.Surface().Size(); w != 120 || h != 40 {
		t.Errorf("expected 120x40, got %dx%d", w, h)
	}
	if vp := target.calls[0].Viewport; vp.Dx() != 120 || vp.Dy() != 40 {
		t.Errorf("placement used stale size %v", vp)
	}
	if lp.State().Phase != timeline.Ball {
		t.Error("resize must not reset the timeline")
	}
}

func TestRunContinuesPastFailedTicks(t *testing.T) {
	c := clock.NewManual(0)
	target := newFakeTarget(80, 24)
	rec := &recorder{}
	lp := New(c, target, WithObserver(rec))

	err := lp.Run(c, 16*time.Millisecond, func(tk Tick) bool {
		// ticks 3 and 4 fail
		switch tk.N {
		case 2:
			target.fail = render.ErrNoSurface
		case 4:
			target.fail = nil
		}
		return tk.State.Cycle >= 1
	})

	if lp.State().Cycle != 1 {
		t.Fatalf("run stopped early in cycle %d at %s", lp.State().Cycle, lp.State().Phase)
	}
	var rerr *RenderError
	if !errors.As(err, &rerr) || rerr.Tick != 3 {
		t.Errorf("expected first failure at tick 3, got %v", err)
	}
	failed := 0
	for _, tk := range rec.ticks {
		if tk.Frame == nil {
			failed++
		}
	}
	if failed != 2 {
		t.Errorf("expected 2 failed ticks, got %d", failed)
	}
	if lp.Frame() == nil {
		t.Error("later ticks should present frames again")
	}
}

func TestRunSurvivesUnsplittableSurface(t *testing.T) {
	c := clock.NewManual(0)
	e, err := render.NewEffect("ascii", "", false)
	if err != nil {
		t.Fatal(err)
	}
	lp := New(c, render.NewRasterizer(1, 10, e))
	err = lp.Run(c, 16*time.Millisecond, func(tk Tick) bool { return tk.State.Cycle >= 1 })
	if !errors.Is(err, render.ErrViewport) {
		t.Errorf("expected viewport failures from the split view, got %v", err)
	}
	if lp.State().Cycle != 1 {
		t.Errorf("expected a full cycle, stopped in cycle %d", lp.State().Cycle)
	}
}

func TestLoopWithRasterizer(t *testing.T) {
	c := clock.NewManual(0)
	e, err := render.NewEffect("ascii", "", false)
	if err != nil {
		t.Fatal(err)
	}
	lp := New(c, render.NewRasterizer(60, 20, e))
	if err := lp.Run(c, 16*time.Millisecond, func(tk Tick) bool { return tk.N == 10 }); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	f := lp.Frame()
	if f == nil || f.Width != 60 || len(f.Lines) != 20 {
		t.Fatalf("unexpected frame %+v", f)
	}
}

func TestObserverSeesPresentedFrame(t *testing.T) {
	c := clock.NewManual(0)
	target := newFakeTarget(20, 6)
	rec := &recorder{}
	lp := New(c, target, WithObserver(rec))

	_ = lp.Tick()
	target.fail = render.ErrViewport
	_ = lp.Tick()

	if rec.ticks[0].Frame == nil || rec.ticks[0].Frame != lp.Frame() {
		t.Error("first tick should carry the presented frame")
	}
	if rec.ticks[1].Frame != nil {
		t.Error("failed tick must not carry a frame")
	}
}
