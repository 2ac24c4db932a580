// Package engine drives the animation one tick at a time.
//
// A tick samples the clock, advances the timeline, derives the camera
// placements and hands each one to the renderer. Ticks are strictly serial:
// the caller invokes Tick once per refresh opportunity and nothing else
// touches the scene in between.
package engine

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/san-kum/asciikey/internal/camera"
	"github.com/san-kum/asciikey/internal/clock"
	"github.com/san-kum/asciikey/internal/render"
	"github.com/san-kum/asciikey/internal/scene"
	"github.com/san-kum/asciikey/internal/timeline"
)

// Target is a renderer that owns a resizable output surface.
type Target interface {
	render.Renderer
	Resize(w, h int)
	Surface() *render.Surface
}

// Observer is notified after every tick.
type Observer interface {
	OnTick(t Tick)
}

// Tick describes one completed loop iteration.
type Tick struct {
	N          int
	Now        time.Duration
	State      timeline.State
	Registry   *scene.Registry
	Placements []camera.Placement
	// Frame is the frame this tick presented, nil when rendering failed.
	Frame *render.Frame
}

// RenderError wraps a failed render with the tick it belongs to.
type RenderError struct {
	Tick     int
	Viewport image.Rectangle
	Wrapped  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("tick %d viewport %v: %v", e.Tick, e.Viewport, e.Wrapped)
}

func (e *RenderError) Unwrap() error { return e.Wrapped }

type size struct{ w, h int }

// Loop owns the scene for the lifetime of the animation.
type Loop struct {
	clock     clock.Clock
	timeline  *timeline.Timeline
	target    Target
	log       *slog.Logger
	observers []Observer

	n       int
	pending *size
	frame   *render.Frame
}

// Option configures a Loop.
type Option func(*Loop)

func WithLogger(l *slog.Logger) Option { return func(lp *Loop) { lp.log = l } }

func WithObserver(o Observer) Option {
	return func(lp *Loop) { lp.observers = append(lp.observers, o) }
}

// New builds the scene and starts the first cycle at the clock's current time.
func New(c clock.Clock, target Target, opts ...Option) *Loop {
	lp := &Loop{
		clock:    c,
		timeline: timeline.New(scene.Build(), c.Now()),
		target:   target,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(lp)
	}
	return lp
}

// Resize records new output dimensions. They take effect at the start of
// the next tick so a frame is never resized halfway through.
func (lp *Loop) Resize(w, h int) {
	lp.pending = &size{w, h}
}

// Tick runs one iteration. The timeline always advances; a render failure
// is returned after the remaining placements have been attempted and the
// tick is not presented.
func (lp *Loop) Tick() error {
	if lp.pending != nil {
		lp.target.Resize(lp.pending.w, lp.pending.h)
		lp.log.Debug("surface resized", "width", lp.pending.w, "height", lp.pending.h)
		lp.pending = nil
	}

	lp.n++
	now := lp.clock.Now()
	prev := lp.timeline.State()
	st := lp.timeline.Advance(now)
	if st.Phase != prev.Phase {
		lp.log.Debug("phase changed", "tick", lp.n, "from", prev.Phase, "to", st.Phase, "cycle", st.Cycle)
	}

	w, h := lp.target.Surface().Size()
	placements := camera.PlacementsFor(st.Camera, w, h)
	reg := lp.timeline.Registry()

	var errs []error
	for _, p := range placements {
		if err := lp.target.Render(reg, p); err != nil {
			errs = append(errs, &RenderError{Tick: lp.n, Viewport: p.Viewport, Wrapped: err})
		}
	}
	var presented *render.Frame
	if len(errs) == 0 {
		presented = lp.target.Surface().Snapshot()
		lp.frame = presented
	}

	t := Tick{N: lp.n, Now: now, State: st, Registry: reg, Placements: placements, Frame: presented}
	for _, o := range lp.observers {
		o.OnTick(t)
	}
	return errors.Join(errs...)
}

// Frame returns the most recently presented frame, or nil before the first one.
func (lp *Loop) Frame() *render.Frame { return lp.frame }

func (lp *Loop) State() timeline.State { return lp.timeline.State() }

func (lp *Loop) Registry() *scene.Registry { return lp.timeline.Registry() }

func (lp *Loop) Ticks() int { return lp.n }

// Run ticks until stop returns true. It is meant for headless use with a
// manual clock: step is added to the clock after every tick. A failed tick
// is logged and skipped; the failures are returned together once stop holds.
func (lp *Loop) Run(c *clock.Manual, step time.Duration, stop func(Tick) bool) error {
	var last Tick
	stopper := observerFunc(func(t Tick) { last = t })
	lp.observers = append(lp.observers, stopper)
	defer func() { lp.observers = lp.observers[:len(lp.observers)-1] }()

	var errs []error
	for {
		if err := lp.Tick(); err != nil {
			lp.log.Warn("render failed", "tick", lp.n, "err", err)
			errs = append(errs, err)
		}
		if stop(last) {
			return errors.Join(errs...)
		}
		c.Advance(step)
	}
}

type observerFunc func(Tick)

func (f observerFunc) OnTick(t Tick) { f(t) }
