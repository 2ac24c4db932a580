// Package camera derives camera placements from the timeline's camera mode.
package camera

import (
	"image"
	"math"

	"github.com/san-kum/asciikey/internal/scene"
)

// Mode selects between a single front view and a front/top split view.
type Mode int

const (
	Front Mode = iota
	Split
)

func (m Mode) String() string {
	if m == Split {
		return "split"
	}
	return "front"
}

// Lens parameters shared by every placement.
const (
	FOV  = 75 * math.Pi / 180
	Near = 0.1
	Far  = 1000.0
)

var (
	// FrontPosition is where the front camera sits; balls pass it on +Z.
	FrontPosition = scene.Vec3{X: 0, Y: 0, Z: 20}
	TopPosition   = scene.Vec3{X: 0, Y: 20, Z: 0}
	Target        = scene.Vec3{X: 0, Y: scene.GroundY, Z: 0}
)

// Placement is an ephemeral camera pose and the viewport it renders into.
type Placement struct {
	Name     string
	Position scene.Vec3
	LookAt   scene.Vec3
	FOV      float64
	Near     float64
	Far      float64
	Viewport image.Rectangle
}

// Aspect is the viewport width over height in cells.
func (p Placement) Aspect() float64 {
	if p.Viewport.Dy() == 0 {
		return 1
	}
	return float64(p.Viewport.Dx()) / float64(p.Viewport.Dy())
}

func front(vp image.Rectangle) Placement {
	return Placement{Name: "front", Position: FrontPosition, LookAt: Target, FOV: FOV, Near: Near, Far: Far, Viewport: vp}
}

func top(vp image.Rectangle) Placement {
	return Placement{Name: "top", Position: TopPosition, LookAt: Target, FOV: FOV, Near: Near, Far: Far, Viewport: vp}
}

// PlacementsFor returns the placements for mode on a w x h output surface.
// Front yields one full-surface placement; Split yields the front view on
// the left half and a top-down view on the right half.
func PlacementsFor(mode Mode, w, h int) []Placement {
	full := image.Rect(0, 0, max(w, 0), max(h, 0))
	if mode != Split {
		return []Placement{front(full)}
	}
	mid := full.Dx() / 2
	return []Placement{
		front(image.Rect(0, 0, mid, full.Dy())),
		top(image.Rect(mid, 0, full.Dx(), full.Dy())),
	}
}
