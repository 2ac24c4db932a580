package scene

import (
	"fmt"
	"image/color"
	"math"
)

// Part describes a fixed piece of geometry inside an entity.
type Part struct {
	Name      string
	Shape     Shape
	Color     color.RGBA
	Transform Transform
	Parts     []Part
}

// Descriptor declares a named entity and its initial state.
type Descriptor struct {
	ID        ID
	Parts     []Part
	Transform Transform
	Visible   bool
}

var (
	purple    = hex(0x8000ff)
	white     = hex(0xffffff)
	yellow    = hex(0xffff00)
	darkGrey  = hex(0x222222)
	wood      = hex(0x8b5a2b)
	burlywood = hex(0xdeb887)
	green     = hex(0x00ff00)
	charcoal  = hex(0x333333)
	gold      = hex(0xffd700)
	skin      = hex(0xffe0bd)
)

// Initial placements shared with the timeline.
const (
	GroundY        = -7.0
	GroundScale    = 2.5
	BallStartZ     = -10.0
	ballStartX     = -6.0
	ballSpacing    = 2.4
	checkerboard   = 10
	checkerboardSq = 2.0
)

// BallStart returns the initial position of ball i.
func BallStart(i int) Vec3 {
	return Vec3{ballStartX + float64(i)*ballSpacing, 0, BallStartZ}
}

// Descriptors returns the declarative table of every entity in the scene.
func Descriptors() []Descriptor {
	d := []Descriptor{
		{ID: Ground, Parts: groundParts(), Transform: Identity().WithScale(GroundScale, 1, GroundScale), Visible: true},
		{ID: Key, Parts: keyParts(), Transform: At(0, GroundY, 0)},
		{ID: Door, Parts: doorParts(), Transform: Identity(), Visible: true},
	}
	for i := 0; i < BallCount; i++ {
		p := BallStart(i)
		d = append(d, Descriptor{
			ID:        Ball(i),
			Parts:     ballParts(),
			Transform: At(p.X, p.Y, p.Z).WithScale(1.6, 1, 1),
		})
	}
	d = append(d,
		Descriptor{ID: TorchLeft, Parts: torchParts(), Transform: At(-8, 6, -2), Visible: true},
		Descriptor{ID: TorchRight, Parts: torchParts(), Transform: At(8, 6, -2), Visible: true},
		Descriptor{ID: HandLeft, Parts: handParts(), Transform: At(-2.5, -2, 2).WithRotation(0, math.Pi/8, 0).WithScale(1.2, 1.2, 1.2)},
		Descriptor{ID: HandRight, Parts: handParts(), Transform: At(2.5, -2, 2).WithRotation(0, -math.Pi/8, 0).WithScale(1.2, 1.2, 1.2)},
	)
	return d
}

func groundParts() []Part {
	parts := make([]Part, 0, checkerboard*checkerboard)
	for x := 0; x < checkerboard; x++ {
		for z := 0; z < checkerboard; z++ {
			c := white
			if (x+z)%2 == 0 {
				c = purple
			}
			px := float64(x-checkerboard/2)*checkerboardSq + checkerboardSq/2
			pz := float64(z-checkerboard/2)*checkerboardSq + checkerboardSq/2
			parts = append(parts, Part{
				Name:      fmt.Sprintf("square_%d_%d", x, z),
				Shape:     Plane{checkerboardSq, checkerboardSq},
				Color:     c,
				Transform: At(px, GroundY, pz).WithRotation(-math.Pi/2, 0, 0),
			})
		}
	}
	return parts
}

func keyParts() []Part {
	bar := Box{0.12, 0.4, 0.1}
	return []Part{
		{Name: "shaft", Shape: Cylinder{0.15, 0.15, 2, 8}, Color: yellow, Transform: Identity().WithRotation(0, 0, math.Pi/2)},
		{Name: "bow", Shape: Torus{0.5, 0.18, 6, 16}, Color: yellow, Transform: At(-1, 0, 0)},
		{Name: "symbol", Shape: Group{}, Transform: Identity(), Parts: []Part{
			{Name: "x1", Shape: bar, Color: darkGrey, Transform: At(-1.2, 0.2, 0.4).WithRotation(0, 0, math.Pi/4)},
			{Name: "x2", Shape: bar, Color: darkGrey, Transform: At(-1.2, 0.2, 0.4).WithRotation(0, 0, -math.Pi/4)},
			{Name: "star", Shape: bar, Color: darkGrey, Transform: At(-1, 0.2, 0.4)},
			{Name: "i", Shape: bar, Color: darkGrey, Transform: At(-0.8, 0.2, 0.4).WithScale(0.5, 1, 1)},
		}},
	}
}

func doorParts() []Part {
	return []Part{
		{Name: "slab", Shape: Box{8, 12, 1}, Color: wood, Transform: Identity()},
		{Name: "frame", Shape: Box{8.4, 12.4, 0.3}, Color: burlywood, Transform: At(0, 0, -0.7)},
		{Name: "handle", Shape: Sphere{0.3, 8}, Color: yellow, Transform: At(3.2, -2, 0.7)},
	}
}

func ballParts() []Part {
	light := make([]Part, 4)
	for i := range light {
		light[i] = Part{
			Name:      fmt.Sprintf("light%d", i),
			Shape:     Plane{0.7, 0.7},
			Color:     green,
			Transform: Identity().WithRotation(0, 0, math.Pi/2*float64(i)),
		}
	}
	return []Part{
		{Name: "ring", Shape: Torus{1.5, 0.3, 6, 20}, Color: green, Transform: Identity()},
		{Name: "light", Shape: Group{}, Transform: Identity(), Parts: light},
	}
}

func torchParts() []Part {
	return []Part{
		{Name: "body", Shape: Cylinder{0.15, 0.15, 1.2, 8}, Color: charcoal, Transform: Identity()},
		{Name: "flame", Shape: Cone{0.18, 0.4, 8}, Color: gold, Transform: At(0, 0.8, 0)},
	}
}

func handParts() []Part {
	parts := []Part{
		{Name: "palm", Shape: Sphere{0.7, 10}, Color: skin, Transform: Identity().WithScale(1.2, 0.7, 1)},
	}
	for i := 0; i < 4; i++ {
		parts = append(parts, Part{
			Name:      fmt.Sprintf("finger%d", i),
			Shape:     Cylinder{0.13, 0.11, 0.9, 6},
			Color:     skin,
			Transform: At(-0.45+float64(i)*0.3, 0.5, 0.2).WithRotation(math.Pi/2.5, 0, 0),
		})
	}
	return append(parts,
		Part{Name: "thumb", Shape: Cylinder{0.13, 0.11, 0.7, 6}, Color: skin, Transform: At(-0.7, 0.2, -0.2).WithRotation(math.Pi/2.5, 0, math.Pi/3)},
		Part{Name: "ball", Shape: Sphere{0.25, 8}, Color: green, Transform: At(0, 0.2, 0.5)},
		Part{Name: "torus", Shape: Torus{0.18, 0.06, 4, 10}, Color: purple, Transform: At(0, 0.2, 0.5).WithRotation(math.Pi/2, 0, 0)},
	)
}

// Build constructs the registry from the default descriptor table.
func Build() *Registry {
	return BuildFrom(Descriptors())
}

// BuildFrom constructs a registry from descs. Duplicate ids panic:
// the table is static and a duplicate is a programming error.
func BuildFrom(descs []Descriptor) *Registry {
	r := &Registry{
		objects: make([]*Object, 0, len(descs)),
		byID:    make(map[ID]*Object, len(descs)),
		initial: make(map[ID]snapshot, len(descs)),
	}
	for _, d := range descs {
		if _, dup := r.byID[d.ID]; dup {
			panic(fmt.Sprintf("scene: duplicate object %q", d.ID))
		}
		o := &Object{ID: d.ID, Transform: d.Transform, Visible: d.Visible, Mesh: NewMesh()}
		o.Children = buildParts(d.ID, d.Parts)
		r.objects = append(r.objects, o)
		r.byID[d.ID] = o
		r.initial[d.ID] = snapshot{transform: d.Transform, visible: d.Visible}
	}
	return r
}

func buildParts(parent ID, parts []Part) []*Object {
	if len(parts) == 0 {
		return nil
	}
	children := make([]*Object, len(parts))
	for i, p := range parts {
		id := ID(string(parent) + "/" + p.Name)
		children[i] = &Object{
			ID:        id,
			Transform: p.Transform,
			Visible:   true,
			Mesh:      p.Shape.Mesh(),
			Color:     p.Color,
			Children:  buildParts(id, p.Parts),
		}
	}
	return children
}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
