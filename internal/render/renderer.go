package render

import (
	"fmt"

	"github.com/san-kum/asciikey/internal/camera"
	"github.com/san-kum/asciikey/internal/scene"
)

// Renderer draws the scene as seen from one placement into its viewport.
// It only reads the registry.
type Renderer interface {
	Render(reg *scene.Registry, p camera.Placement) error
}

// Rasterizer is the character-cell Renderer.
type Rasterizer struct {
	surface *Surface
	effect  Effect
	buf     raster
	samples []float64
}

func NewRasterizer(w, h int, e Effect) *Rasterizer {
	return &Rasterizer{surface: NewSurface(w, h, e.Shade(nil)), effect: e}
}

func (r *Rasterizer) Surface() *Surface { return r.surface }

func (r *Rasterizer) Effect() Effect { return r.effect }

// Resize changes the output dimensions in cells.
func (r *Rasterizer) Resize(w, h int) { r.surface.Resize(w, h) }

// Render clears the placement's viewport and draws every visible object into it.
// Cells outside the viewport are left untouched.
func (r *Rasterizer) Render(reg *scene.Registry, p camera.Placement) error {
	w, h := r.surface.Size()
	if w <= 0 || h <= 0 {
		return ErrNoSurface
	}
	vp := p.Viewport
	if vp.Empty() || !vp.In(r.surface.Bounds()) {
		return fmt.Errorf("%w: %v not in %dx%d", ErrViewport, vp, w, h)
	}

	sx, sy := r.effect.Samples()
	pw, ph := vp.Dx()*sx, vp.Dy()*sy
	r.buf.reset(pw, ph)
	proj := newProjector(p, pw, ph)

	reg.Walk(func(o *scene.Object, chain scene.Chain) {
		if o.Mesh == nil || len(o.Mesh.Edges) == 0 {
			return
		}
		lum := shade(o.Color)
		for _, e := range o.Mesh.Edges {
			x0, y0, z0, x1, y1, z1, ok := proj.segment(chain.Apply(e.Start), chain.Apply(e.End))
			if ok {
				r.buf.line(x0, y0, z0, x1, y1, z1, lum)
			}
		}
	})

	if cap(r.samples) < sx*sy {
		r.samples = make([]float64, sx*sy)
	}
	s := r.samples[:sx*sy]
	for cy := 0; cy < vp.Dy(); cy++ {
		for cx := 0; cx < vp.Dx(); cx++ {
			for j := 0; j < sy; j++ {
				row := (cy*sy + j) * pw
				for i := 0; i < sx; i++ {
					s[j*sx+i] = r.buf.lum[row+cx*sx+i]
				}
			}
			r.surface.set(vp.Min.X+cx, vp.Min.Y+cy, r.effect.Shade(s))
		}
	}
	return nil
}
