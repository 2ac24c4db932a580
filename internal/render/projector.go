package render

import (
	"math"

	"github.com/san-kum/asciikey/internal/camera"
	"github.com/san-kum/asciikey/internal/scene"
)

// projector maps world points onto a w x h pixel raster for one placement.
type projector struct {
	pos, right, up, fwd scene.Vec3
	focal, aspect       float64
	near, far           float64
	w, h                float64
}

func newProjector(p camera.Placement, w, h int) projector {
	fwd := p.LookAt.Sub(p.Position).Normalize()
	worldUp := scene.Vec3{Y: 1}
	if math.Abs(fwd.Dot(worldUp)) > 0.999 {
		// looking straight down: screen up points away from the front camera
		worldUp = scene.Vec3{Z: -1}
	}
	right := fwd.Cross(worldUp).Normalize()
	aspect := p.Aspect() * CellAspect
	return projector{
		pos:    p.Position,
		right:  right,
		up:     right.Cross(fwd),
		fwd:    fwd,
		focal:  1 / math.Tan(p.FOV/2),
		aspect: aspect,
		near:   p.Near,
		far:    p.Far,
		w:      float64(w),
		h:      float64(h),
	}
}

// view converts a world point into camera space; z grows away from the camera.
func (pr projector) view(v scene.Vec3) scene.Vec3 {
	d := v.Sub(pr.pos)
	return scene.Vec3{X: d.Dot(pr.right), Y: d.Dot(pr.up), Z: d.Dot(pr.fwd)}
}

// screen projects a camera-space point with z >= near onto the raster.
func (pr projector) screen(c scene.Vec3) (float64, float64) {
	nx := c.X * pr.focal / (c.Z * pr.aspect)
	ny := c.Y * pr.focal / c.Z
	return (nx + 1) / 2 * pr.w, (1 - ny) / 2 * pr.h
}

// segment projects a world-space edge, clipping it against the near and far planes.
func (pr projector) segment(a, b scene.Vec3) (x0, y0, z0, x1, y1, z1 float64, ok bool) {
	ca, cb := pr.view(a), pr.view(b)
	if ca.Z < pr.near && cb.Z < pr.near || ca.Z > pr.far && cb.Z > pr.far {
		return 0, 0, 0, 0, 0, 0, false
	}
	ca, cb = clipDepth(ca, cb, pr.near, true), clipDepth(cb, ca, pr.near, true)
	ca, cb = clipDepth(ca, cb, pr.far, false), clipDepth(cb, ca, pr.far, false)
	x0, y0 = pr.screen(ca)
	x1, y1 = pr.screen(cb)
	return x0, y0, ca.Z, x1, y1, cb.Z, true
}

// clipDepth moves p along p->q onto the plane z=limit when p is on the wrong side.
func clipDepth(p, q scene.Vec3, limit float64, near bool) scene.Vec3 {
	outside := p.Z < limit
	if !near {
		outside = p.Z > limit
	}
	if !outside || p.Z == q.Z {
		return p
	}
	t := (limit - p.Z) / (q.Z - p.Z)
	return p.Add(q.Sub(p).Scale(t))
}
