package render

import "math"

// raster is a sub-cell luminance buffer with a depth test.
type raster struct {
	w, h  int
	lum   []float64
	depth []float64
}

func (r *raster) reset(w, h int) {
	r.w, r.h = w, h
	n := w * h
	if cap(r.lum) < n {
		r.lum = make([]float64, n)
		r.depth = make([]float64, n)
	}
	r.lum, r.depth = r.lum[:n], r.depth[:n]
	for i := range r.lum {
		r.lum[i] = 0
		r.depth[i] = math.Inf(1)
	}
}

// plot keeps the nearest sample at (x, y).
func (r *raster) plot(x, y int, z, lum float64) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	i := y*r.w + x
	if z < r.depth[i] {
		r.depth[i] = z
		r.lum[i] = lum
	}
}

// line draws a segment using Bresenham's algorithm, interpolating depth.
// The segment is clipped to the raster first so far off-screen endpoints stay cheap.
func (r *raster) line(fx0, fy0, z0, fx1, fy1, z1, lum float64) {
	t0, t1, ok := clipRect(fx0, fy0, fx1, fy1, float64(r.w), float64(r.h))
	if !ok {
		return
	}
	dxf, dyf, dzf := fx1-fx0, fy1-fy0, z1-z0
	x0, y0 := int(math.Floor(fx0+t0*dxf)), int(math.Floor(fy0+t0*dyf))
	x1, y1 := int(math.Floor(fx0+t1*dxf)), int(math.Floor(fy0+t1*dyf))
	za, zb := z0+t0*dzf, z0+t1*dzf

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	steps := max(dx, dy)
	for i := 0; ; i++ {
		z := za
		if steps > 0 {
			z = za + (zb-za)*float64(i)/float64(steps)
		}
		r.plot(x0, y0, z, lum)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// clipRect is Liang-Barsky clipping of a segment against [0,w) x [0,h).
func clipRect(x0, y0, x1, y1, w, h float64) (float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	maxX, maxY := math.Nextafter(w, 0), math.Nextafter(h, 0)
	for _, e := range [4][2]float64{{-dx, x0}, {dx, maxX - x0}, {-dy, y0}, {dy, maxY - y0}} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return t0, t1, true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
