package scene

import "math"

type Edge struct {
	Start, End Vec3
}

// Mesh is a wireframe in local object space.
type Mesh struct{ Edges []Edge }

func NewMesh() *Mesh               { return &Mesh{Edges: make([]Edge, 0)} }
func (m *Mesh) AddEdge(s, e Vec3)  { m.Edges = append(m.Edges, Edge{s, e}) }
func (m *Mesh) AddPoint(p Vec3)    { m.Edges = append(m.Edges, Edge{p, p}) }
func (m *Mesh) addLoop(pts []Vec3) { m.addStrip(pts, true) }
func (m *Mesh) addStrip(pts []Vec3, closed bool) {
	for i := 1; i < len(pts); i++ {
		m.AddEdge(pts[i-1], pts[i])
	}
	if closed && len(pts) > 2 {
		m.AddEdge(pts[len(pts)-1], pts[0])
	}
}

// Shape describes a primitive that can generate its wireframe.
type Shape interface {
	Mesh() *Mesh
}

// Group is an empty shape used for pure grouping nodes.
type Group struct{}

func (Group) Mesh() *Mesh { return NewMesh() }

// Box is centred on the origin.
type Box struct{ W, H, D float64 }

func (b Box) Mesh() *Mesh {
	m, x, y, z := NewMesh(), b.W/2, b.H/2, b.D/2
	v := []Vec3{{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z}, {-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		m.AddEdge(v[e[0]], v[e[1]])
	}
	return m
}

// Plane lies in the XY plane facing +Z.
type Plane struct{ W, H float64 }

func (p Plane) Mesh() *Mesh {
	m, x, y := NewMesh(), p.W/2, p.H/2
	m.addLoop([]Vec3{{-x, -y, 0}, {x, -y, 0}, {x, y, 0}, {-x, y, 0}})
	m.AddEdge(Vec3{-x, -y, 0}, Vec3{x, y, 0})
	return m
}

// Torus lies in the XY plane around the Z axis.
type Torus struct {
	Radius, Tube    float64
	Radial, Tubular int
}

func (t Torus) Mesh() *Mesh {
	m := NewMesh()
	radial, tubular := max(t.Radial, 3), max(t.Tubular, 3)
	rings := make([][]Vec3, tubular)
	for i := range rings {
		u := float64(i) / float64(tubular) * 2 * math.Pi
		rings[i] = make([]Vec3, radial)
		for j := range rings[i] {
			v := float64(j) / float64(radial) * 2 * math.Pi
			r := t.Radius + t.Tube*math.Cos(v)
			rings[i][j] = Vec3{r * math.Cos(u), r * math.Sin(u), t.Tube * math.Sin(v)}
		}
		m.addLoop(rings[i])
	}
	for j := 0; j < radial; j++ {
		loop := make([]Vec3, tubular)
		for i := range rings {
			loop[i] = rings[i][j]
		}
		m.addLoop(loop)
	}
	return m
}

// Cylinder is aligned with the Y axis.
type Cylinder struct {
	Top, Bottom, Height float64
	Segments            int
}

func (c Cylinder) Mesh() *Mesh {
	m, h := NewMesh(), c.Height/2
	top, bot := circle(c.Top, h, max(c.Segments, 3)), circle(c.Bottom, -h, max(c.Segments, 3))
	m.addLoop(top)
	m.addLoop(bot)
	for i := range top {
		m.AddEdge(bot[i], top[i])
	}
	return m
}

// Cone is aligned with the Y axis, apex up.
type Cone struct {
	Radius, Height float64
	Segments       int
}

func (c Cone) Mesh() *Mesh {
	m, h := NewMesh(), c.Height/2
	base := circle(c.Radius, -h, max(c.Segments, 3))
	m.addLoop(base)
	apex := Vec3{0, h, 0}
	for _, p := range base {
		m.AddEdge(p, apex)
	}
	return m
}

// Sphere is drawn as latitude and longitude rings.
type Sphere struct {
	Radius   float64
	Segments int
}

func (s Sphere) Mesh() *Mesh {
	m, n := NewMesh(), max(s.Segments, 4)
	for i := 1; i < n/2; i++ {
		phi := float64(i) / float64(n/2) * math.Pi
		m.addLoop(circle(s.Radius*math.Sin(phi), s.Radius*math.Cos(phi), n))
	}
	for i := 0; i < n/2; i++ {
		theta := float64(i) / float64(n/2) * math.Pi
		ring := make([]Vec3, n)
		for j := range ring {
			phi := float64(j) / float64(n) * 2 * math.Pi
			ring[j] = Vec3{
				s.Radius * math.Sin(phi) * math.Cos(theta),
				s.Radius * math.Cos(phi),
				s.Radius * math.Sin(phi) * math.Sin(theta),
			}
		}
		m.addLoop(ring)
	}
	return m
}

// circle returns n points of a horizontal circle at height y.
func circle(r, y float64, n int) []Vec3 {
	pts := make([]Vec3, n)
	for i := range pts {
		a := float64(i) / float64(n) * 2 * math.Pi
		pts[i] = Vec3{r * math.Cos(a), y, r * math.Sin(a)}
	}
	return pts
}
