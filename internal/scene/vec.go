package scene

import "math"

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Uniform returns a vector with all components set to s.
func Uniform(s float64) Vec3 { return Vec3{s, s, s} }

// RotateEuler rotates p by Euler angles r (radians) in XYZ order,
// matching a rotation matrix Rx*Ry*Rz.
func RotateEuler(p, r Vec3) Vec3 {
	if r.Z != 0 {
		cz, sz := math.Cos(r.Z), math.Sin(r.Z)
		p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	}
	if r.Y != 0 {
		cy, sy := math.Cos(r.Y), math.Sin(r.Y)
		p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	}
	if r.X != 0 {
		cx, sx := math.Cos(r.X), math.Sin(r.X)
		p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	}
	return p
}
