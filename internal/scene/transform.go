package scene

// Transform places an object relative to its parent.
type Transform struct {
	Position Vec3
	Rotation Vec3 // Euler radians, XYZ order
	Scale    Vec3
}

// Identity is the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Scale: Uniform(1)}
}

// At returns an unrotated, unscaled transform at p.
func At(x, y, z float64) Transform {
	return Transform{Position: Vec3{x, y, z}, Scale: Uniform(1)}
}

func (t Transform) WithRotation(x, y, z float64) Transform {
	t.Rotation = Vec3{x, y, z}
	return t
}

func (t Transform) WithScale(x, y, z float64) Transform {
	t.Scale = Vec3{x, y, z}
	return t
}

// Apply maps a local point into the parent space: scale, then rotate, then translate.
func (t Transform) Apply(p Vec3) Vec3 {
	return RotateEuler(p.Mul(t.Scale), t.Rotation).Add(t.Position)
}

// Chain composes transforms from the outermost ancestor inward.
type Chain []Transform

// Apply maps a point in the innermost local space into world space.
func (c Chain) Apply(p Vec3) Vec3 {
	for i := len(c) - 1; i >= 0; i-- {
		p = c[i].Apply(p)
	}
	return p
}
