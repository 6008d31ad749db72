// Package geom holds the small amount of 3-D math the layout engine needs:
// vectors, axis-aligned boxes and orthonormal frames.
//
// Layouts are computed in face-local coordinates. A [Face] carries a [Frame]
// whose U axis runs along the face width, V along the face height and N
// along the outward normal. [Frame.ToWorld] maps a face-local point into the
// parent space, so no layout ever needs to know how its face is oriented.
package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Axis indices. U, V and N alias X, Y and Z in face-local space.
const (
	X = 0
	Y = 1
	Z = 2

	U = X
	V = Y
	N = Z
)

// Vec2 is a 2-D vector (width, height) or (u, v).
type Vec2 f64.Vec2

// Vec3 is a 3-D vector.
type Vec3 f64.Vec3

// Common directions.
var (
	UnitX = Vec3{1, 0, 0}
	UnitY = Vec3{0, 1, 0}
	UnitZ = Vec3{0, 0, 1}
)

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

// Scale returns a * s.
func (a Vec3) Scale(s float64) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }

// Mul returns the component-wise product.
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]} }

// Dot returns the dot product.
func (a Vec3) Dot(b Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Len returns the Euclidean length.
func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize returns a unit vector in the direction of a.
// The zero vector is returned unchanged.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return a
	}
	return a.Scale(1 / l)
}

// Abs returns the component-wise absolute value.
func (a Vec3) Abs() Vec3 { return Vec3{math.Abs(a[0]), math.Abs(a[1]), math.Abs(a[2])} }

// With returns a copy of a with component axis set to v.
func (a Vec3) With(axis int, v float64) Vec3 {
	a[axis] = v
	return a
}

// XY drops the Z component.
func (a Vec3) XY() Vec2 { return Vec2{a[0], a[1]} }

// ApproxEqual reports whether every component of a and b differs by at most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// Add returns a + b.
func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a[0] + b[0], a[1] + b[1]} }

// Scale returns a * s.
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a[0] * s, a[1] * s} }

// Vec3 extends a with z.
func (a Vec2) Vec3(z float64) Vec3 { return Vec3{a[0], a[1], z} }
