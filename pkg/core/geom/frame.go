package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Frame is an orthonormal coordinate frame. Basis rows are the U, V and N
// axes expressed in the parent space.
type Frame struct {
	Origin Vec3    `json:"origin"`
	Basis  f64.Mat3 `json:"basis"`
}

// Identity returns the frame that maps every point onto itself.
func Identity() Frame {
	return Frame{Basis: f64.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// NewFrame builds a right-handed frame at origin whose N axis points along
// normal and whose V axis is as close to up as possible. When up is parallel
// to normal the world Y axis (or X, if that is parallel too) is used instead.
func NewFrame(origin, normal, up Vec3) Frame {
	n := normal.Normalize()
	u := up.Cross(n)
	if u.Len() < 1e-9 {
		u = UnitY.Cross(n)
		if u.Len() < 1e-9 {
			u = UnitX.Cross(n)
		}
	}
	u = u.Normalize()
	v := n.Cross(u)
	return Frame{
		Origin: origin,
		Basis:  f64.Mat3{u[0], u[1], u[2], v[0], v[1], v[2], n[0], n[1], n[2]},
	}
}

// YawFrame returns a frame at origin rotated deg degrees about the parent Z
// axis.
func YawFrame(origin Vec3, deg float64) Frame {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Frame{
		Origin: origin,
		Basis:  f64.Mat3{c, s, 0, -s, c, 0, 0, 0, 1},
	}
}

// U returns the first basis axis.
func (f Frame) U() Vec3 { return Vec3{f.Basis[0], f.Basis[1], f.Basis[2]} }

// V returns the second basis axis.
func (f Frame) V() Vec3 { return Vec3{f.Basis[3], f.Basis[4], f.Basis[5]} }

// N returns the third basis axis.
func (f Frame) N() Vec3 { return Vec3{f.Basis[6], f.Basis[7], f.Basis[8]} }

// Axis returns basis axis i (0, 1 or 2).
func (f Frame) Axis(i int) Vec3 {
	return Vec3{f.Basis[3*i], f.Basis[3*i+1], f.Basis[3*i+2]}
}

// Rotate maps a local direction into the parent space, ignoring the origin.
func (f Frame) Rotate(d Vec3) Vec3 {
	return f.U().Scale(d[0]).Add(f.V().Scale(d[1])).Add(f.N().Scale(d[2]))
}

// ToWorld maps a local point into the parent space.
func (f Frame) ToWorld(p Vec3) Vec3 {
	return f.Origin.Add(f.Rotate(p))
}

// ToLocal maps a parent-space point into this frame.
func (f Frame) ToLocal(p Vec3) Vec3 {
	d := p.Sub(f.Origin)
	return Vec3{d.Dot(f.U()), d.Dot(f.V()), d.Dot(f.N())}
}

// Compose returns the parent-space frame of child, where child is expressed
// in f's local coordinates.
func (f Frame) Compose(child Frame) Frame {
	u := f.Rotate(child.U())
	v := f.Rotate(child.V())
	n := f.Rotate(child.N())
	return Frame{
		Origin: f.ToWorld(child.Origin),
		Basis:  f64.Mat3{u[0], u[1], u[2], v[0], v[1], v[2], n[0], n[1], n[2]},
	}
}

// At returns a frame with f's orientation moved to the local point p.
func (f Frame) At(p Vec3) Frame {
	return Frame{Origin: f.ToWorld(p), Basis: f.Basis}
}

// Translate returns f moved by d in the parent space.
func (f Frame) Translate(d Vec3) Frame {
	f.Origin = f.Origin.Add(d)
	return f
}
