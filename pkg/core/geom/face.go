package geom

// Face is a rectangular surface a layout is computed on. Frame.Origin is
// the center of the surface and Frame.N points outward. Depth is the
// thickness of the solid behind the surface, measured along -N.
type Face struct {
	Frame  Frame   `json:"frame"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// BoxFace returns the face of an axis-aligned box of the given size whose
// outward normal is dir (a unit vector along ±X or ±Y or ±Z in the box's own
// frame). Side faces use Z as up; the top and bottom faces use Y.
func BoxFace(box Frame, size, dir Vec3) Face {
	axis := dominantAxis(dir)
	half := size[axis] / 2
	up := UnitZ
	if axis == Z {
		up = UnitY
	}
	local := NewFrame(dir.Scale(half), dir, up)
	w, h := faceExtent(local, size)
	return Face{
		Frame:  box.Compose(local),
		Width:  w,
		Height: h,
		Depth:  size[axis],
	}
}

// faceExtent projects size onto the frame's U and V axes.
func faceExtent(f Frame, size Vec3) (float64, float64) {
	return f.U().Abs().Dot(size), f.V().Abs().Dot(size)
}

func dominantAxis(d Vec3) int {
	a := d.Abs()
	switch {
	case a[0] >= a[1] && a[0] >= a[2]:
		return X
	case a[1] >= a[2]:
		return Y
	default:
		return Z
	}
}

// ToWorld maps a face-local point into the parent space.
func (f Face) ToWorld(p Vec3) Vec3 {
	return f.Frame.ToWorld(p)
}
