package layout

import (
	"fmt"
	"strings"
)

// HAlign positions a row horizontally within its usable width.
type HAlign int

const (
	HAlignLeft HAlign = iota
	HAlignRight
	HAlignCenter
	HAlignRandom
)

var hAlignNames = [...]string{"left", "right", "center", "random"}

func (a HAlign) String() string {
	if a < 0 || int(a) >= len(hAlignNames) {
		return fmt.Sprintf("HAlign(%d)", int(a))
	}
	return hAlignNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a HAlign) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *HAlign) UnmarshalText(b []byte) error {
	i, err := lookup(hAlignNames[:], string(b), "horizontal alignment")
	*a = HAlign(i)
	return err
}

// VAlign positions a stack along its parent axis.
type VAlign int

const (
	VAlignBottom VAlign = iota
	VAlignMiddle
	VAlignTop
	VAlignRandom
)

var vAlignNames = [...]string{"bottom", "middle", "top", "random"}

func (a VAlign) String() string {
	if a < 0 || int(a) >= len(vAlignNames) {
		return fmt.Sprintf("VAlign(%d)", int(a))
	}
	return vAlignNames[a]
}

// MarshalText implements encoding.TextMarshaler.
func (a VAlign) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *VAlign) UnmarshalText(b []byte) error {
	i, err := lookup(vAlignNames[:], string(b), "vertical alignment")
	*a = VAlign(i)
	return err
}

// Orientation selects which face axis rows run along.
type Orientation int

const (
	// RowMajor lays rows along the face width (U) and stacks them along V.
	RowMajor Orientation = iota
	// ColumnMajor lays rows along the face height (V) and stacks them along U.
	ColumnMajor
)

var orientationNames = [...]string{"row", "column"}

func (o Orientation) String() string {
	if o < 0 || int(o) >= len(orientationNames) {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	i, err := lookup(orientationNames[:], string(b), "orientation")
	*o = Orientation(i)
	return err
}

// DepthMode decides how face elements sit relative to the surface.
type DepthMode int

const (
	// DepthCut elements penetrate the solid and protrude one unit past the
	// surface so a boolean subtraction leaves no skin.
	DepthCut DepthMode = iota
	// DepthRaise elements stand proud of the surface, embedded one unit.
	DepthRaise
)

var depthModeNames = [...]string{"cut", "raise"}

func (m DepthMode) String() string {
	if m < 0 || int(m) >= len(depthModeNames) {
		return fmt.Sprintf("DepthMode(%d)", int(m))
	}
	return depthModeNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m DepthMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *DepthMode) UnmarshalText(b []byte) error {
	i, err := lookup(depthModeNames[:], string(b), "depth mode")
	*m = DepthMode(i)
	return err
}

func lookup(names []string, s, what string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (must be one of: %s)", what, s, strings.Join(names, ", "))
}
