package building

import (
	"fmt"
	"strings"

	"github.com/matzehuels/skyline/pkg/core/geom"
	"github.com/matzehuels/skyline/pkg/errors"
)

// Side names a vertical face of a segment. Sides run counter-clockwise
// seen from above, so the neighbour on a panel's +U edge is Next.
type Side int

const (
	North Side = iota // +X
	East              // +Y
	South             // -X
	West              // -Y
)

// Sides lists all sides in cycle order.
var Sides = [4]Side{North, East, South, West}

var sideNames = [4]string{"north", "east", "south", "west"}

func (s Side) String() string {
	if s < 0 || int(s) >= len(sideNames) {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Normal returns the outward normal in the segment frame.
func (s Side) Normal() geom.Vec3 {
	switch s {
	case North:
		return geom.UnitX
	case East:
		return geom.UnitY
	case South:
		return geom.UnitX.Scale(-1)
	default:
		return geom.UnitY.Scale(-1)
	}
}

// Axis returns the horizontal axis the side faces along.
func (s Side) Axis() int {
	if s == North || s == South {
		return geom.X
	}
	return geom.Y
}

// Tangent returns the other horizontal axis.
func (s Side) Tangent() int { return 1 - s.Axis() }

// Next returns the neighbour on the +U edge.
func (s Side) Next() Side { return (s + 1) % 4 }

// Prev returns the neighbour on the -U edge.
func (s Side) Prev() Side { return (s + 3) % 4 }

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	*s = v
	return err
}

// ParseSide resolves a side name. The first letter is enough.
func ParseSide(name string) (Side, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range sideNames {
		if name == n || (len(name) == 1 && name[0] == n[0]) {
			return Side(i), nil
		}
	}
	return North, errors.New(errors.ErrCodeInvalidInput, "unknown side %q (must be one of: %s)", name, strings.Join(sideNames[:], ", "))
}
