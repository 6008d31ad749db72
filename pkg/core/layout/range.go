package layout

import "github.com/matzehuels/skyline/pkg/core/random"

// Range is a closed interval a size or spacing is drawn from.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// NewRange resolves a configured (min, max) pair. Inverted bounds are
// swapped and a zero lower bound collapses onto the upper bound, so a
// config that only sets one value yields a fixed size.
func NewRange(a, b float64) Range {
	lo, hi := min(a, b), max(a, b)
	if lo == 0 {
		lo = hi
	}
	return Range{Low: lo, High: hi}
}

// VarianceRange returns [base, base+variance] with base raised to at least
// floor. A negative variance is treated as zero.
func VarianceRange(base, variance, floor float64) Range {
	base = max(base, floor)
	return Range{Low: base, High: base + max(variance, 0)}
}

// Cap clamps the upper bound to limit and the lower bound to the new upper
// bound.
func (r Range) Cap(limit float64) Range {
	r.High = min(r.High, limit)
	r.Low = min(r.Low, r.High)
	return r
}

// Valid reports whether values drawn from r are positive sizes.
func (r Range) Valid() bool {
	return r.Low > 0 && r.Low <= r.High
}

// Fixed reports whether r has no spread.
func (r Range) Fixed() bool { return r.Low == r.High }

// Draw returns a uniform value from r. It always consumes one draw.
func (r Range) Draw(s *random.Stream) float64 {
	return s.Uniform(r.Low, r.High)
}

// IntRange is the integer counterpart of Range, used for floor counts.
type IntRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// IntVarianceRange returns [max(base, floor), that + variance].
func IntVarianceRange(base, variance, floor int) IntRange {
	base = max(base, floor)
	return IntRange{Low: base, High: base + max(variance, 0)}
}

// Draw returns a value in r, both ends inclusive.
func (r IntRange) Draw(s *random.Stream) int {
	return s.IntRange(r.Low, r.High)
}
