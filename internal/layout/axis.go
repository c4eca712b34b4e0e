package layout

// Padding widens the axis beyond the first and last event year.
type Padding struct {
	Before int
	After  int
}

// DefaultPadding leaves more room after the last event than before the
// first so trailing labels have space to overflow.
var DefaultPadding = Padding{Before: 3, After: 8}

// Axis maps years onto a normalized [0,100] scale.
type Axis struct {
	MinYear int
	MaxYear int
	empty   bool
}

// NewAxis derives the padded bounds from the given years. With no years the
// axis is empty and every position is 0.
func NewAxis(years []int, pad Padding) Axis {
	if len(years) == 0 {
		return Axis{empty: true}
	}
	lo, hi := years[0], years[0]
	for _, y := range years[1:] {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	return Axis{MinYear: lo - pad.Before, MaxYear: hi + pad.After}
}

// Empty reports whether the axis was built from no events.
func (a Axis) Empty() bool {
	return a.empty
}

// Span is the number of years covered by the axis.
func (a Axis) Span() int {
	return a.MaxYear - a.MinYear
}

// Pos returns the position of year on the axis as a percentage.
func (a Axis) Pos(year int) float64 {
	span := a.Span()
	if a.empty || span <= 0 {
		return 0
	}
	return float64(year-a.MinYear) / float64(span) * 100
}
