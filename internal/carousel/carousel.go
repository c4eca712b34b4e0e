// Package carousel models the horizontal strip of video cards.
package carousel

// Direction of a scroll request.
type Direction int

const (
	Left Direction = iota
	Right
)

// Affordance tells which scroll hints (arrows, edge fades) are visible.
type Affordance struct {
	CanScrollLeft  bool
	CanScrollRight bool
}

// Viewport holds the scroll geometry of the strip in pixels.
type Viewport struct {
	ScrollLeft  int
	ScrollWidth int // total content width
	ClientWidth int // visible width

	step      int
	tolerance int
}

// ContentWidth is the scroll width of n cards laid out with gap between
// them inside a track padded by padding on each side.
func ContentWidth(n, cardWidth, gap, padding int) int {
	if n <= 0 {
		return 2 * padding
	}
	return n*cardWidth + (n-1)*gap + 2*padding
}

// NewViewport returns a viewport scrolled to the start.
func NewViewport(scrollWidth, clientWidth, step, tolerance int) *Viewport {
	return &Viewport{
		ScrollWidth: scrollWidth,
		ClientWidth: clientWidth,
		step:        step,
		tolerance:   tolerance,
	}
}

// Affordance derives the hint state from the current scroll position.
// Positions within tolerance of an edge count as being at that edge.
func (v *Viewport) Affordance() Affordance {
	return Affordance{
		CanScrollLeft:  v.ScrollLeft > v.tolerance,
		CanScrollRight: v.ScrollLeft < v.ScrollWidth-v.ClientWidth-v.tolerance,
	}
}

// ScrollBy moves one step in dir and returns the new affordance.
func (v *Viewport) ScrollBy(dir Direction) Affordance {
	delta := v.step
	if dir == Left {
		delta = -delta
	}
	return v.ScrollTo(v.ScrollLeft + delta)
}

// ScrollTo jumps to x, clamped to the scrollable range.
func (v *Viewport) ScrollTo(x int) Affordance {
	v.ScrollLeft = clamp(x, 0, v.maxScroll())
	return v.Affordance()
}

// Resize changes the visible width, as a window resize would.
func (v *Viewport) Resize(clientWidth int) Affordance {
	v.ClientWidth = max(clientWidth, 0)
	v.ScrollLeft = clamp(v.ScrollLeft, 0, v.maxScroll())
	return v.Affordance()
}

func (v *Viewport) maxScroll() int {
	return max(v.ScrollWidth-v.ClientWidth, 0)
}

func clamp(x, lo, hi int) int {
	return max(lo, min(x, hi))
}
