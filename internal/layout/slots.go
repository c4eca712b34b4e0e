// Package layout places timeline labels so they do not collide.
//
// Labels live in lanes. Even lanes sit above the axis, odd lanes below it,
// and every pair of lanes is one level further from the axis than the
// previous pair. Events are placed left to right, each into the first lane
// whose last label ends at least one label width before it.
package layout

import (
	"cmp"
	"slices"
)

// Placement defaults.
const (
	// DefaultLabelWidth is the assumed label width as a percentage of the axis.
	DefaultLabelWidth = 7.0

	// DefaultMaxLanes bounds the lane scan before falling back to lane 0.
	DefaultMaxLanes = 8

	// emptyLane is the right edge of a lane nothing has been placed in.
	emptyLane = -99.0
)

// Side says whether a label is drawn above or below the axis.
type Side int

const (
	Above Side = iota
	Below
)

func (s Side) String() string {
	if s == Below {
		return "below"
	}
	return "above"
}

// Slot is the vertical position assigned to a label.
type Slot struct {
	Level int
	Side  Side
}

// Offset is the distance in pixels from the axis to the label.
func (s Slot) Offset(levelHeight int) int {
	return (s.Level + 1) * levelHeight
}

// SlotForLane converts a lane index into its slot.
func SlotForLane(lane int) Slot {
	side := Above
	if lane%2 == 1 {
		side = Below
	}
	return Slot{Level: lane / 2, Side: side}
}

// Options tune placement.
type Options struct {
	LabelWidth float64
	MaxLanes   int
}

// DefaultOptions returns the reference placement settings.
func DefaultOptions() Options {
	return Options{LabelWidth: DefaultLabelWidth, MaxLanes: DefaultMaxLanes}
}

// Item is an event already projected onto the axis.
type Item struct {
	ID  string
	Pos float64
}

// Placement records where one item ended up.
type Placement struct {
	ID       string
	Pos      float64
	Lane     int
	Slot     Slot
	Fallback bool // no lane had room; the label may overlap
}

// Result is the outcome of a placement pass.
type Result struct {
	Placements []Placement
	Slots      map[string]Slot
	Fallbacks  int
}

// Place assigns lanes to items in the order given. It never revisits an
// earlier decision.
func Place(items []Item, opts Options) Result {
	lanes := max(opts.MaxLanes, 1)
	rightEdge := make([]float64, lanes)
	for i := range rightEdge {
		rightEdge[i] = emptyLane
	}

	res := Result{
		Placements: make([]Placement, 0, len(items)),
		Slots:      make(map[string]Slot, len(items)),
	}
	for _, it := range items {
		lane, fallback := 0, true
		for l := range lanes {
			if it.Pos-rightEdge[l] >= opts.LabelWidth {
				lane, fallback = l, false
				break
			}
		}
		if fallback {
			res.Fallbacks++
		}
		rightEdge[lane] = it.Pos

		slot := SlotForLane(lane)
		res.Slots[it.ID] = slot
		res.Placements = append(res.Placements, Placement{
			ID:       it.ID,
			Pos:      it.Pos,
			Lane:     lane,
			Slot:     slot,
			Fallback: fallback,
		})
	}
	return res
}

// Event is the minimal view of a timeline entry needed for placement.
type Event struct {
	ID   string
	Year int
}

// Assign orders events by year (stable on ties), projects them onto axis
// and places their labels.
func Assign(events []Event, axis Axis, opts Options) Result {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Event) int {
		return cmp.Compare(a.Year, b.Year)
	})

	items := make([]Item, len(sorted))
	for i, e := range sorted {
		items[i] = Item{ID: e.ID, Pos: axis.Pos(e.Year)}
	}
	return Place(items, opts)
}
