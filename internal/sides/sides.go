// Package sides models the four cardinal sides of a die as ordered
// collections of placement directives, and the placed items the solver
// derives from them. The shape here — an ordered slice of entries plus
// position bookkeeping — generalizes a container-of-items pattern from
// a collection of drawable shapes to a collection of placement
// directives.
package sides

import "fmt"

// Side names a cardinal side of the die.
type Side int

const (
	North Side = iota
	South
	East
	West
)

func (s Side) String() string {
	switch s {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	default:
		return "?"
	}
}

// Location is where a LayoutItem sits: one of the four sides, or one of
// the four corners.
type Location int

const (
	LocN Location = iota
	LocS
	LocE
	LocW
	LocNE
	LocNW
	LocSE
	LocSW
)

func (l Location) String() string {
	return [...]string{"N", "S", "E", "W", "NE", "NW", "SE", "SW"}[l]
}

// Kind discriminates the role of a LayoutItem.
type Kind int

const (
	KindCorner Kind = iota
	KindCell
	KindFixedSpace
	KindFlexSpace
	KindFiller
)

// Directive is one entry of a side's user-specified placement order, as
// read from configuration.
type Directive struct {
	Kind     Kind
	CellName string  // empty for spaces
	Flipped  bool    // only meaningful for Kind == KindCell
	Width    float64 // only meaningful for Kind == KindFixedSpace
}

// Item is a directive resolved to an absolute position by the solver,
// or a filler cell generated by the packer.
type Item struct {
	Kind     Kind
	CellName string
	Size     float64 // length along the side, microns
	X, Y     float64 // absolute die-coordinate origin, microns
	Location Location
	Flipped  bool
	SizeX    float64 // cell footprint width, microns (0 for pure spaces)
	SizeY    float64 // cell footprint height, microns
}

// Model holds the four sides of a ring, each as an ordered directive
// list bracketed by two corner directives.
type Model struct {
	Sides [4][]Directive // indexed by Side
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{}
}

// Append adds a directive to the end of a side's list.
func (m *Model) Append(s Side, d Directive) {
	m.Sides[s] = append(m.Sides[s], d)
}

// Validate checks the structural invariant that every side begins and
// ends with a corner directive.
func (m *Model) Validate() error {
	for s := North; s <= West; s++ {
		ds := m.Sides[s]
		if len(ds) < 2 {
			return fmt.Errorf("sides: side %s needs at least two corner directives", s)
		}
		if ds[0].Kind != KindCorner || ds[len(ds)-1].Kind != KindCorner {
			return fmt.Errorf("sides: side %s must start and end with a CORNER directive", s)
		}
		for _, d := range ds[1 : len(ds)-1] {
			if d.Kind == KindCorner {
				return fmt.Errorf("sides: side %s has an interior CORNER directive", s)
			}
		}
	}
	return nil
}

// Interior returns a side's directives with the bracketing corners
// removed.
func (m *Model) Interior(s Side) []Directive {
	ds := m.Sides[s]
	if len(ds) < 2 {
		return nil
	}
	return ds[1 : len(ds)-1]
}

// FirstCorner returns a side's opening corner directive.
func (m *Model) FirstCorner(s Side) Directive { return m.Sides[s][0] }

// LastCorner returns a side's closing corner directive.
func (m *Model) LastCorner(s Side) Directive { return m.Sides[s][len(m.Sides[s])-1] }
