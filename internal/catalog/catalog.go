// Package catalog indexes LEF-derived cell descriptors and the filler
// subset of them.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoFillers is returned when a FillerCatalog would be built from an
// empty set of filler cells.
var ErrNoFillers = errors.New("catalog: no filler cells available")

// ErrCellUnknown is returned when a directive references a cell name that
// has no entry in the catalog.
var ErrCellUnknown = errors.New("catalog: unknown cell")

// Descriptor is a single LEF-derived cell entry. Immutable after load.
type Descriptor struct {
	Name     string
	SizeX    float64 // width, microns
	SizeY    float64 // height, microns
	IsFiller bool
}

// Catalog is a read-only, case-sensitive name index of cell descriptors.
type Catalog struct {
	cells map[string]Descriptor
}

// New builds a Catalog from a slice of descriptors. Duplicate names
// overwrite earlier entries, matching a map literal's semantics.
func New(cells []Descriptor) *Catalog {
	c := &Catalog{cells: make(map[string]Descriptor, len(cells))}
	for _, d := range cells {
		c.cells[d.Name] = d
	}
	return c
}

// Lookup returns the descriptor for name, or ErrCellUnknown if absent.
func (c *Catalog) Lookup(name string) (Descriptor, error) {
	d, ok := c.cells[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrCellUnknown, name)
	}
	return d, nil
}

// Len returns the number of cells in the catalog.
func (c *Catalog) Len() int { return len(c.cells) }

// FillerCatalog is the subset of a Catalog made up of filler cells,
// sorted in descending order by width so the widest fit is always tried
// first.
type FillerCatalog struct {
	entries []Descriptor
}

// NewFillerCatalog builds a FillerCatalog from every descriptor in c
// satisfying isFiller. When prefix is non-empty, isFiller is ignored and
// cells whose name begins with prefix are selected instead, matching the
// CLI's --filler override behavior.
func NewFillerCatalog(c *Catalog, prefix string) (*FillerCatalog, error) {
	var entries []Descriptor
	for _, d := range c.cells {
		if prefix != "" {
			if strings.HasPrefix(d.Name, prefix) {
				entries = append(entries, d)
			}
			continue
		}
		if d.IsFiller {
			entries = append(entries, d)
		}
	}
	if len(entries) == 0 {
		return nil, ErrNoFillers
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].SizeX > entries[j].SizeX })
	return &FillerCatalog{entries: entries}, nil
}

// LargestFit returns the widest filler whose width is <= remaining and
// > 0, or ok=false if none fits.
func (f *FillerCatalog) LargestFit(remaining float64) (Descriptor, bool) {
	for _, d := range f.entries {
		if d.SizeX > 0 && d.SizeX <= remaining {
			return d, true
		}
	}
	return Descriptor{}, false
}

// SmallestWidth returns the width of the narrowest filler in the catalog.
// Used only for diagnostics.
func (f *FillerCatalog) SmallestWidth() float64 {
	return f.entries[len(f.entries)-1].SizeX
}

// Len returns the number of filler cells.
func (f *FillerCatalog) Len() int { return len(f.entries) }
