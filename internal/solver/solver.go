// Package solver resolves a sides.Model's placement directives into
// absolute coordinates and packs the remaining gaps with filler cells.
// The cursor-advance style — walk items in order, assign position from
// a running offset, then advance the offset by the item's size —
// generalizes a 2D flexbox main/cross axis to a single 1D perimeter
// axis per side.
package solver

import (
	"errors"
	"fmt"
	"sort"

	"github.com/moseley-eda/padring/internal/catalog"
	"github.com/moseley-eda/padring/internal/geom"
	"github.com/moseley-eda/padring/internal/sides"
)

// ErrNoDieSize is returned when the die width or height is not
// meaningfully positive.
var ErrNoDieSize = errors.New("solver: die width and height must be > 1e-6 microns")

// ErrOverfull is returned when a side's fixed content exceeds its usable
// length.
var ErrOverfull = errors.New("solver: side is overfull")

// ErrUnfillable is returned when no filler cell fits a residual gap.
var ErrUnfillable = errors.New("solver: gap cannot be filled")

const dieSizeEpsilon = 1e-6

// Solved is the per-side output of the layout solver: the four corner
// items (each emitted exactly once) and, per side, the interior items in
// user order with resolved absolute positions and sizes. FIXED_SPACE and
// FLEX_SPACE items are left unexpanded here; PackFillers materializes
// them into filler cells.
type Solved struct {
	Corners   map[sides.Location]sides.Item
	SideItems [4][]sides.Item // indexed by sides.Side
}

// Solve resolves positions for all four sides of the ring.
func Solve(model *sides.Model, dieW, dieH, grid float64, cat *catalog.Catalog) (*Solved, error) {
	if dieW <= dieSizeEpsilon || dieH <= dieSizeEpsilon {
		return nil, ErrNoDieSize
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	nFirst, err := cat.Lookup(model.FirstCorner(sides.North).CellName)
	if err != nil {
		return nil, err
	}
	nLast, err := cat.Lookup(model.LastCorner(sides.North).CellName)
	if err != nil {
		return nil, err
	}
	sFirst, err := cat.Lookup(model.FirstCorner(sides.South).CellName)
	if err != nil {
		return nil, err
	}
	sLast, err := cat.Lookup(model.LastCorner(sides.South).CellName)
	if err != nil {
		return nil, err
	}

	corners := map[sides.Location]sides.Item{}
	nw := sides.Item{Kind: sides.KindCorner, CellName: model.FirstCorner(sides.North).CellName,
		Size: nFirst.SizeX, X: 0, Y: dieH - nFirst.SizeY, Location: sides.LocNW, SizeX: nFirst.SizeX, SizeY: nFirst.SizeY}
	ne := sides.Item{Kind: sides.KindCorner, CellName: model.LastCorner(sides.North).CellName,
		Size: nLast.SizeX, X: dieW - nLast.SizeX, Y: dieH - nLast.SizeY, Location: sides.LocNE, SizeX: nLast.SizeX, SizeY: nLast.SizeY}
	sw := sides.Item{Kind: sides.KindCorner, CellName: model.FirstCorner(sides.South).CellName,
		Size: sFirst.SizeX, X: 0, Y: 0, Location: sides.LocSW, SizeX: sFirst.SizeX, SizeY: sFirst.SizeY}
	se := sides.Item{Kind: sides.KindCorner, CellName: model.LastCorner(sides.South).CellName,
		Size: sLast.SizeX, X: dieW - sLast.SizeX, Y: 0, Location: sides.LocSE, SizeX: sLast.SizeX, SizeY: sLast.SizeY}
	corners[sides.LocNW], corners[sides.LocNE] = nw, ne
	corners[sides.LocSW], corners[sides.LocSE] = sw, se

	solved := &Solved{Corners: corners}

	plan := []struct {
		side       sides.Side
		usable     float64
		startX     float64
		startY     float64
		constY     *float64
		constX     *float64
	}{
		{sides.North, dieW - nw.SizeX - ne.SizeX, nw.SizeX, 0, ptr(dieH), nil},
		{sides.South, dieW - sw.SizeX - se.SizeX, sw.SizeX, 0, ptr(0), nil},
		{sides.West, dieH - sw.SizeY - nw.SizeY, 0, sw.SizeY, nil, ptr(0)},
		{sides.East, dieH - se.SizeY - ne.SizeY, 0, se.SizeY, nil, ptr(dieW)},
	}

	for _, p := range plan {
		items, err := solveSide(model, p.side, p.usable, p.startX, p.startY, p.constX, p.constY, grid, cat)
		if err != nil {
			return nil, err
		}
		solved.SideItems[p.side] = items
	}
	return solved, nil
}

func ptr(v float64) *float64 { return &v }

// solveSide resolves one side's interior directives to positions.
func solveSide(model *sides.Model, s sides.Side, usable, startX, startY float64, constX, constY *float64, grid float64, cat *catalog.Catalog) ([]sides.Item, error) {
	interior := model.Interior(s)

	fixedTotal := 0.0
	flexIdx := []int{}
	itemSize := make([]float64, len(interior))
	itemCell := make([]catalog.Descriptor, len(interior))
	for i, d := range interior {
		switch d.Kind {
		case sides.KindCell:
			desc, err := cat.Lookup(d.CellName)
			if err != nil {
				return nil, err
			}
			itemCell[i] = desc
			itemSize[i] = desc.SizeX
			fixedTotal += desc.SizeX
		case sides.KindFixedSpace:
			itemSize[i] = d.Width
			fixedTotal += d.Width
		case sides.KindFlexSpace:
			flexIdx = append(flexIdx, i)
		default:
			return nil, fmt.Errorf("solver: side %s has unsupported interior directive kind %d", s, d.Kind)
		}
	}

	deficit := usable - fixedTotal
	if deficit < 0 {
		return nil, fmt.Errorf("%w: side %s needs %.6f more microns than available", ErrOverfull, s, -deficit)
	}

	var trailingGap float64
	if len(flexIdx) == 0 {
		// Under-fill with no flex item becomes a trailing gap the
		// filler packer must close.
		trailingGap = deficit
	} else {
		raw := deficit / float64(len(flexIdx))
		quantized := geom.QuantizeGridFloor(raw, grid)
		for _, idx := range flexIdx {
			itemSize[idx] = quantized
		}
		residue := deficit - quantized*float64(len(flexIdx))
		itemSize[flexIdx[len(flexIdx)-1]] += residue
	}

	items := make([]sides.Item, 0, len(interior)+1)
	cx, cy := startX, startY
	for i, d := range interior {
		x, y := cx, cy
		if constY != nil {
			y = *constY
		}
		if constX != nil {
			x = *constX
		}
		it := sides.Item{
			Size:     itemSize[i],
			X:        x,
			Y:        y,
			Location: sideLocation(s),
		}
		switch d.Kind {
		case sides.KindCell:
			it.Kind = sides.KindCell
			it.CellName = d.CellName
			it.Flipped = d.Flipped
			it.SizeX = itemCell[i].SizeX
			it.SizeY = itemCell[i].SizeY
		case sides.KindFixedSpace:
			it.Kind = sides.KindFixedSpace
		case sides.KindFlexSpace:
			it.Kind = sides.KindFlexSpace
		}
		items = append(items, it)
		if constY != nil {
			cx += itemSize[i]
		} else {
			cy += itemSize[i]
		}
	}

	if trailingGap > 0 {
		x, y := cx, cy
		if constY != nil {
			y = *constY
		}
		if constX != nil {
			x = *constX
		}
		items = append(items, sides.Item{
			Kind:     sides.KindFixedSpace,
			Size:     trailingGap,
			X:        x,
			Y:        y,
			Location: sideLocation(s),
		})
	}

	return items, nil
}

func sideLocation(s sides.Side) sides.Location {
	switch s {
	case sides.North:
		return sides.LocN
	case sides.South:
		return sides.LocS
	case sides.East:
		return sides.LocE
	case sides.West:
		return sides.LocW
	default:
		return sides.LocN
	}
}

// PackFillers expands a FIXED_SPACE/FLEX_SPACE item into a sequence of
// filler items that tile its length exactly, starting at the space's
// original (x, y) and advancing along the side's natural axis.
func PackFillers(gap sides.Item, fillers *catalog.FillerCatalog, cat *catalog.Catalog) ([]sides.Item, error) {
	remaining := gap.Size
	var out []sides.Item
	x, y := gap.X, gap.Y
	horizontal := gap.Location == sides.LocN || gap.Location == sides.LocS

	for remaining > 0 {
		d, ok := fillers.LargestFit(remaining)
		if !ok {
			return nil, fmt.Errorf("%w: %.6f microns remaining on side %s", ErrUnfillable, remaining, gap.Location)
		}
		desc, err := cat.Lookup(d.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, sides.Item{
			Kind:     sides.KindFiller,
			CellName: d.Name,
			Size:     d.SizeX,
			X:        x,
			Y:        y,
			Location: gap.Location,
			SizeX:    desc.SizeX,
			SizeY:    desc.SizeY,
		})
		if horizontal {
			x += d.SizeX
		} else {
			y += d.SizeX
		}
		remaining -= d.SizeX
	}
	return out, nil
}

// TileLength sums the Size of every item in items; used by tests to
// assert tile exactness.
func TileLength(items []sides.Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Size
	}
	return total
}

// SortedByX is a helper for overlap tests: returns items sorted by X.
func SortedByX(items []sides.Item) []sides.Item {
	out := make([]sides.Item, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}
