package solver_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moseley-eda/padring/internal/catalog"
	"github.com/moseley-eda/padring/internal/sides"
	"github.com/moseley-eda/padring/internal/solver"
)

func squareRingCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Descriptor{
		{Name: "CORNER", SizeX: 10, SizeY: 10},
		{Name: "PAD20", SizeX: 20, SizeY: 50},
		{Name: "FILL10", SizeX: 10, SizeY: 50, IsFiller: true},
	})
}

func ringModel() *sides.Model {
	m := sides.NewModel()
	for _, s := range []sides.Side{sides.North, sides.South, sides.East, sides.West} {
		m.Append(s, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
		m.Append(s, sides.Directive{Kind: sides.KindFlexSpace})
		m.Append(s, sides.Directive{Kind: sides.KindCell, CellName: "PAD20"})
		m.Append(s, sides.Directive{Kind: sides.KindFlexSpace})
		m.Append(s, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
	}
	return m
}

// TestSolve_FlexDistribution mirrors a North side with usable = 80, two
// 10µm cells, two FLEX_SPACE entries: each flex should resolve to 30µm
// before filler packing.
func TestSolve_FlexDistribution(t *testing.T) {
	cat := catalog.New([]catalog.Descriptor{
		{Name: "CORNER", SizeX: 10, SizeY: 10},
		{Name: "PAD10", SizeX: 10, SizeY: 50},
	})
	m := sides.NewModel()
	m.Append(sides.North, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
	m.Append(sides.North, sides.Directive{Kind: sides.KindFlexSpace})
	m.Append(sides.North, sides.Directive{Kind: sides.KindCell, CellName: "PAD10"})
	m.Append(sides.North, sides.Directive{Kind: sides.KindCell, CellName: "PAD10"})
	m.Append(sides.North, sides.Directive{Kind: sides.KindFlexSpace})
	m.Append(sides.North, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
	for _, s := range []sides.Side{sides.South, sides.East, sides.West} {
		m.Append(s, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
		m.Append(s, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
	}

	solved, err := solver.Solve(m, 100, 100, 1, cat)
	require.NoError(t, err)

	for _, item := range solved.SideItems[sides.North] {
		if item.Kind == sides.KindFlexSpace {
			require.Equal(t, 30.0, item.Size)
		}
	}
}

func TestSolve_TileExactnessAndNoOverlap(t *testing.T) {
	cat := squareRingCatalog()
	solved, err := solver.Solve(ringModel(), 100, 100, 1, cat)
	require.NoError(t, err)

	north := solver.SortedByX(solved.SideItems[sides.North])
	require.True(t, sort.SliceIsSorted(north, func(i, j int) bool { return north[i].X < north[j].X }))

	for _, s := range []sides.Side{sides.North, sides.South, sides.East, sides.West} {
		items := solved.SideItems[s]
		total := solver.TileLength(items)
		require.InDelta(t, 80, total, 1e-9, "interior should tile the usable length exactly")

		axis := func(it sides.Item) float64 { return it.X }
		if s == sides.East || s == sides.West {
			axis = func(it sides.Item) float64 { return it.Y }
		}
		sortedItems := append([]sides.Item(nil), items...)
		sort.Slice(sortedItems, func(i, j int) bool { return axis(sortedItems[i]) < axis(sortedItems[j]) })
		for i := 1; i < len(sortedItems); i++ {
			require.GreaterOrEqual(t, axis(sortedItems[i]), axis(sortedItems[i-1])+sortedItems[i-1].Size-1e-9)
		}
	}
}

func TestSolve_CornerCoverage(t *testing.T) {
	cat := squareRingCatalog()
	solved, err := solver.Solve(ringModel(), 100, 100, 1, cat)
	require.NoError(t, err)

	nw := solved.Corners[sides.LocNW]
	require.Equal(t, 0.0, nw.X)
	require.Equal(t, 90.0, nw.Y)

	ne := solved.Corners[sides.LocNE]
	require.Equal(t, 90.0, ne.X)
	require.Equal(t, 90.0, ne.Y)

	sw := solved.Corners[sides.LocSW]
	require.Equal(t, 0.0, sw.X)
	require.Equal(t, 0.0, sw.Y)

	se := solved.Corners[sides.LocSE]
	require.Equal(t, 90.0, se.X)
	require.Equal(t, 0.0, se.Y)
}

func TestSolve_Overfull(t *testing.T) {
	cat := catalog.New([]catalog.Descriptor{
		{Name: "CORNER", SizeX: 10, SizeY: 10},
		{Name: "HUGE", SizeX: 500, SizeY: 50},
	})
	m := sides.NewModel()
	m.Append(sides.North, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
	m.Append(sides.North, sides.Directive{Kind: sides.KindCell, CellName: "HUGE"})
	m.Append(sides.North, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
	for _, s := range []sides.Side{sides.South, sides.East, sides.West} {
		m.Append(s, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
		m.Append(s, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
	}

	_, err := solver.Solve(m, 100, 100, 1, cat)
	require.ErrorIs(t, err, solver.ErrOverfull)
}

// TestSolve_NoFlexTrailingGapIsFillerPacked mirrors spec.md §4.4 step 4:
// a side with zero FLEX_SPACE directives whose fixed content under-fills
// the usable length gets a synthetic trailing gap, which PackFillers
// must then tile exactly.
func TestSolve_NoFlexTrailingGapIsFillerPacked(t *testing.T) {
	cat := squareRingCatalog()
	m := sides.NewModel()
	m.Append(sides.North, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
	m.Append(sides.North, sides.Directive{Kind: sides.KindCell, CellName: "PAD20"})
	m.Append(sides.North, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
	for _, s := range []sides.Side{sides.South, sides.East, sides.West} {
		m.Append(s, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
		m.Append(s, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER"})
	}

	solved, err := solver.Solve(m, 100, 100, 1, cat)
	require.NoError(t, err)

	items := solved.SideItems[sides.North]
	require.Len(t, items, 2, "cell plus one synthetic trailing FIXED_SPACE gap")
	require.Equal(t, sides.KindCell, items[0].Kind)

	gap := items[1]
	require.Equal(t, sides.KindFixedSpace, gap.Kind)
	require.Equal(t, 60.0, gap.Size, "usable 80 - 20µm cell = 60µm deficit with no flex entries")
	require.Equal(t, 30.0, gap.X, "gap starts right after the corner (10) plus the cell (20)")

	fillers, err := catalog.NewFillerCatalog(cat, "")
	require.NoError(t, err)
	packed, err := solver.PackFillers(gap, fillers, cat)
	require.NoError(t, err)
	require.InDelta(t, 60.0, solver.TileLength(packed), 1e-9)
	require.Equal(t, 6, len(packed), "six 10µm fillers tile the 60µm trailing gap exactly")
	for _, f := range packed {
		require.Equal(t, sides.KindFiller, f.Kind)
		require.Equal(t, "FILL10", f.CellName)
	}
}

func TestSolve_NoDieSize(t *testing.T) {
	cat := squareRingCatalog()
	_, err := solver.Solve(ringModel(), 0, 100, 1, cat)
	require.ErrorIs(t, err, solver.ErrNoDieSize)
}

// TestPackFillers_Unfillable mirrors a residual 3µm gap against a filler
// set of {10, 5}: neither fits, so the gap cannot be closed.
func TestPackFillers_Unfillable(t *testing.T) {
	cat := catalog.New([]catalog.Descriptor{
		{Name: "FILL10", SizeX: 10, IsFiller: true},
		{Name: "FILL5", SizeX: 5, IsFiller: true},
	})
	fillers, err := catalog.NewFillerCatalog(cat, "")
	require.NoError(t, err)

	gap := sides.Item{Kind: sides.KindFlexSpace, Size: 3, Location: sides.LocN}
	_, err = solver.PackFillers(gap, fillers, cat)
	require.ErrorIs(t, err, solver.ErrUnfillable)
}

func TestPackFillers_TilesExactly(t *testing.T) {
	cat := catalog.New([]catalog.Descriptor{
		{Name: "FILL10", SizeX: 10, IsFiller: true},
		{Name: "FILL2", SizeX: 2, IsFiller: true},
	})
	fillers, err := catalog.NewFillerCatalog(cat, "")
	require.NoError(t, err)

	gap := sides.Item{Kind: sides.KindFlexSpace, Size: 32, X: 5, Y: 0, Location: sides.LocN}
	packed, err := solver.PackFillers(gap, fillers, cat)
	require.NoError(t, err)
	require.InDelta(t, 32.0, solver.TileLength(packed), 1e-9)
	require.Equal(t, 5.0, packed[0].X)
}
