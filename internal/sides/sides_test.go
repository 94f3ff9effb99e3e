package sides_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moseley-eda/padring/internal/sides"
)

func ring() *sides.Model {
	m := sides.NewModel()
	for _, s := range []sides.Side{sides.North, sides.South, sides.East, sides.West} {
		m.Append(s, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER_A"})
		m.Append(s, sides.Directive{Kind: sides.KindCell, CellName: "PAD"})
		m.Append(s, sides.Directive{Kind: sides.KindCorner, CellName: "CORNER_B"})
	}
	return m
}

func TestModel_ValidateOK(t *testing.T) {
	require.NoError(t, ring().Validate())
}

func TestModel_ValidateMissingCorner(t *testing.T) {
	m := sides.NewModel()
	m.Append(sides.North, sides.Directive{Kind: sides.KindCell, CellName: "PAD"})
	require.Error(t, m.Validate())
}

func TestModel_ValidateInteriorCorner(t *testing.T) {
	m := ring()
	m.Sides[sides.North] = append(m.Sides[sides.North][:1], append([]sides.Directive{
		{Kind: sides.KindCorner, CellName: "OOPS"},
	}, m.Sides[sides.North][1:]...)...)
	require.Error(t, m.Validate())
}

func TestModel_Interior(t *testing.T) {
	m := ring()
	interior := m.Interior(sides.North)
	require.Len(t, interior, 1)
	require.Equal(t, "PAD", interior[0].CellName)
}

func TestModel_FirstLastCorner(t *testing.T) {
	m := ring()
	require.Equal(t, "CORNER_A", m.FirstCorner(sides.East).CellName)
	require.Equal(t, "CORNER_B", m.LastCorner(sides.East).CellName)
}

func TestLocation_String(t *testing.T) {
	require.Equal(t, "NW", sides.LocNW.String())
	require.Equal(t, "SE", sides.LocSE.String())
}

func TestSide_String(t *testing.T) {
	require.Equal(t, "N", sides.North.String())
	require.Equal(t, "W", sides.West.String())
}
