// Package svgwriter renders the placed pad ring as an SVG document for
// visual review. Each item becomes a colored <rect> plus a <text>
// label; the palette is a small, fixed table reduced to the three kinds
// of item ever drawn: corner, cell, filler.
package svgwriter

import (
	"fmt"
	"html"
	"io"

	"github.com/moseley-eda/padring/internal/orient"
	"github.com/moseley-eda/padring/internal/sides"
)

// Writer emits an SVG document to an underlying io.Writer.
type Writer struct {
	w          io.Writer
	dieW, dieH float64
}

// NewWriter prepares an SVG writer for a die of the given size (microns,
// used 1:1 as SVG user units), writing the document header and die
// outline immediately.
func NewWriter(w io.Writer, dieW, dieH float64) (*Writer, error) {
	s := &Writer{w: w, dieW: dieW, dieH: dieH}
	_, err := fmt.Fprintf(s.w, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g">
<rect x="0" y="0" width="%g" height="%g" fill="none" stroke="black" stroke-width="0.2"/>
`, s.dieW, s.dieH, s.dieW, s.dieH)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func colorFor(kind sides.Kind) string {
	switch kind {
	case sides.KindCorner:
		return "#c0392b"
	case sides.KindCell:
		return "#2980b9"
	case sides.KindFiller:
		return "#bdc3c7"
	default:
		return "#7f8c8d"
	}
}

// WriteItem draws one placed item. SVG's coordinate system is Y-down, so
// the item's die-space Y (origin at SW, +y north) is flipped to SVG
// space (origin at top-left, +y down).
func (s *Writer) WriteItem(item sides.Item, _ orient.Orientation) error {
	svgY := s.dieH - item.Y - item.SizeY
	w, h := item.SizeX, item.SizeY
	if w == 0 {
		w = item.Size
	}
	_, err := fmt.Fprintf(s.w, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s" stroke="black" stroke-width="0.05"/>
<text x="%g" y="%g" font-size="%g" text-anchor="middle">%s</text>
`, item.X, svgY, w, h, colorFor(item.Kind),
		item.X+w/2, svgY+h/2, minFloat(h, 2), html.EscapeString(item.CellName))
	return err
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Close writes the closing </svg> tag.
func (s *Writer) Close() error {
	_, err := fmt.Fprintln(s.w, "</svg>")
	return err
}
