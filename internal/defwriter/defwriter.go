// Package defwriter emits a minimal DEF COMPONENTS section for the
// placed pad ring, for consumption by place-and-route tooling. DEF
// orientation codes are derived from the same internal/orient.Orientation
// the GDS2 encoder consumes, via a pure lookup table (orient.go in this
// package).
package defwriter

import (
	"fmt"
	"io"

	"github.com/moseley-eda/padring/internal/orient"
	"github.com/moseley-eda/padring/internal/sides"
)

// Writer emits a DEF document to an underlying io.Writer.
type Writer struct {
	w          io.Writer
	designName string
	dbUnits    float64
	items      []defItem
}

type defItem struct {
	instName string
	cellName string
	x, y     float64
	orient   string
}

// NewWriter prepares a DEF writer, writing the header and unit
// declaration immediately. dbUnits is the LEF database-units-per micron
// value (distinct from GDS2's fixed 1nm database unit).
func NewWriter(w io.Writer, designName string, dbUnits float64) (*Writer, error) {
	d := &Writer{w: w, designName: designName, dbUnits: dbUnits}
	_, err := fmt.Fprintf(d.w, "VERSION 5.8 ;\nDESIGN %s ;\nUNITS DISTANCE MICRONS %g ;\n",
		d.designName, d.dbUnits)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// WriteItem buffers one placed item; DEF's COMPONENTS section needs a
// leading count, so items accumulate until Close.
func (d *Writer) WriteItem(item sides.Item, o orient.Orientation) error {
	d.items = append(d.items, defItem{
		instName: fmt.Sprintf("%s_%d", item.Location, len(d.items)),
		cellName: item.CellName,
		x:        item.X + o.Dx,
		y:        item.Y + o.Dy,
		orient:   DefOrient(o),
	})
	return nil
}

// Close writes the buffered COMPONENTS section and the END DESIGN
// terminator.
func (d *Writer) Close() error {
	if _, err := fmt.Fprintf(d.w, "COMPONENTS %d ;\n", len(d.items)); err != nil {
		return err
	}
	for _, it := range d.items {
		x := int64(it.x*d.dbUnits + 0.5)
		y := int64(it.y*d.dbUnits + 0.5)
		if _, err := fmt.Fprintf(d.w, "- %s %s + PLACED ( %d %d ) %s ;\n",
			it.instName, it.cellName, x, y, it.orient); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(d.w, "END COMPONENTS"); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.w, "END DESIGN")
	return err
}
