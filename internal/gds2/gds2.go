// Package gds2 streams a bit-exact binary GDS2 layout: a library
// header, a single structure containing one SREF per placed item, and
// the closing records. No GDS2 library exists in the wider Go
// ecosystem, so this writer is built directly on encoding/binary — a
// justified stdlib component (see DESIGN.md) rather than a fallback
// from a missing third-party choice.
package gds2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/moseley-eda/padring/internal/orient"
	"github.com/moseley-eda/padring/internal/sides"
)

// ErrIO wraps any short write to the output sink.
var ErrIO = errors.New("gds2: write failed")

// Record tags for the GDS2 stream format.
const (
	tagHeader  = 0x0002
	tagBgnLib  = 0x0102
	tagLibName = 0x0206
	tagUnits   = 0x0305
	tagBgnStr  = 0x0502
	tagStrName = 0x0606
	tagSRef    = 0x0A00
	tagSName   = 0x1206
	tagSTrans  = 0x1A01
	tagAngle   = 0x1C05
	tagXY      = 0x1003
	tagEndEl   = 0x1100
	tagEndStr  = 0x0700
	tagEndLib  = 0x0400

	headerVersion = 0x0003
)

// GDS2 8-byte real bit patterns for the four permitted ANGLE values.
// No general float-to-GDS2-real converter is needed because these four
// values are the only ones ever emitted.
var angleBytes = map[int][8]byte{
	90:  {0x42, 0x5A, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	180: {0x42, 0xB4, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	270: {0x43, 0x10, 0xE0, 0x00, 0x00, 0x00, 0x00, 0x00},
}

// unitsUserPerDB and unitsMetersPerDB are the canonical GDS2 reals for
// 1 µm user units / 1 nm database units.
var unitsUserPerDB = [8]byte{0x3E, 0x41, 0x89, 0x37, 0x4B, 0xC6, 0xA7, 0xEF}
var unitsMetersPerDB = [8]byte{0x39, 0x44, 0xB8, 0x2F, 0xA0, 0x9B, 0x5A, 0x54}

// Writer streams GDS2 records to an underlying io.Writer.
type Writer struct {
	w       io.Writer
	libName string
	strName string
}

// DefaultLibName is the library name placeholder used when none is
// supplied, exposed as an input so callers can override it.
const DefaultLibName = "AAAAAAAAAAAAAA"

// NewWriter opens a GDS2 stream over w, writing the HEADER through
// STRNAME records immediately.
func NewWriter(w io.Writer, libName, designName string) (*Writer, error) {
	if libName == "" {
		libName = DefaultLibName
	}
	gw := &Writer{w: w, libName: libName, strName: designName}
	if err := gw.writeHeader(); err != nil {
		return nil, err
	}
	return gw, nil
}

func (g *Writer) write(p []byte) error {
	n, err := g.w.Write(p)
	if err != nil || n != len(p) {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func (g *Writer) record(tag uint16, payload []byte) error {
	length := uint16(4 + len(payload))
	buf := make([]byte, 4, 4+len(payload))
	binary.BigEndian.PutUint16(buf[0:2], length)
	binary.BigEndian.PutUint16(buf[2:4], tag)
	buf = append(buf, payload...)
	return g.write(buf)
}

func padEven(s string) []byte {
	b := []byte(s)
	if len(b)%2 == 1 {
		b = append(b, 0)
	}
	return b
}

func (g *Writer) writeHeader() error {
	if err := g.record(tagHeader, []byte{0x00, headerVersion}); err != nil {
		return err
	}
	if err := g.record(tagBgnLib, make([]byte, 24)); err != nil {
		return err
	}
	if err := g.record(tagLibName, padEven(g.libName)); err != nil {
		return err
	}
	units := make([]byte, 0, 16)
	units = append(units, unitsUserPerDB[:]...)
	units = append(units, unitsMetersPerDB[:]...)
	if err := g.record(tagUnits, units); err != nil {
		return err
	}
	if err := g.record(tagBgnStr, make([]byte, 24)); err != nil {
		return err
	}
	return g.record(tagStrName, padEven(g.strName))
}

// WriteItem emits one SREF block for a placed item.
func (g *Writer) WriteItem(item sides.Item, o orient.Orientation) error {
	if err := g.record(tagSRef, nil); err != nil {
		return err
	}
	if err := g.record(tagSName, padEven(item.CellName)); err != nil {
		return err
	}
	var trans uint16
	if o.FlipY {
		trans = 0x8000
	}
	transBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(transBuf, trans)
	if err := g.record(tagSTrans, transBuf); err != nil {
		return err
	}
	if o.RotationDeg != 0 {
		bytes := angleBytes[o.RotationDeg]
		if err := g.record(tagAngle, bytes[:]); err != nil {
			return err
		}
	}
	xEmit := item.X + o.Dx
	yEmit := item.Y + o.Dy
	xy := make([]byte, 8)
	binary.BigEndian.PutUint32(xy[0:4], uint32(int32(roundNm(xEmit))))
	binary.BigEndian.PutUint32(xy[4:8], uint32(int32(roundNm(yEmit))))
	if err := g.record(tagXY, xy); err != nil {
		return err
	}
	return g.record(tagEndEl, nil)
}

func roundNm(microns float64) int64 {
	if microns >= 0 {
		return int64(microns*1000 + 0.5)
	}
	return -int64(-microns*1000 + 0.5)
}

// Close writes ENDSTR and ENDLIB, closing the structure and library.
func (g *Writer) Close() error {
	if err := g.record(tagEndStr, nil); err != nil {
		return err
	}
	return g.record(tagEndLib, nil)
}
