// Package lef is a small, purpose-built scanner over the subset of LEF
// syntax needed here: MACRO blocks giving a cell's SIZE and whether its
// CLASS marks it as a filler/cover cell. Full LEF grammar (pins, sites,
// vias, routing layers) is out of scope; this is a minimal, line-
// oriented reader, not a general LEF implementation. No ecosystem
// library parses LEF, so bufio.Scanner is used directly rather than
// through a generic parsing library (see DESIGN.md).
package lef

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/moseley-eda/padring/internal/catalog"
)

// Parse reads a LEF document and returns one catalog.Descriptor per
// MACRO block encountered.
func Parse(r io.Reader) ([]catalog.Descriptor, error) {
	sc := bufio.NewScanner(r)
	var out []catalog.Descriptor
	var cur *catalog.Descriptor
	var isCover bool
	lineNo := 0

	flush := func() {
		if cur != nil {
			cur.IsFiller = isCover
			out = append(out, *cur)
		}
		cur = nil
		isCover = false
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimSuffix(sc.Text(), ";"))
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "MACRO":
			if len(fields) < 2 {
				return nil, fmt.Errorf("lef: line %d: MACRO missing name", lineNo)
			}
			flush()
			cur = &catalog.Descriptor{Name: fields[1]}
		case "SIZE":
			// SIZE <sx> BY <sy>
			if cur == nil || len(fields) < 4 {
				continue
			}
			sx, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("lef: line %d: bad SIZE width: %w", lineNo, err)
			}
			sy, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("lef: line %d: bad SIZE height: %w", lineNo, err)
			}
			cur.SizeX, cur.SizeY = sx, sy
		case "CLASS":
			if cur == nil {
				continue
			}
			for _, f := range fields[1:] {
				if strings.EqualFold(f, "COVER") {
					isCover = true
				}
			}
		case "END":
			if len(fields) >= 2 && cur != nil && fields[1] == cur.Name {
				flush()
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("lef: scan: %w", err)
	}
	flush()
	return out, nil
}
