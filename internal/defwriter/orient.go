package defwriter

import "github.com/moseley-eda/padring/internal/orient"

// DefOrient translates a GDS2-style (rotation, flip) pair into DEF's
// orientation codes: N/E/S/W for unflipped rotations of 0/90/180/270
// respectively, FN/FE/FS/FW for the corresponding flipped cases.
func DefOrient(o orient.Orientation) string {
	plain := map[int]string{0: "N", 90: "E", 180: "S", 270: "W"}
	flipped := map[int]string{0: "FN", 90: "FE", 180: "FS", 270: "FW"}
	if o.FlipY {
		return flipped[o.RotationDeg]
	}
	return plain[o.RotationDeg]
}
