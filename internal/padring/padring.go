// Package padring wires the catalog, solver, orientation, and encoder
// packages into a single top-to-bottom run: resolve positions, pack
// fillers into the remaining gaps, and fan every placed item out to
// whichever output encoders are enabled. Corners are emitted first (all
// four), then each side's interior items, in that fixed order; every
// sink is closed on every exit path, including an early abort, so a
// partially written stream is still syntactically terminated.
package padring

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/moseley-eda/padring/internal/catalog"
	"github.com/moseley-eda/padring/internal/config"
	"github.com/moseley-eda/padring/internal/orient"
	"github.com/moseley-eda/padring/internal/sides"
	"github.com/moseley-eda/padring/internal/solver"
)

// ErrNoSinks is returned when Run is asked to drive zero output
// encoders; a run that produces nothing is almost always a
// configuration mistake rather than deliberate.
var ErrNoSinks = errors.New("padring: no output encoders configured")

// Encoder is the minimal sink every output format (GDS2, DEF, SVG)
// implements: accept one placed, oriented item, and close out the
// stream when the run finishes. Header framing is the encoder's own
// responsibility, done at construction time.
type Encoder interface {
	WriteItem(item sides.Item, o orient.Orientation) error
	Close() error
}

// emitOrder lists the corners in the fixed emission order: NW, NE, SW,
// SE, each emitted exactly once.
var emitOrder = [4]sides.Location{sides.LocNW, sides.LocNE, sides.LocSW, sides.LocSE}

// sideOrder lists the four sides in the order their interiors are
// walked after the corners.
var sideOrder = [4]sides.Side{sides.North, sides.South, sides.West, sides.East}

// Run executes one full pad-ring build: solve positions, pack fillers,
// and fan every item out to sinks. It returns the first error
// encountered; sinks are closed regardless of how the run ends.
func Run(log *slog.Logger, cfg *config.Config, cat *catalog.Catalog, fillers *catalog.FillerCatalog, sinks []Encoder) (err error) {
	if log == nil {
		log = slog.Default()
	}
	if len(sinks) == 0 {
		return ErrNoSinks
	}

	defer func() {
		for _, s := range sinks {
			if cerr := s.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("padring: close sink: %w", cerr)
			}
		}
	}()

	model, err := cfg.ToModel()
	if err != nil {
		return fmt.Errorf("padring: %w", err)
	}

	solved, err := solver.Solve(model, cfg.DieWidth, cfg.DieHeight, cfg.Grid, cat)
	if err != nil {
		return fmt.Errorf("padring: %w", err)
	}
	log.Info("layout solved", "die_width", cfg.DieWidth, "die_height", cfg.DieHeight)

	for _, loc := range emitOrder {
		item := solved.Corners[loc]
		if err := emit(sinks, item); err != nil {
			return err
		}
	}

	for _, s := range sideOrder {
		for _, item := range solved.SideItems[s] {
			switch item.Kind {
			case sides.KindFixedSpace, sides.KindFlexSpace:
				packed, err := solver.PackFillers(item, fillers, cat)
				if err != nil {
					return fmt.Errorf("padring: %w", err)
				}
				log.Debug("packed gap", "side", s, "count", len(packed))
				for _, f := range packed {
					if err := emit(sinks, f); err != nil {
						return err
					}
				}
			default:
				if err := emit(sinks, item); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// emit resolves an item's orientation and fans it out to every sink.
func emit(sinks []Encoder, item sides.Item) error {
	o := orient.Resolve(item.Location, item.Flipped, item.SizeX, item.SizeY)
	for _, s := range sinks {
		if err := s.WriteItem(item, o); err != nil {
			return fmt.Errorf("padring: write item %s: %w", item.CellName, err)
		}
	}
	return nil
}
