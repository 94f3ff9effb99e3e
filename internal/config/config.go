// Package config loads the YAML configuration document naming the die
// metrics and per-side placement directives. It follows a
// load-then-validate shape, built on gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/moseley-eda/padring/internal/sides"
)

// Config is the root configuration document.
type Config struct {
	DieWidth     float64                   `yaml:"die_width"`
	DieHeight    float64                   `yaml:"die_height"`
	Grid         float64                   `yaml:"grid"`
	DesignName   string                    `yaml:"design_name"`
	FillerPrefix string                    `yaml:"filler_prefix"`
	LEFDBUnits   float64                   `yaml:"lef_db_units"`
	Sides        map[string][]rawDirective `yaml:"sides"`
}

// rawDirective mirrors the YAML shape of a single placement directive;
// exactly one field should be set.
type rawDirective struct {
	Corner     string   `yaml:"corner"`
	Pad        *rawPad  `yaml:"pad"`
	FixedSpace *float64 `yaml:"fixed_space"`
	FlexSpace  bool     `yaml:"flex_space"`
}

type rawPad struct {
	Cell    string `yaml:"cell"`
	Flipped bool   `yaml:"flipped"`
}

// Load parses a configuration document from r.
func Load(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Grid <= 0 {
		cfg.Grid = 1
	}
	if cfg.LEFDBUnits <= 0 {
		cfg.LEFDBUnits = 1000
	}
	return &cfg, nil
}

// sideNames maps the config's string keys to sides.Side values.
var sideNames = map[string]sides.Side{
	"N": sides.North, "S": sides.South, "E": sides.East, "W": sides.West,
}

// ToModel converts the raw per-side directive lists into a sides.Model.
func (c *Config) ToModel() (*sides.Model, error) {
	m := sides.NewModel()
	for key, raws := range c.Sides {
		s, ok := sideNames[key]
		if !ok {
			return nil, fmt.Errorf("config: unknown side %q", key)
		}
		for i, raw := range raws {
			d, err := raw.toDirective()
			if err != nil {
				return nil, fmt.Errorf("config: side %s item %d: %w", key, i, err)
			}
			m.Append(s, d)
		}
	}
	return m, nil
}

func (r rawDirective) toDirective() (sides.Directive, error) {
	switch {
	case r.Corner != "":
		return sides.Directive{Kind: sides.KindCorner, CellName: r.Corner}, nil
	case r.Pad != nil:
		return sides.Directive{Kind: sides.KindCell, CellName: r.Pad.Cell, Flipped: r.Pad.Flipped}, nil
	case r.FixedSpace != nil:
		return sides.Directive{Kind: sides.KindFixedSpace, Width: *r.FixedSpace}, nil
	case r.FlexSpace:
		return sides.Directive{Kind: sides.KindFlexSpace}, nil
	default:
		return sides.Directive{}, fmt.Errorf("empty directive")
	}
}
