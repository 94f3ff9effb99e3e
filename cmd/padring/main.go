// padring builds a GDS2 (and optionally SVG, DEF) pad-ring layout from a
// YAML placement configuration and one or more LEF cell libraries.
//
// Usage:
//
//	padring [flags] config_file
//
// Flags:
//
//	--lef string        LEF file to load (repeatable, required)
//	--output string      GDS2 output path (default padring.gds2)
//	--svg string          SVG output path (optional)
//	--def string          DEF output path (optional)
//	--filler string       filler cell name prefix override
//	--quiet               suppress info-level logging
//	--verbose             enable debug-level logging
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/moseley-eda/padring/internal/catalog"
	"github.com/moseley-eda/padring/internal/config"
	"github.com/moseley-eda/padring/internal/defwriter"
	"github.com/moseley-eda/padring/internal/gds2"
	"github.com/moseley-eda/padring/internal/lef"
	"github.com/moseley-eda/padring/internal/padring"
	"github.com/moseley-eda/padring/internal/svgwriter"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("padring", pflag.ContinueOnError)
	lefPaths := flags.StringArray("lef", nil, "LEF file to load (repeatable, required)")
	outPath := flags.String("output", "padring.gds2", "GDS2 output path")
	svgPath := flags.String("svg", "", "SVG output path (optional)")
	defPath := flags.String("def", "", "DEF output path (optional)")
	fillerPrefix := flags.String("filler", "", "filler cell name prefix override")
	quiet := flags.Bool("quiet", false, "suppress info-level logging")
	verbose := flags.Bool("verbose", false, "enable debug-level logging")

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "padring: exactly one config_file argument is required")
		return 2
	}
	if len(*lefPaths) == 0 {
		fmt.Fprintln(os.Stderr, "padring: --lef is required (repeatable)")
		return 2
	}

	level := slog.LevelInfo
	switch {
	case *quiet:
		level = slog.LevelWarn
	case *verbose:
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := runBuild(log, flags.Arg(0), *lefPaths, *outPath, *svgPath, *defPath, *fillerPrefix); err != nil {
		log.Error("build failed", "err", err)
		return 1
	}
	return 0
}

func runBuild(log *slog.Logger, configPath string, lefPaths []string, outPath, svgPath, defPath, fillerPrefix string) error {
	cfgFile, err := os.Open(configPath)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer cfgFile.Close()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if fillerPrefix != "" {
		cfg.FillerPrefix = fillerPrefix
	}

	var descs []catalog.Descriptor
	for _, p := range lefPaths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open lef %s: %w", p, err)
		}
		parsed, err := lef.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("parse lef %s: %w", p, err)
		}
		descs = append(descs, parsed...)
	}
	cat := catalog.New(descs)
	fillers, err := catalog.NewFillerCatalog(cat, cfg.FillerPrefix)
	if err != nil {
		return fmt.Errorf("build filler catalog: %w", err)
	}
	log.Info("catalog loaded", "cells", cat.Len(), "fillers", fillers.Len())

	var sinks []padring.Encoder
	var closers []*os.File

	gdsFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create gds2 output: %w", err)
	}
	closers = append(closers, gdsFile)
	gw, err := gds2.NewWriter(gdsFile, gds2.DefaultLibName, cfg.DesignName)
	if err != nil {
		closeAll(closers)
		return fmt.Errorf("open gds2 writer: %w", err)
	}
	sinks = append(sinks, gw)

	if svgPath != "" {
		svgFile, err := os.Create(svgPath)
		if err != nil {
			closeAll(closers)
			return fmt.Errorf("create svg output: %w", err)
		}
		closers = append(closers, svgFile)
		sw, err := svgwriter.NewWriter(svgFile, cfg.DieWidth, cfg.DieHeight)
		if err != nil {
			closeAll(closers)
			return fmt.Errorf("open svg writer: %w", err)
		}
		sinks = append(sinks, sw)
	}

	if defPath != "" {
		defFile, err := os.Create(defPath)
		if err != nil {
			closeAll(closers)
			return fmt.Errorf("create def output: %w", err)
		}
		closers = append(closers, defFile)
		dw, err := defwriter.NewWriter(defFile, cfg.DesignName, cfg.LEFDBUnits)
		if err != nil {
			closeAll(closers)
			return fmt.Errorf("open def writer: %w", err)
		}
		sinks = append(sinks, dw)
	}

	runErr := padring.Run(log, cfg, cat, fillers, sinks)
	closeAll(closers)
	return runErr
}

func closeAll(files []*os.File) {
	for _, f := range files {
		f.Close()
	}
}
