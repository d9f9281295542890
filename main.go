/*
rlres builds the RLRS resource tree: it converts Aseprite sheets, indexes
every source asset and exports one binary resource per entry.

	rlres [--config rlres.toml] [--log-level info] [<src> <out>]
	rlres --inspect out/tex/1234.res
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/assets/converters/aseprite"
	"github.com/spaghettifunk/rlres/engine/assets/exporters"
	"github.com/spaghettifunk/rlres/engine/config"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rlres", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultFile, "path to the TOML configuration")
	src := fs.String("src", "", "source asset root (overrides paths.src)")
	out := fs.String("out", "", "output resource root (overrides paths.out)")
	level := fs.String("log-level", "", "debug, info, warn or error (overrides log.level)")
	inspect := fs.String("inspect", "", "print the header of a .res file and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: rlres [options] [<src> <out>]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *inspect != "" {
		if err := inspectFile(stdout, *inspect); err != nil {
			core.LogError("inspect: %s", err)
			return 1
		}
		return 0
	}

	if _, err := os.Stat(*configPath); err != nil && *configPath != config.DefaultFile {
		core.LogWarn("config file %s not found; using defaults", *configPath)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogError("%s", err)
		return 2
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 2:
		cfg.Paths.Src, cfg.Paths.Out = rest[0], rest[1]
	default:
		fmt.Fprintln(stderr, "error: expected both <src> and <out>, or neither")
		fs.Usage()
		return 2
	}
	if *src != "" {
		cfg.Paths.Src = *src
	}
	if *out != "" {
		cfg.Paths.Out = *out
	}
	if *level != "" {
		cfg.Log.Level = *level
	}

	log := core.NewLogger(stderr, core.LoggerOptions{
		Level:        cfg.Log.Level,
		Prefix:       cfg.Log.Prefix,
		ReportCaller: cfg.Log.ReportCaller,
		Timestamps:   true,
	})

	pipeline := assets.NewPipeline(log, cfg.PipelineOptions())
	pipeline.RegisterConverter(aseprite.NewConverter(log,
		aseprite.WithImageExtensions(cfg.Aseprite.ImageExtensions),
		aseprite.WithDefaultFrameMs(cfg.Aseprite.DefaultFrameMs),
	))
	pipeline.RegisterExporter(exporters.All(log)...)

	report, err := pipeline.Run()
	if err != nil {
		log.Error("build failed: %s", err)
		return 1
	}
	log.Info("build %s: %d resources, %d exported, %d failed, %d sheets converted (%d failed), %d warnings, %d errors in %s",
		report.BuildID, report.Resources, report.Exported, report.Failed,
		report.Converted, report.ConvertFailed, report.Warnings, report.Errors, report.Elapsed)
	return 0
}

func inspectFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := serialize.NewReader(f).Header()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%s: %w: file too short", path, core.ErrBadMagic)
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	typeName := resources.TypeNameOf(core.Discard(), resources.TypeID(h.ResourceType))
	_, err = fmt.Fprintf(w, "%s: magic=%#08x type=%d (%s) version=%d\n", path, h.Magic, h.ResourceType, typeName, h.Version)
	return err
}
