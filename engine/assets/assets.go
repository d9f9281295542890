package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
)

const (
	DefaultIndexJSON = "resources_index.json"
	DefaultIndexBin  = "resources.idx"
)

// Options configures a Pipeline. Zero values fall back to defaults.
type Options struct {
	SrcRoot string
	OutRoot string

	IndexJSON string
	IndexBin  string

	DisabledExporters  []string
	DisabledConverters []string
}

// Report summarizes one run.
type Report struct {
	BuildID   string
	Order     []string
	Resources int
	Exported  int
	Failed    int
	Warnings  int
	Errors    int

	Converted     int
	ConvertFailed int

	// Stages holds one timing per converter, the discovery pass and one per
	// exporter, in run order.
	Stages  []core.StageMetric
	Elapsed time.Duration
}

// Pipeline runs converters, orders exporters, discovers every source asset
// into a shared index and exports them, in that order.
type Pipeline struct {
	log  *core.Logger
	opts Options

	converters []Converter
	exporters  []Exporter
}

func NewPipeline(log *core.Logger, opts Options) *Pipeline {
	if opts.IndexJSON == "" {
		opts.IndexJSON = DefaultIndexJSON
	}
	if opts.IndexBin == "" {
		opts.IndexBin = DefaultIndexBin
	}
	return &Pipeline{log: log, opts: opts}
}

func (p *Pipeline) RegisterConverter(c ...Converter) {
	for _, x := range c {
		if slices.Contains(p.opts.DisabledConverters, x.Name()) {
			p.log.Info("Pipeline: converter %s disabled by configuration", x.Name())
			continue
		}
		p.converters = append(p.converters, x)
	}
}

func (p *Pipeline) RegisterExporter(e ...Exporter) {
	for _, x := range e {
		if slices.Contains(p.opts.DisabledExporters, x.Name()) {
			p.log.Info("Pipeline: exporter %s disabled by configuration", x.Name())
			continue
		}
		p.exporters = append(p.exporters, x)
	}
}

// Run executes the whole build. Only build-wide problems are returned:
// unsatisfiable exporter dependencies, duplicate or colliding resources and
// I/O failures on the output root or index files.
func (p *Pipeline) Run() (*Report, error) {
	report := &Report{BuildID: uuid.NewString()}
	var metrics core.Metrics
	total := core.NewClock()
	total.Start()
	stage := core.NewClock()
	p.log.Info("Pipeline: starting asset pipeline (src=%s, out=%s, build=%s)", p.opts.SrcRoot, p.opts.OutRoot, report.BuildID)

	if err := os.MkdirAll(p.opts.OutRoot, 0o755); err != nil {
		return nil, fmt.Errorf("creating output root: %w", err)
	}

	// Converters write their intermediates back into the source tree.
	for _, c := range p.converters {
		p.log.Info("Pipeline: running converter %s", c.Name())
		stage.Start()
		stats, err := RunConverter(p.log, c, p.opts.SrcRoot, p.opts.SrcRoot)
		if err != nil {
			return nil, fmt.Errorf("converter %s: %w", c.Name(), err)
		}
		stage.Stop()
		p.logStage(metrics.Record(c.Name(), stats.Exported, stats.Failed, stage.Elapsed()))
		report.Converted += stats.Exported
		report.ConvertFailed += stats.Failed
	}

	ordered, err := SortExporters(p.exporters, p.log)
	if err != nil {
		p.log.Error("Pipeline: %s", err)
		return nil, err
	}
	for _, e := range ordered {
		report.Order = append(report.Order, e.Name())
	}

	stage.Start()
	idx, err := p.discover(ordered)
	if err != nil {
		return nil, err
	}
	stage.Stop()
	report.Resources = idx.Len()
	p.logStage(metrics.Record("discovery", idx.Len(), 0, stage.Elapsed()))

	for _, e := range ordered {
		p.log.Info("Pipeline: exporting resources with %s (types=%v)", e.Name(), e.TypeNames())
		stage.Start()
		stats, err := ExportEntries(p.log, e, p.opts.SrcRoot, p.opts.OutRoot, idx)
		if err != nil {
			return nil, fmt.Errorf("exporter %s: %w", e.Name(), err)
		}
		stage.Stop()
		p.logStage(metrics.Record(e.Name(), stats.Exported, stats.Failed, stage.Elapsed()))
		report.Exported += stats.Exported
		report.Failed += stats.Failed
	}

	jsonPath := filepath.Join(p.opts.OutRoot, p.opts.IndexJSON)
	binPath := filepath.Join(p.opts.OutRoot, p.opts.IndexBin)
	if err := idx.WriteIndexJSON(jsonPath, report.BuildID); err != nil {
		return nil, err
	}
	if err := idx.WriteIndexFile(binPath); err != nil {
		return nil, err
	}
	p.log.Info("Pipeline: exported %d resources to %s (index JSON: %s, binary index: %s)", idx.Len(), p.opts.OutRoot, jsonPath, binPath)

	total.Stop()
	report.Stages = metrics.Stages()
	report.Elapsed = total.Elapsed()
	if slowest, ok := metrics.Slowest(); ok {
		p.log.Debug("Pipeline: slowest stage %s (%s)", slowest.Name, slowest.Elapsed)
	}

	report.Warnings = p.log.Warnings()
	report.Errors = p.log.Errors()
	return report, nil
}

func (p *Pipeline) logStage(s core.StageMetric) {
	p.log.Debug("Pipeline: %s took %s (%d done, %d failed, %.2f ms/item)", s.Name, s.Elapsed, s.Items, s.Failed, s.AvgMs())
}

func (p *Pipeline) discover(ordered []Exporter) (*resources.Index, error) {
	b := resources.NewIndexBuilder(p.log)
	for _, e := range ordered {
		p.log.Info("Pipeline: discovering resources for exporter %s (types=%v)", e.Name(), e.TypeNames())
		if err := e.Discover(p.opts.SrcRoot, b); err != nil {
			return nil, err
		}
	}
	idx := b.ToIndex()
	p.log.Info("Pipeline: discovery complete; %d resources registered", idx.Len())
	return idx, nil
}
