package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/dd0wney/cluso-communities/pkg/config"
)

// options are the command line settings. Only flags given explicitly
// override the loaded config.
type options struct {
	configPath string

	input         string
	maxEdges      int
	pruneIsolated bool
	maxIterations int
	mode          string
	workers       int
	topN          int
	queryNodes    string
	queryLabels   string
	format        string
	output        string
	noColor       bool
	logLevel      string
	metricsFile   string

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("communities", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.input, "input", "", "Input TSV: path, *.sz/*.snappy or s3://bucket/key")
	fs.IntVar(&opts.maxEdges, "max-edges", 0, "Stop after this many edges (0 = unbounded)")
	fs.BoolVar(&opts.pruneIsolated, "prune-isolated", true, "Remove nodes without edges")
	fs.IntVar(&opts.maxIterations, "max-iterations", 0, "Label propagation pass limit")
	fs.StringVar(&opts.mode, "mode", "", "Propagation mode: sequential or synchronous")
	fs.IntVar(&opts.workers, "workers", 0, "Workers for synchronous mode")
	fs.IntVar(&opts.topN, "top", 0, "Communities listed per section")
	fs.StringVar(&opts.queryNodes, "nodes", "", "Comma separated node indices to report sentiment for")
	fs.StringVar(&opts.queryLabels, "labels", "", "Comma separated node labels to report sentiment for")
	fs.StringVar(&opts.format, "format", "", "Report format: text, json or yaml")
	fs.StringVar(&opts.output, "output", "", "Write the report to this file instead of stdout")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colors in the text report")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.StringVar(&opts.metricsFile, "metrics-textfile", "", "Write Prometheus metrics to this file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

// apply copies explicitly set flags over cfg.
func (o *options) apply(cfg *config.Config) error {
	if o.set["input"] {
		cfg.Input = o.input
	}
	if o.set["max-edges"] {
		cfg.Graph.MaxEdges = o.maxEdges
	}
	if o.set["prune-isolated"] {
		cfg.Graph.PruneIsolated = o.pruneIsolated
	}
	if o.set["max-iterations"] {
		cfg.Detection.MaxIterations = o.maxIterations
	}
	if o.set["mode"] {
		cfg.Detection.Mode = o.mode
	}
	if o.set["workers"] {
		cfg.Detection.Workers = o.workers
	}
	if o.set["top"] {
		cfg.Report.TopN = o.topN
	}
	if o.set["nodes"] {
		nodes, err := config.ParseIntList(o.queryNodes)
		if err != nil {
			return fmt.Errorf("-nodes: %w", err)
		}
		cfg.Report.QueryNodes = nodes
	}
	if o.set["labels"] {
		cfg.Report.QueryLabels = config.ParseStringList(o.queryLabels)
	}
	if o.set["format"] {
		cfg.Report.Format = o.format
	}
	if o.set["output"] {
		cfg.Report.Output = o.output
	}
	if o.set["no-color"] {
		cfg.Report.NoColor = o.noColor
	}
	if o.set["log-level"] {
		cfg.Log.Level = o.logLevel
	}
	if o.set["metrics-textfile"] {
		cfg.Metrics.Textfile = o.metricsFile
	}
	return cfg.Validate()
}
