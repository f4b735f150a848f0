// Package pipeline runs one end-to-end community analysis: ingest, build,
// detect, analyze and report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-communities/pkg/analytics"
	"github.com/dd0wney/cluso-communities/pkg/community"
	"github.com/dd0wney/cluso-communities/pkg/config"
	"github.com/dd0wney/cluso-communities/pkg/graph"
	"github.com/dd0wney/cluso-communities/pkg/ingest"
	"github.com/dd0wney/cluso-communities/pkg/logging"
	"github.com/dd0wney/cluso-communities/pkg/metrics"
	"github.com/dd0wney/cluso-communities/pkg/report"
)

// Stage names used in logs and metrics.
const (
	StageIngest  = "ingest"
	StageBuild   = "build"
	StageDetect  = "detect"
	StageAnalyze = "analyze"
)

// The link table is a fixed top ten; top_n does not apply to it.
const interCommunityLinkLimit = 10

// Pipeline carries the settings and sinks shared by every run.
type Pipeline struct {
	cfg     config.Config
	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates a pipeline. A nil logger discards logs and a nil registry
// gets a private one.
func New(cfg config.Config, logger logging.Logger, reg *metrics.Registry) *Pipeline {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Pipeline{
		cfg:     cfg,
		logger:  logger.With(logging.Component("pipeline")),
		metrics: reg,
	}
}

// Metrics returns the registry the pipeline records into.
func (p *Pipeline) Metrics() *metrics.Registry {
	return p.metrics
}

// Run opens the configured input and analyzes it. When a metrics textfile
// is configured it is written whether or not the run succeeded.
func (p *Pipeline) Run(ctx context.Context) (*report.Report, error) {
	rep, err := p.run(ctx)
	if path := p.cfg.Metrics.Textfile; path != "" {
		if werr := p.metrics.WriteTextfile(path); werr != nil {
			p.logger.Warn("metrics textfile not written", logging.Error(werr))
			err = errors.Join(err, werr)
		}
	}
	return rep, err
}

func (p *Pipeline) run(ctx context.Context) (*report.Report, error) {
	timer := logging.StartTimer(p.logger, "source opened", logging.Stage(StageIngest), logging.Source(p.cfg.Input))
	reader, err := ingest.Open(ctx, p.cfg.Input, ingest.SourceOptions{TSV: p.cfg.TSV, S3: p.cfg.S3})
	if err != nil {
		timer.EndError(err)
		p.metrics.RecordRun(err)
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			p.logger.Warn("closing input failed", logging.Source(p.cfg.Input), logging.Error(cerr))
		}
	}()
	p.metrics.RecordStage(StageIngest, timer.End())

	return p.RunRecords(ctx, p.cfg.Input, reader)
}

// RunRecords analyzes records read from an already opened source.
func (p *Pipeline) RunRecords(ctx context.Context, source string, records ingest.RecordReader) (*report.Report, error) {
	rep, err := p.analyze(ctx, source, records)
	p.metrics.RecordRun(err)
	return rep, err
}

func (p *Pipeline) analyze(ctx context.Context, source string, records ingest.RecordReader) (*report.Report, error) {
	started := time.Now()
	runID := uuid.NewString()
	log := p.logger.With(logging.RunID(runID), logging.Source(source))
	log.Info("run started",
		logging.Int("max_edges", p.cfg.Graph.MaxEdges),
		logging.Int("max_iterations", p.cfg.Detection.MaxIterations),
		logging.String("mode", p.cfg.Detection.Mode))

	g, err := p.build(ctx, log, source, records)
	if err != nil {
		return nil, err
	}

	detection, partition, err := p.detect(ctx, log, g)
	if err != nil {
		return nil, err
	}

	rep, err := p.summarize(log, g, partition)
	if err != nil {
		return nil, err
	}
	rep.RunID = runID
	rep.Source = source
	rep.StartedAt = started.UTC()
	rep.Graph = g.Stats()
	rep.Detection = detection
	rep.ElapsedSeconds = time.Since(started).Seconds()

	log.Info("run finished", logging.Latency(time.Since(started)))
	return rep, nil
}

func (p *Pipeline) build(ctx context.Context, log logging.Logger, source string, records ingest.RecordReader) (*graph.Graph, error) {
	timer := logging.StartTimer(log, "graph built", logging.Stage(StageBuild))
	g, _, err := graph.Build(ctx, records, graph.BuildOptions{
		MaxEdges:      p.cfg.Graph.MaxEdges,
		PruneIsolated: p.cfg.Graph.PruneIsolated,
	})
	if err != nil {
		var be *graph.BuildError
		if errors.As(err, &be) {
			p.metrics.RecordBuildError(be.Op)
		}
		timer.EndError(err)
		return nil, fmt.Errorf("build graph: %w", err)
	}

	stats := g.Stats()
	p.metrics.RecordStage(StageBuild, timer.End(
		logging.Records(stats.Records),
		logging.Int("nodes", stats.Nodes),
		logging.Int("edges", stats.Edges),
		logging.Int("pruned", stats.Pruned),
		logging.Bool("truncated", stats.Truncated),
	))
	p.metrics.RecordRecords(source, stats.Records)
	p.metrics.UpdateGraph(stats.Nodes, stats.Edges, stats.Pruned, stats.Truncated)
	return g, nil
}

func (p *Pipeline) detect(ctx context.Context, log logging.Logger, g *graph.Graph) (report.Detection, community.Partition, error) {
	mode := p.cfg.PropagationMode()
	timer := logging.StartTimer(log, "communities detected", logging.Stage(StageDetect))

	res, err := community.LabelPropagation(ctx, g, community.PropagationOptions{
		MaxIterations: p.cfg.Detection.MaxIterations,
		Mode:          mode,
		Workers:       p.cfg.Detection.Workers,
		OnPass: func(iteration, reassigned int) {
			p.metrics.RecordPass(mode.String(), reassigned)
			log.Debug("propagation pass", logging.Iteration(iteration), logging.Count(reassigned))
		},
	})
	if err != nil {
		timer.EndError(err)
		return report.Detection{}, nil, fmt.Errorf("detect communities: %w", err)
	}

	detection := report.Detection{
		Mode:          mode.String(),
		Iterations:    res.Iterations,
		Converged:     res.Converged,
		Communities:   community.Count(res.Partition),
		Modularity:    community.Modularity(g, res.Partition),
		Reassignments: res.Reassignments,
	}
	p.metrics.RecordStage(StageDetect, timer.End(
		logging.Iteration(res.Iterations),
		logging.Bool("converged", res.Converged),
		logging.Count(detection.Communities),
		logging.Float64("modularity", detection.Modularity),
	))
	p.metrics.UpdateDetection(detection.Communities, detection.Converged, detection.Modularity)

	if !res.Converged {
		log.Warn("label propagation stopped before reaching a fixed point", logging.Iteration(res.Iterations))
	}
	return detection, res.Partition, nil
}

func (p *Pipeline) summarize(log logging.Logger, g *graph.Graph, partition community.Partition) (*report.Report, error) {
	timer := logging.StartTimer(log, "analytics computed", logging.Stage(StageAnalyze))

	a, err := analytics.New(g, partition, community.Names(g, partition))
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("analyze: %w", err)
	}

	topN := p.cfg.Report.TopN
	densities := a.Densities()
	crossing := 0
	for _, l := range a.InterCommunityLinks(0) {
		crossing += l.Edges
	}
	links := a.InterCommunityLinks(interCommunityLinkLimit)

	rep := &report.Report{
		Sizes:          community.Sizes(partition, 2),
		Links:          links,
		Densest:        a.DensestCommunities(densities, topN),
		Brokers:        a.Brokers(densities, topN),
		IntraSentiment: a.IntraSentiment(densities, topN),
	}

	brokers := 0
	for _, b := range rep.Brokers {
		brokers += b.Count()
	}
	for _, m := range rep.Densest {
		log.Debug("dense community", logging.Community(m.Community), logging.String("name", m.Name),
			logging.Float64("density", m.Density), logging.Count(len(m.Labels)))
	}

	for _, node := range p.cfg.Report.QueryNodes {
		rep.NodeSentiment = append(rep.NodeSentiment, p.query(log, strconv.Itoa(node), func() (analytics.NodeSentiment, error) {
			return a.NodeSentiment(node)
		}))
	}
	for _, label := range p.cfg.Report.QueryLabels {
		rep.NodeSentiment = append(rep.NodeSentiment, p.query(log, label, func() (analytics.NodeSentiment, error) {
			return a.NodeSentimentByLabel(label)
		}))
	}

	p.metrics.RecordStage(StageAnalyze, timer.End(
		logging.Int("inter_community_edges", crossing),
		logging.Int("brokers", brokers),
	))
	p.metrics.UpdateAnalytics(crossing, brokers)
	return rep, nil
}

func (p *Pipeline) query(log logging.Logger, q string, lookup func() (analytics.NodeSentiment, error)) report.NodeQuery {
	ns, err := lookup()
	p.metrics.RecordNodeQuery(err == nil)
	if err != nil {
		log.Warn("queried node not in graph", logging.String("query", q), logging.Error(err))
		return report.NodeQuery{Query: q}
	}
	log.Debug("node sentiment", logging.NodeIndex(ns.Node), logging.Community(ns.Community),
		logging.Int("positive", ns.Positive), logging.Int("negative", ns.Negative))
	return report.NodeQuery{Query: q, Found: true, Result: &ns}
}
