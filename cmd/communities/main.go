package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-communities/pkg/config"
	"github.com/dd0wney/cluso-communities/pkg/logging"
	"github.com/dd0wney/cluso-communities/pkg/metrics"
	"github.com/dd0wney/cluso-communities/pkg/pipeline"
	"github.com/dd0wney/cluso-communities/pkg/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err == nil {
		err = opts.apply(&cfg)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger := logging.NewJSONLogger(stderr, logging.ParseLevel(cfg.Log.Level))
	logger.Info("communities starting", logging.Source(cfg.Input), logging.String("format", cfg.Report.Format))

	rep, err := pipeline.New(cfg, logger, metrics.NewRegistry()).Run(ctx)
	if err != nil {
		logger.Error("run failed", logging.Error(err))
		return 1
	}

	if err := writeReport(stdout, rep, cfg.Report); err != nil {
		logger.Error("writing report failed", logging.Error(err))
		return 1
	}
	return 0
}

func writeReport(stdout io.Writer, rep *report.Report, rc config.ReportConfig) error {
	format, err := report.ParseFormat(rc.Format)
	if err != nil {
		return err
	}

	opts := report.Options{NoColor: rc.NoColor}
	if rc.Output == "" {
		return report.Write(stdout, rep, format, opts)
	}

	f, err := os.Create(rc.Output)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	return errors.Join(report.Write(f, rep, format, opts), f.Close())
}
