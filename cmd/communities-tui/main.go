package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-communities/pkg/config"
	"github.com/dd0wney/cluso-communities/pkg/logging"
	"github.com/dd0wney/cluso-communities/pkg/metrics"
	"github.com/dd0wney/cluso-communities/pkg/pipeline"
	"github.com/dd0wney/cluso-communities/pkg/report"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	input := flag.String("input", "", "Input TSV, overrides the config")
	reportPath := flag.String("report", "", "Browse a saved JSON report instead of running the analysis")
	logPath := flag.String("log", "", "Append logs to this file (default: discard)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var load tea.Cmd
	if *reportPath != "" {
		load = loadReport(*reportPath)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if *input != "" {
			cfg.Input = *input
		}

		logger := logging.NewNopLogger()
		if *logPath != "" {
			f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				log.Fatalf("Failed to open log file: %v", err)
			}
			defer f.Close()
			logger = logging.NewJSONLogger(f, logging.ParseLevel(cfg.Log.Level))
		}
		load = runPipeline(ctx, pipeline.New(cfg, logger, metrics.NewRegistry()))
	}

	p := tea.NewProgram(initialModel(load, cancel), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

// runPipeline runs the analysis under ctx, which the model cancels on quit.
func runPipeline(ctx context.Context, p *pipeline.Pipeline) tea.Cmd {
	return func() tea.Msg {
		rep, err := p.Run(ctx)
		return reportMsg{report: rep, err: err}
	}
}

func loadReport(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return reportMsg{err: err}
		}
		defer f.Close()
		rep, err := decodeReport(f)
		return reportMsg{report: rep, err: err}
	}
}

func decodeReport(r io.Reader) (*report.Report, error) {
	var rep report.Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}
