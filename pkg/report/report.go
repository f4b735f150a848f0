// Package report assembles the results of one pipeline run and renders
// them as styled text, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-communities/pkg/analytics"
	"github.com/dd0wney/cluso-communities/pkg/community"
	"github.com/dd0wney/cluso-communities/pkg/graph"
)

var ErrUnknownFormat = errors.New("unknown report format")

// Format selects a renderer.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Detection summarises the label propagation stage.
type Detection struct {
	Mode          string  `json:"mode" yaml:"mode"`
	Iterations    int     `json:"iterations" yaml:"iterations"`
	Converged     bool    `json:"converged" yaml:"converged"`
	Communities   int     `json:"communities" yaml:"communities"`
	Modularity    float64 `json:"modularity" yaml:"modularity"`
	Reassignments []int   `json:"reassignments" yaml:"reassignments"`
}

// NodeQuery is the answer to one requested node, by index or by label.
type NodeQuery struct {
	Query  string                   `json:"query" yaml:"query"`
	Found  bool                     `json:"found" yaml:"found"`
	Result *analytics.NodeSentiment `json:"result,omitempty" yaml:"result,omitempty"`
}

// Report is everything a run computed.
type Report struct {
	RunID          string                         `json:"run_id" yaml:"run_id"`
	Source         string                         `json:"source" yaml:"source"`
	StartedAt      time.Time                      `json:"started_at" yaml:"started_at"`
	ElapsedSeconds float64                        `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Graph          graph.BuildStats               `json:"graph" yaml:"graph"`
	Detection      Detection                      `json:"detection" yaml:"detection"`
	Sizes          []community.Size               `json:"sizes" yaml:"sizes"`
	Links          []analytics.Link               `json:"links" yaml:"links"`
	Densest        []analytics.Members            `json:"densest" yaml:"densest"`
	Brokers        []analytics.BrokerSet          `json:"brokers" yaml:"brokers"`
	IntraSentiment []analytics.CommunitySentiment `json:"intra_sentiment" yaml:"intra_sentiment"`
	NodeSentiment  []NodeQuery                    `json:"node_sentiment" yaml:"node_sentiment"`
}

// Options tunes rendering.
type Options struct {
	// NoColor forces plain text even on a terminal.
	NoColor bool
}

// Write renders r to w in format f.
func Write(w io.Writer, r *Report, f Format, opts Options) error {
	switch f {
	case FormatText, "":
		return WriteText(w, r, opts)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return enc.Close()
}
