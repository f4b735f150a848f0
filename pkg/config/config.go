// Package config loads pipeline settings from a YAML file and COMMUNITIES_*
// environment variables and validates them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-communities/pkg/community"
	"github.com/dd0wney/cluso-communities/pkg/ingest"
)

// ErrInvalidConfig wraps every load and validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COMMUNITIES_"

var validate = validator.New()

// Config is the full set of pipeline settings.
type Config struct {
	Input     string           `yaml:"input" validate:"required"`
	Graph     GraphConfig      `yaml:"graph"`
	Detection DetectionConfig  `yaml:"detection"`
	Report    ReportConfig     `yaml:"report"`
	Log       LogConfig        `yaml:"log"`
	Metrics   MetricsConfig    `yaml:"metrics"`
	TSV       ingest.Options   `yaml:"tsv"`
	S3        ingest.S3Options `yaml:"s3"`
}

type GraphConfig struct {
	// MaxEdges stops the build after this many edges; 0 means unbounded.
	MaxEdges      int  `yaml:"max_edges" validate:"min=0"`
	PruneIsolated bool `yaml:"prune_isolated"`
}

type DetectionConfig struct {
	MaxIterations int    `yaml:"max_iterations" validate:"min=0"`
	Mode          string `yaml:"mode" validate:"oneof=sequential synchronous"`
	Workers       int    `yaml:"workers" validate:"min=0"`
}

type ReportConfig struct {
	TopN        int      `yaml:"top_n" validate:"min=1"`
	QueryNodes  []int    `yaml:"query_nodes" validate:"dive,min=0"`
	QueryLabels []string `yaml:"query_labels" validate:"dive,required"`
	Format      string   `yaml:"format" validate:"oneof=text json yaml"`
	NoColor     bool     `yaml:"no_color"`
	// Output is the report destination; empty means stdout.
	Output string `yaml:"output"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

type MetricsConfig struct {
	// Textfile, when set, receives the Prometheus text exposition after a run.
	Textfile string `yaml:"textfile"`
}

// Default matches a run over the Reddit hyperlink body dump.
func Default() Config {
	return Config{
		Input: "soc-redditHyperlinks-body.tsv",
		Graph: GraphConfig{
			MaxEdges:      50000,
			PruneIsolated: true,
		},
		Detection: DetectionConfig{
			MaxIterations: 20,
			Mode:          community.ModeSequential.String(),
		},
		Report: ReportConfig{
			TopN:       10,
			QueryNodes: []int{11, 224, 122},
			Format:     "text",
		},
		Log: LogConfig{Level: "info"},
		TSV: ingest.DefaultOptions(),
	}
}

// Load reads path over Default, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse %s: %w", ErrInvalidConfig, path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags and returns the first failure wrapped in
// ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, formatValidationError(err))
	}
	return nil
}

// PropagationMode returns the parsed detection mode.
func (c *Config) PropagationMode() community.Mode {
	mode, _ := community.ParseMode(c.Detection.Mode)
	return mode
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %v", field, param, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}

// ApplyEnv overrides fields from COMMUNITIES_* variables found by lookup.
// List values are comma separated.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok
	}

	var errs []error
	setString := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	setBool := func(name string, dst *bool) {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	setString("INPUT", &c.Input)
	setInt("MAX_EDGES", &c.Graph.MaxEdges)
	setBool("PRUNE_ISOLATED", &c.Graph.PruneIsolated)
	setInt("MAX_ITERATIONS", &c.Detection.MaxIterations)
	setString("MODE", &c.Detection.Mode)
	setInt("WORKERS", &c.Detection.Workers)
	setInt("TOP_N", &c.Report.TopN)
	setString("FORMAT", &c.Report.Format)
	setBool("NO_COLOR", &c.Report.NoColor)
	setString("OUTPUT", &c.Report.Output)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("METRICS_TEXTFILE", &c.Metrics.Textfile)
	setString("S3_REGION", &c.S3.Region)
	setString("S3_ENDPOINT", &c.S3.Endpoint)
	setBool("S3_PATH_STYLE", &c.S3.UsePathStyle)

	if v, ok := get("QUERY_NODES"); ok {
		nodes, err := ParseIntList(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sQUERY_NODES: %w", EnvPrefix, err))
		} else {
			c.Report.QueryNodes = nodes
		}
	}
	if v, ok := get("QUERY_LABELS"); ok {
		c.Report.QueryLabels = ParseStringList(v)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ParseIntList parses "11, 224,122". An empty string yields an empty list.
func ParseIntList(s string) ([]int, error) {
	parts := ParseStringList(s)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseStringList splits on commas and drops empty entries.
func ParseStringList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
