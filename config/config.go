// Package config loads glyphfit run configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/glyphfit/density"
	"github.com/gogpu/glyphfit/glyph"
	"github.com/gogpu/glyphfit/search"
)

// ErrInvalidConfig is the sentinel wrapped by every *ConfigError.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ConfigError describes an invalid configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfig.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Gap metric names.
const (
	GapMetricBlur   = "blur"
	GapMetricMargin = "margin"
)

// Defaults of the blur gap metric. Its value is the gap strip's width in
// fully visible columns and grows by at most 1 per unit of gap, so a
// tolerance of 1 always leaves an integer gap in band once the target lies
// between the bracket's endpoint values.
const (
	DefaultBlurRadius    = 20
	DefaultBlurTarget    = 30
	DefaultBlurTolerance = 1
)

// Artifact formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatPNG  = "png"
	FormatTIFF = "tiff"
)

// DefaultGlyphs is the glyph set used when none is configured.
var DefaultGlyphs = []string{
	"a", "b", "c", "d", "t", "l", "i", "o", "v", "y", "x",
	"H", "M", "A", "B", "Y", "T",
}

// Config is a complete run configuration.
type Config struct {
	Font    FontConfig   `yaml:"font"`
	Glyphs  []string     `yaml:"glyphs"`
	Scan    ScanConfig   `yaml:"scan"`
	Gaps    GapConfig    `yaml:"gaps"`
	Workers int          `yaml:"workers"`
	Output  OutputConfig `yaml:"output"`
}

// FontConfig selects the font and how it is rendered.
type FontConfig struct {
	// Path is a TrueType/OpenType file. Empty selects the built-in Go
	// Regular font.
	Path string `yaml:"path"`

	glyph.Options `yaml:",inline"`
}

// ScanConfig configures step scans.
type ScanConfig struct {
	StepSize int       `yaml:"step-size"`
	Targets  []float64 `yaml:"targets"`
	Metrics  []string  `yaml:"metrics"`
}

// GapConfig configures bisection gap solving.
type GapConfig struct {
	search.Options `yaml:",inline"`

	// Metric is GapMetricBlur or GapMetricMargin.
	Metric string `yaml:"metric"`

	// BlurRadius is the Gaussian radius of the blur metric.
	BlurRadius float64 `yaml:"blur-radius"`

	// DensityMetric is the density metric of the margin gap metric.
	DensityMetric string `yaml:"density-metric"`
}

// OutputConfig controls result documents and artifacts.
type OutputConfig struct {
	// Dir receives artifacts. Empty disables artifact files.
	Dir string `yaml:"dir"`

	// Format of result documents: json or yaml.
	Format string `yaml:"format"`

	// SDF writes one distance-field image per glyph.
	SDF bool `yaml:"sdf"`

	// SDFFormat is png or tiff.
	SDFFormat string `yaml:"sdf-format"`

	// Traces writes one step-trace CSV per glyph, metric and target.
	Traces bool `yaml:"traces"`
}

// Default returns the default configuration.
func Default() *Config {
	gaps := search.DefaultOptions()
	gaps.Target = DefaultBlurTarget
	gaps.Tolerance = DefaultBlurTolerance

	return &Config{
		Font:   FontConfig{Options: glyph.DefaultOptions()},
		Glyphs: append([]string(nil), DefaultGlyphs...),
		Scan: ScanConfig{
			StepSize: search.DefaultStepSize,
			Targets:  []float64{100, 200, 300},
			Metrics:  []string{density.TotalMetric.Name()},
		},
		Gaps: GapConfig{
			Options:       gaps,
			Metric:        GapMetricBlur,
			BlurRadius:    DefaultBlurRadius,
			DensityMetric: density.TotalMetric.Name(),
		},
		Output: OutputConfig{
			Format:    FormatJSON,
			SDFFormat: FormatPNG,
		},
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses a YAML file. A relative font path is resolved
// against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Font.Path != "" && !filepath.IsAbs(cfg.Font.Path) {
		cfg.Font.Path = filepath.Join(filepath.Dir(path), cfg.Font.Path)
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Runes returns the normalized glyph set.
func (c *Config) Runes() ([]rune, error) {
	return glyph.ParseSet(c.Glyphs)
}

// DensityMetrics resolves the configured scan metric names.
func (c *Config) DensityMetrics() ([]density.Metric, error) {
	out := make([]density.Metric, 0, len(c.Scan.Metrics))
	for _, name := range c.Scan.Metrics {
		m, err := density.ByName(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.Font.Options.Validate(); err != nil {
		var oe *glyph.OptionsError
		if errors.As(err, &oe) {
			return &ConfigError{Field: "font." + strings.ToLower(oe.Field), Reason: oe.Reason}
		}
		return &ConfigError{Field: "font", Reason: err.Error()}
	}

	if len(c.Glyphs) == 0 {
		return &ConfigError{Field: "glyphs", Reason: "must not be empty"}
	}
	if _, err := c.Runes(); err != nil {
		return &ConfigError{Field: "glyphs", Reason: err.Error()}
	}

	if c.Scan.StepSize < 1 {
		return &ConfigError{Field: "scan.step-size", Reason: "must be at least 1"}
	}
	if len(c.Scan.Targets) == 0 {
		return &ConfigError{Field: "scan.targets", Reason: "must not be empty"}
	}
	if len(c.Scan.Metrics) == 0 {
		return &ConfigError{Field: "scan.metrics", Reason: "must not be empty"}
	}
	if _, err := c.DensityMetrics(); err != nil {
		return &ConfigError{Field: "scan.metrics", Reason: err.Error()}
	}

	if err := c.Gaps.Options.Validate(); err != nil {
		var oe *search.OptionsError
		if errors.As(err, &oe) {
			return &ConfigError{Field: "gaps." + strings.ToLower(oe.Field), Reason: oe.Reason}
		}
		return &ConfigError{Field: "gaps", Reason: err.Error()}
	}
	switch c.Gaps.Metric {
	case GapMetricBlur:
		if c.Gaps.BlurRadius <= 0 {
			return &ConfigError{Field: "gaps.blur-radius", Reason: "must be positive"}
		}
	case GapMetricMargin:
		if _, err := density.ByName(c.Gaps.DensityMetric); err != nil {
			return &ConfigError{Field: "gaps.density-metric", Reason: err.Error()}
		}
	default:
		return &ConfigError{Field: "gaps.metric", Reason: fmt.Sprintf("unknown metric %q", c.Gaps.Metric)}
	}

	if c.Workers < 0 {
		return &ConfigError{Field: "workers", Reason: "must not be negative"}
	}

	switch c.Output.Format {
	case FormatJSON, FormatYAML:
	default:
		return &ConfigError{Field: "output.format", Reason: fmt.Sprintf("unknown format %q", c.Output.Format)}
	}
	switch c.Output.SDFFormat {
	case FormatPNG, FormatTIFF:
	default:
		return &ConfigError{Field: "output.sdf-format", Reason: fmt.Sprintf("unknown format %q", c.Output.SDFFormat)}
	}
	if (c.Output.SDF || c.Output.Traces) && c.Output.Dir == "" {
		return &ConfigError{Field: "output.dir", Reason: "required when artifacts are enabled"}
	}
	return nil
}
