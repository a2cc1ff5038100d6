package glyphfit

import (
	"github.com/gogpu/glyphfit/glyph"
	"github.com/gogpu/glyphfit/gradient"
	"github.com/gogpu/glyphfit/sdf"
	"github.com/gogpu/glyphfit/search"
)

// RunReport is the result of Engine.Run.
type RunReport struct {
	Font   string        `json:"font" yaml:"font"`
	Glyphs []GlyphReport `json:"glyphs" yaml:"glyphs"`
}

// GlyphReport holds every scan of one glyph.
type GlyphReport struct {
	Glyph    string `json:"glyph" yaml:"glyph"`
	Label    string `json:"label" yaml:"label"`
	InkWidth int    `json:"ink_width" yaml:"ink_width"`

	// Degenerate marks a glyph without both ink and background; its scans
	// run over an all-zero field.
	Degenerate bool `json:"degenerate,omitempty" yaml:"degenerate,omitempty"`

	// Gradient and Consistency describe the field over the ink box; they
	// are omitted for blank glyphs.
	Gradient    *gradient.Stats `json:"gradient,omitempty" yaml:"gradient,omitempty"`
	Consistency float64         `json:"consistency,omitempty" yaml:"consistency,omitempty"`

	Scans []ScanReport `json:"scans" yaml:"scans"`
}

// ScanReport is one step scan of a glyph.
type ScanReport struct {
	Metric string  `json:"metric" yaml:"metric"`
	Target float64 `json:"target" yaml:"target"`

	// LSB and RSB are the chosen widths minus the ink width. They are
	// zero for an empty side.
	LSB int `json:"lsb" yaml:"lsb"`
	RSB int `json:"rsb" yaml:"rsb"`

	Left  SideSummary `json:"left" yaml:"left"`
	Right SideSummary `json:"right" yaml:"right"`
}

// SideSummary is a SideResult without its trace.
type SideSummary struct {
	Area    sdf.Area `json:"area" yaml:"area"`
	Density float64  `json:"density" yaml:"density"`
	Diff    float64  `json:"diff" yaml:"diff"`
	Steps   int      `json:"steps" yaml:"steps"`
	Empty   bool     `json:"empty,omitempty" yaml:"empty,omitempty"`
}

func summarize(r search.SideResult) SideSummary {
	return SideSummary{
		Area:    r.Area,
		Density: r.Density,
		Diff:    r.Diff,
		Steps:   len(r.Trace),
		Empty:   r.Empty,
	}
}

// ValidationReport is the result of Engine.Validate.
type ValidationReport struct {
	Font   string             `json:"font" yaml:"font"`
	Glyphs []ValidationResult `json:"glyphs" yaml:"glyphs"`
}

// ValidationResult measures one glyph at its recorded left side bearing.
type ValidationResult struct {
	Glyph    string         `json:"glyph" yaml:"glyph"`
	Label    string         `json:"label" yaml:"label"`
	Bearings glyph.Bearings `json:"bearings" yaml:"bearings"`

	// LSB is the recorded left side bearing rounded to whole pixels.
	LSB  int      `json:"lsb" yaml:"lsb"`
	Area sdf.Area `json:"area" yaml:"area"`

	// Values maps metric name to its value over Area.
	Values map[string]float64 `json:"values,omitempty" yaml:"values,omitempty"`

	// Skipped explains why nothing was measured, for example a bearing of
	// zero or less.
	Skipped string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// GapReport is the result of Engine.SolveGaps.
type GapReport struct {
	Font   string      `json:"font" yaml:"font"`
	Metric string      `json:"metric" yaml:"metric"`
	Glyphs []GapResult `json:"glyphs" yaml:"glyphs"`
}

// GapResult holds the solved gaps of one glyph.
type GapResult struct {
	Glyph    string           `json:"glyph" yaml:"glyph"`
	Label    string           `json:"label" yaml:"label"`
	InkWidth int              `json:"ink_width" yaml:"ink_width"`
	Left     search.GapResult `json:"left" yaml:"left"`
	Right    search.GapResult `json:"right" yaml:"right"`
}
