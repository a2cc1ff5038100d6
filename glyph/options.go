package glyph

// Options controls glyph rendering.
type Options struct {
	// Size is the font size in pixels per em.
	// Default: 72
	Size float64 `json:"size" yaml:"size"`

	// CanvasWidth and CanvasHeight give the raster size. Every glyph of a
	// set is rendered on a canvas of the same size.
	// Default: 256 x 128
	CanvasWidth  int `json:"canvas_width" yaml:"canvas-width"`
	CanvasHeight int `json:"canvas_height" yaml:"canvas-height"`

	// Baseline is the canvas row of the glyph baseline.
	// Default: 96
	Baseline int `json:"baseline" yaml:"baseline"`
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		Size:         72,
		CanvasWidth:  256,
		CanvasHeight: 128,
		Baseline:     96,
	}
}

// Validate checks the options and returns an error if they are unusable.
func (o *Options) Validate() error {
	if o.Size <= 0 {
		return &OptionsError{Field: "Size", Reason: "must be positive"}
	}
	if o.CanvasWidth < 8 || o.CanvasHeight < 8 {
		return &OptionsError{Field: "Canvas", Reason: "must be at least 8x8"}
	}
	if o.Baseline <= 0 || o.Baseline >= o.CanvasHeight {
		return &OptionsError{Field: "Baseline", Reason: "must lie inside the canvas"}
	}
	return nil
}
