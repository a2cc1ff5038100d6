package glyph

import "errors"

// Sentinel errors for glyph package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("glyph: empty font data")

	// ErrGlyphNotFound is returned when the font has no glyph for a rune.
	ErrGlyphNotFound = errors.New("glyph: rune not in font")

	// ErrCanvasTooSmall is returned when a glyph's ink does not fit the
	// canvas.
	ErrCanvasTooSmall = errors.New("glyph: glyph does not fit canvas")

	// ErrInvalidGlyphSet is returned for glyph-set entries that are not a
	// single character.
	ErrInvalidGlyphSet = errors.New("glyph: glyph set entries must be single characters")
)

// OptionsError represents an invalid rasterizer option.
type OptionsError struct {
	Field  string
	Reason string
}

func (e *OptionsError) Error() string {
	return "glyph: invalid options." + e.Field + ": " + e.Reason
}
