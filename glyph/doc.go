// Package glyph renders font glyphs into rasters for distance-field
// analysis and reads the side bearings a font records for them.
//
// Rendering uses golang.org/x/image/font/opentype; each glyph is drawn on a
// fixed-size canvas with its ink centered horizontally, so the canvas center
// column is the natural split point for left/right spacing searches.
// Recorded metrics come from the hmtx and glyf tables via
// github.com/go-text/typesetting.
package glyph
