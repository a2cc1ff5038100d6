// Package sdf converts glyph rasters into signed distance fields.
//
// A [Field] holds, per pixel, the Euclidean distance to the nearest pixel of
// the opposite class: positive inside the foreground mask, negative outside.
// The zero crossing approximates the glyph silhouette.
//
// # Usage
//
//	r := sdf.RasterFromImage(mask) // *image.Alpha from a glyph renderer
//	field, err := sdf.Generate(r)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := field.Err(); err != nil {
//	    // all ink or no ink: values are well defined but carry no boundary
//	}
//
// # Thresholds
//
// Rasters whose maximum sample exceeds 1.0 are treated as 8-bit data and
// thresholded at 128; otherwise the samples are taken as normalized and
// thresholded at 0.5. A pixel is foreground when its value is strictly
// greater than the threshold.
//
// Fields are immutable once generated and safe for concurrent reads.
package sdf
