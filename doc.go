// Package glyphfit derives glyph side bearings from signed distance fields.
//
// # Overview
//
// Every glyph of a set is rendered on a fixed canvas with its ink centered,
// converted to a signed distance field and then measured. Three analyses
// are available on an [Engine]:
//
//   - [Engine.Run] widens rectangles outward from the canvas center until
//     their density is closest to each target, giving a side bearing per
//     metric and target.
//   - [Engine.Validate] measures the rectangles implied by the font's own
//     recorded left side bearings, so targets can be calibrated against a
//     reference font.
//   - [Engine.SolveGaps] bisects for the gap whose margin metric reaches a
//     target value.
//
// # Quick Start
//
//	cfg := config.Default()
//	eng, err := glyphfit.New(cfg, goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	rep, err := eng.Run(context.Background())
//
// # Packages
//
// The measuring core lives in sub-packages that can be used on their own:
//   - sdf: rasters, distance fields and areas
//   - density: total, mean and coverage metrics
//   - gradient: Sobel gradient statistics
//   - search: step scans and bisection
//
// # Logging
//
// glyphfit is silent by default. See [SetLogger].
package glyphfit
