package sdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for sdf package.
var (
	// ErrEmptyRaster is returned when a raster has no pixels.
	ErrEmptyRaster = errors.New("sdf: empty raster")

	// ErrRasterSize is returned when a raster's sample count does not match
	// its dimensions.
	ErrRasterSize = errors.New("sdf: raster size mismatch")

	// ErrInvalidArea is the target of errors.Is for every *InvalidAreaError.
	ErrInvalidArea = errors.New("sdf: invalid area")

	// ErrDegenerateField is the target of errors.Is for every
	// *DegenerateFieldError.
	ErrDegenerateField = errors.New("sdf: degenerate field")
)

// InvalidAreaError reports an area that lies outside a field or has no
// pixels.
type InvalidAreaError struct {
	Area          Area
	Width, Height int
	Reason        string
}

func (e *InvalidAreaError) Error() string {
	return fmt.Sprintf("sdf: invalid area %v in %dx%d field: %s", e.Area, e.Width, e.Height, e.Reason)
}

func (e *InvalidAreaError) Unwrap() error { return ErrInvalidArea }

// DegenerateFieldError is an advisory error: the raster had no
// foreground/background boundary, so the field carries no sign change.
type DegenerateFieldError struct {
	// Foreground is true when every pixel was foreground.
	Foreground bool
}

func (e *DegenerateFieldError) Error() string {
	if e.Foreground {
		return "sdf: degenerate field: raster is entirely foreground"
	}
	return "sdf: degenerate field: raster is entirely background"
}

func (e *DegenerateFieldError) Unwrap() error { return ErrDegenerateField }
