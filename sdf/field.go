package sdf

import "math"

// Foreground thresholds for the two raster domains.
const (
	Threshold8Bit       = 128
	ThresholdNormalized = 0.5
)

// OutOfBounds is returned by [Field.ValueAt] for coordinates outside the
// field.
const OutOfBounds float32 = -1.0

// Field is a signed distance field with the same shape as its source raster.
type Field struct {
	// Data holds the signed distances in row-major order.
	// It must not be modified after generation.
	Data []float32

	Width, Height int

	degenerate bool
	foreground bool
}

// Generate converts a raster into a signed distance field.
//
// Foreground pixels get +distance to the nearest background pixel,
// background pixels get -distance to the nearest foreground pixel. A raster
// that is entirely foreground or entirely background yields an all-zero
// field flagged as degenerate; see [Field.Err].
func Generate(r *Raster) (*Field, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	mask := r.Mask()
	inside := distanceTransform(r.Width, r.Height, func(i int) bool { return !mask[i] })
	outside := distanceTransform(r.Width, r.Height, func(i int) bool { return mask[i] })

	f := &Field{
		Data:   make([]float32, len(mask)),
		Width:  r.Width,
		Height: r.Height,
	}

	fg := 0
	for i, in := range mask {
		if in {
			fg++
			f.Data[i] = float32(inside[i])
		} else if outside[i] != 0 {
			f.Data[i] = -float32(outside[i])
		}
	}

	switch fg {
	case 0:
		f.degenerate = true
	case len(mask):
		f.degenerate = true
		f.foreground = true
	}
	return f, nil
}

// Bounds returns the area covering the whole field.
func (f *Field) Bounds() Area {
	return Area{X2: f.Width, Y2: f.Height}
}

// At returns the value at (x, y) without a bounds check beyond the slice's.
func (f *Field) At(x, y int) float32 {
	return f.Data[y*f.Width+x]
}

// ValueAt returns the value at (x, y), or OutOfBounds if the point lies
// outside the field.
func (f *Field) ValueAt(x, y int) float32 {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return OutOfBounds
	}
	return f.Data[y*f.Width+x]
}

// Row returns row y as a read-only view into Data.
func (f *Field) Row(y int) []float32 {
	return f.Data[y*f.Width : (y+1)*f.Width]
}

// Range returns the smallest and largest values in the field.
func (f *Field) Range() (lo, hi float32) {
	if len(f.Data) == 0 {
		return 0, 0
	}
	lo, hi = float32(math.Inf(1)), float32(math.Inf(-1))
	for _, v := range f.Data {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// Degenerate reports whether the source raster had no boundary.
func (f *Field) Degenerate() bool { return f.degenerate }

// Err returns a *DegenerateFieldError for degenerate fields and nil
// otherwise. The field is usable either way.
func (f *Field) Err() error {
	if !f.degenerate {
		return nil
	}
	return &DegenerateFieldError{Foreground: f.foreground}
}

// Check verifies that a is non-empty and lies within the field.
func (f *Field) Check(a Area) error {
	switch {
	case a.X1 >= a.X2 || a.Y1 >= a.Y2:
		return &InvalidAreaError{Area: a, Width: f.Width, Height: f.Height, Reason: "non-positive width or height"}
	case a.X1 < 0 || a.Y1 < 0 || a.X2 > f.Width || a.Y2 > f.Height:
		return &InvalidAreaError{Area: a, Width: f.Width, Height: f.Height, Reason: "outside field bounds"}
	}
	return nil
}
