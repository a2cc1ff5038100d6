package sdf

import (
	"image"
	"image/color"
)

// Raster is a single-channel intensity grid in row-major order.
// Samples are either 8-bit values in [0, 255] or normalized values in [0, 1].
type Raster struct {
	Width, Height int
	Pix           []float64
}

// NewRaster allocates a zeroed raster.
func NewRaster(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// RasterFromImage samples img into an 8-bit raster.
// *image.Alpha contributes its alpha channel, *image.Gray its luminance;
// other images are converted through color.GrayModel.
func RasterFromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := NewRaster(b.Dx(), b.Dy())

	switch src := img.(type) {
	case *image.Alpha:
		for y := 0; y < r.Height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+r.Width]
			for x, a := range row {
				r.Pix[y*r.Width+x] = float64(a)
			}
		}
	case *image.Gray:
		for y := 0; y < r.Height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+r.Width]
			for x, v := range row {
				r.Pix[y*r.Width+x] = float64(v)
			}
		}
	default:
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
				r.Pix[y*r.Width+x] = float64(g.Y)
			}
		}
	}
	return r
}

// At returns the sample at (x, y). It panics if (x, y) is out of range.
func (r *Raster) At(x, y int) float64 {
	return r.Pix[y*r.Width+x]
}

// Set stores v at (x, y).
func (r *Raster) Set(x, y int, v float64) {
	r.Pix[y*r.Width+x] = v
}

// Fill sets every sample in a to v, clipped to the raster.
func (r *Raster) Fill(a Area, v float64) {
	x1, y1 := max(a.X1, 0), max(a.Y1, 0)
	x2, y2 := min(a.X2, r.Width), min(a.Y2, r.Height)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			r.Pix[y*r.Width+x] = v
		}
	}
}

// Max returns the largest sample, or 0 for an empty raster.
func (r *Raster) Max() float64 {
	if len(r.Pix) == 0 {
		return 0
	}
	m := r.Pix[0]
	for _, v := range r.Pix[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Threshold returns the foreground threshold for the raster's value domain.
func (r *Raster) Threshold() float64 {
	if r.Max() > 1.0 {
		return Threshold8Bit
	}
	return ThresholdNormalized
}

// Mask returns the foreground mask: true where the sample exceeds the
// threshold.
func (r *Raster) Mask() []bool {
	t := r.Threshold()
	mask := make([]bool, len(r.Pix))
	for i, v := range r.Pix {
		mask[i] = v > t
	}
	return mask
}

func (r *Raster) validate() error {
	if r == nil || r.Width <= 0 || r.Height <= 0 {
		return ErrEmptyRaster
	}
	if len(r.Pix) != r.Width*r.Height {
		return ErrRasterSize
	}
	return nil
}
