package report

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/gogpu/glyphfit/sdf"
)

// ErrUnknownFormat is returned for unsupported artifact formats.
var ErrUnknownFormat = errors.New("report: unknown format")

// SDFImage maps a distance field to 16-bit gray. Zero distance is mid gray;
// the largest magnitude in the field maps to black (outside) or white
// (inside). A degenerate field is uniformly mid gray.
func SDFImage(f *sdf.Field) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, f.Width, f.Height))

	lo, hi := f.Range()
	scale := math.Max(math.Abs(float64(lo)), math.Abs(float64(hi)))
	for y := 0; y < f.Height; y++ {
		row := f.Row(y)
		for x, v := range row {
			n := 0.5
			if scale > 0 {
				n += float64(v) / (2 * scale)
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(n * math.MaxUint16))})
		}
	}
	return img
}

// EncodeSDF writes the field image in the given format ("png" or "tiff").
func EncodeSDF(w io.Writer, f *sdf.Field, format string) error {
	img := SDFImage(f)
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "tiff", "tif":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WriteSDF writes the field image to path, choosing the format from the
// file extension.
func WriteSDF(path string, f *sdf.Field) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch format {
	case "png", "tiff", "tif":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return EncodeSDF(file, f, format)
}
