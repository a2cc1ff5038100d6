package glyph

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphfit/sdf"
)

// InkThreshold is the alpha above which a canvas pixel counts as ink.
// It matches the 8-bit foreground threshold of package sdf.
const InkThreshold = sdf.Threshold8Bit

// Glyph is a rendered glyph on its canvas.
type Glyph struct {
	Rune rune

	// Mask is the canvas; alpha encodes ink coverage.
	Mask *image.Alpha

	// Ink bounds the pixels whose alpha exceeds InkThreshold, in canvas
	// coordinates. It is empty for blank glyphs such as space.
	Ink image.Rectangle

	// Advance is the advance width in pixels.
	Advance float64
}

// InkWidth returns the width of the inked region in pixels.
func (g *Glyph) InkWidth() int {
	return g.Ink.Dx()
}

// CenterX returns the canvas center column the ink is centered on.
func (g *Glyph) CenterX() int {
	return g.Mask.Bounds().Dx() / 2
}

// Raster converts the canvas into an 8-bit raster.
func (g *Glyph) Raster() *sdf.Raster {
	return sdf.RasterFromImage(g.Mask)
}

// Rasterizer renders runes of one font at one size.
//
// Rasterizer is safe for concurrent use; rendering calls are serialized
// because the underlying font.Face is not.
type Rasterizer struct {
	font *opentype.Font
	opts Options

	mu   sync.Mutex
	face font.Face
	buf  sfnt.Buffer
}

// NewRasterizer parses TrueType/OpenType data and prepares a face.
func NewRasterizer(data []byte, opts Options) (*Rasterizer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to create face: %w", err)
	}

	return &Rasterizer{font: f, opts: opts, face: face}, nil
}

// Options returns the rendering options.
func (r *Rasterizer) Options() Options {
	return r.opts
}

// Name returns the font's full name, or the family name if there is none.
func (r *Rasterizer) Name() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range []sfnt.NameID{sfnt.NameIDFull, sfnt.NameIDFamily} {
		if name, err := r.font.Name(&r.buf, id); err == nil && name != "" {
			return name
		}
	}
	return ""
}

// Rasterize draws ch on a fresh canvas with its ink centered on the canvas
// center column and its baseline on Options.Baseline.
func (r *Rasterizer) Rasterize(ch rune) (*Glyph, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, err := r.font.GlyphIndex(&r.buf, ch)
	if err != nil {
		return nil, fmt.Errorf("glyph: %q: %w", ch, err)
	}
	if idx == 0 {
		return nil, fmt.Errorf("%w: %q", ErrGlyphNotFound, ch)
	}

	bounds, advance, ok := r.face.GlyphBounds(ch)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGlyphNotFound, ch)
	}

	w, h := r.opts.CanvasWidth, r.opts.CanvasHeight
	inkW := (bounds.Max.X - bounds.Min.X).Ceil()
	top := r.opts.Baseline + bounds.Min.Y.Floor()
	bottom := r.opts.Baseline + bounds.Max.Y.Ceil()
	if inkW > w || top < 0 || bottom > h {
		return nil, fmt.Errorf("%w: %q needs %dpx width, rows [%d, %d) in %dx%d",
			ErrCanvasTooSmall, ch, inkW, top, bottom, w, h)
	}

	canvas := image.NewAlpha(image.Rect(0, 0, w, h))
	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.White,
		Face: r.face,
		Dot: fixed.Point26_6{
			X: fixed.I(w/2) - (bounds.Min.X+bounds.Max.X)/2,
			Y: fixed.I(r.opts.Baseline),
		},
	}
	drawer.DrawString(string(ch))

	return &Glyph{
		Rune:    ch,
		Mask:    canvas,
		Ink:     inkBounds(canvas, InkThreshold),
		Advance: fixedToFloat64(advance),
	}, nil
}

// Close releases the face.
func (r *Rasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.face.Close()
}

// inkBounds returns the bounding box of pixels with alpha above threshold.
func inkBounds(img *image.Alpha, threshold uint8) image.Rectangle {
	b := img.Bounds()
	ink := image.Rectangle{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.AlphaAt(x, y).A > threshold {
				ink = ink.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return ink
}

func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
