package glyphfit

import (
	"math"

	"github.com/gogpu/glyphfit/density"
	"github.com/gogpu/glyphfit/glyph"
	"github.com/gogpu/glyphfit/internal/filter"
	"github.com/gogpu/glyphfit/sdf"
	"github.com/gogpu/glyphfit/search"
)

// visibleAlpha is the smallest blurred alpha that survives rounding to an
// 8-bit channel.
const visibleAlpha = 0.5

// blurredGlyph is a glyph canvas padded on both sides and blurred once, so
// every gap of a bisection reads from the same plane.
type blurredGlyph struct {
	plane filter.Plane
	mid   int
	half  int
}

// newBlurredGlyph pads the canvas far enough that a strip of maxGap plus
// half the ink width never leaves the plane.
func newBlurredGlyph(g *glyph.Glyph, radius float64, maxGap int) blurredGlyph {
	half := g.InkWidth() / 2
	pad := max(maxGap, 0) + half + int(math.Ceil(3*radius))

	b := g.Mask.Bounds()
	src := filter.NewPlane(b.Dx()+2*pad, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Width+pad:]
		for x := 0; x < b.Dx(); x++ {
			row[x] = float32(g.Mask.AlphaAt(b.Min.X+x, b.Min.Y+y).A)
		}
	}

	return blurredGlyph{
		plane: filter.Blur(src, radius),
		mid:   pad + g.CenterX(),
		half:  half,
	}
}

// gapFunc measures the visible blurred pixels in the strip of width
// gap + inkWidth/2 that starts at the canvas center and extends toward side.
// The count is divided by the canvas height, giving the strip's width in
// fully visible columns. Each extra unit of gap raises it by at most 1.
func (bg blurredGlyph) gapFunc(side search.Side) search.GapFunc {
	return func(gap int) (float64, error) {
		w := gap + bg.half
		x1, x2 := bg.mid-w, bg.mid
		if side == search.Right {
			x1, x2 = bg.mid, bg.mid+w
		}
		x1 = max(x1, 0)
		x2 = min(x2, bg.plane.Width)
		if x1 >= x2 {
			return 0, nil
		}

		n := 0
		for y := 0; y < bg.plane.Height; y++ {
			row := bg.plane.Pix[y*bg.plane.Width : (y+1)*bg.plane.Width]
			for _, v := range row[x1:x2] {
				if v >= visibleAlpha {
					n++
				}
			}
		}
		return float64(n) / float64(bg.plane.Height), nil
	}
}

// marginGapFunc measures the SDF density of the same strip as the blur
// metric: gap + half columns from center toward side.
func marginGapFunc(f *sdf.Field, m density.Metric, side search.Side, center, half int) search.GapFunc {
	inner := search.MarginGapFunc(f, m, side, center, f.Height)
	return func(gap int) (float64, error) {
		return inner(gap + half)
	}
}
