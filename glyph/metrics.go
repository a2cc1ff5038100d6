package glyph

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
)

// Bearings are the spacing metrics a font records for one glyph, scaled to
// pixels.
type Bearings struct {
	// LSB is the left side bearing: distance from the origin to the ink.
	LSB float64 `json:"lsb" yaml:"lsb"`

	// RSB is the right side bearing: advance minus LSB minus ink width.
	RSB float64 `json:"rsb" yaml:"rsb"`

	Advance  float64 `json:"advance" yaml:"advance"`
	InkWidth float64 `json:"ink_width" yaml:"ink_width"`
}

// Metrics reads recorded glyph metrics from a font.
//
// Metrics is safe for concurrent use.
type Metrics struct {
	mu   sync.Mutex
	face *font.Face
	upem float64
}

// LoadMetrics parses font data for metric lookups.
func LoadMetrics(data []byte) (*Metrics, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("glyph: failed to parse font metrics: %w", err)
	}
	upem := float64(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	return &Metrics{face: face, upem: upem}, nil
}

// UnitsPerEm returns the font's design units per em.
func (m *Metrics) UnitsPerEm() float64 {
	return m.upem
}

// Bearings returns the recorded metrics of ch at ppem pixels per em.
// Blank glyphs report zero ink and an LSB of zero.
func (m *Metrics) Bearings(ch rune, ppem float64) (Bearings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gid, ok := m.face.NominalGlyph(ch)
	if !ok {
		return Bearings{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, ch)
	}

	scale := ppem / m.upem
	advance := float64(m.face.HorizontalAdvance(gid))

	var lsb, ink float64
	if ext, ok := m.face.GlyphExtents(gid); ok && ext.Width > 0 {
		lsb = float64(ext.XBearing)
		ink = float64(ext.Width)
	}

	return Bearings{
		LSB:      lsb * scale,
		RSB:      (advance - lsb - ink) * scale,
		Advance:  advance * scale,
		InkWidth: ink * scale,
	}, nil
}
