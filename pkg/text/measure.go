// Package text measures strings for layout using golang.org/x/image fonts.
package text

import (
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/arbor/pkg/graphics"
)

// DefaultFontSize is the point size used when a font file is loaded without
// an explicit size.
const DefaultFontSize = 13

// Measurer shapes single-line text runs. It is safe for concurrent use.
//
// A Measurer built from an OpenType font rasterizes a face per scale so
// metrics stay exact; one built from a fixed bitmap face multiplies its
// metrics by the scale instead.
type Measurer struct {
	mu    sync.Mutex
	base  font.Face
	font  *opentype.Font
	size  float64
	faces map[float64]font.Face
}

// New returns a measurer over an existing face.
func New(face font.Face) *Measurer {
	return &Measurer{base: face}
}

var (
	defaultOnce     sync.Once
	defaultMeasurer *Measurer
)

// Default returns a shared measurer over the built-in 7x13 bitmap face.
func Default() *Measurer {
	defaultOnce.Do(func() {
		defaultMeasurer = New(basicfont.Face7x13)
	})
	return defaultMeasurer
}

// LoadFile parses a TrueType or OpenType file and returns a measurer that
// renders it at size points. A non-positive size selects DefaultFontSize.
func LoadFile(path string, size float64) (*Measurer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Parse(data, size)
}

// Parse is like LoadFile for font data already in memory.
func Parse(data []byte, size float64) (*Measurer, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	m := &Measurer{font: f, size: size, faces: make(map[float64]font.Face)}
	base, err := m.faceFor(1)
	if err != nil {
		return nil, err
	}
	m.base = base
	return m, nil
}

// faceFor returns the face for scale, creating it on first use. The caller
// holds mu or is the constructor.
func (m *Measurer) faceFor(scale float64) (font.Face, error) {
	if face, ok := m.faces[scale]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    m.size * scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	m.faces[scale] = face
	return face, nil
}

// Layout measures text at scale. Non-positive scales are treated as 1.
func (m *Measurer) Layout(text string, scale float64) *graphics.TextLayout {
	if scale <= 0 {
		scale = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	face, factor := m.base, scale
	if m.font != nil && scale != 1 {
		if scaled, err := m.faceFor(scale); err == nil {
			face, factor = scaled, 1
		}
	}

	metrics := face.Metrics()
	ascent := toFloat(metrics.Ascent) * factor
	descent := toFloat(metrics.Descent) * factor

	glyphs := make([]graphics.Glyph, 0, utf8.RuneCountInString(text))
	var x fixed.Int26_6
	prev := rune(-1)
	for _, r := range text {
		if prev >= 0 {
			x += face.Kern(prev, r)
		}
		glyphs = append(glyphs, graphics.Glyph{Rune: r, X: toFloat(x) * factor, Y: ascent})
		advance, ok := face.GlyphAdvance(r)
		if !ok {
			advance, _ = face.GlyphAdvance(utf8.RuneError)
		}
		x += advance
		prev = r
	}

	return &graphics.TextLayout{
		Text:    text,
		Scale:   scale,
		Size:    graphics.Size{Width: toFloat(x) * factor, Height: ascent + descent},
		Ascent:  ascent,
		Descent: descent,
		Glyphs:  glyphs,
		Face:    face,
	}
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
