package graphics

import "golang.org/x/image/font"

// Glyph is one positioned character of a measured text run. Positions are
// relative to the top-left corner of the run; Y is the baseline.
type Glyph struct {
	Rune rune
	X    float64
	Y    float64
}

// TextLayout contains measured text metrics and the face that produced them.
//
// Layout treats it opaquely: only Size feeds measurement, the glyphs and face
// are consumed by the rendering backend.
type TextLayout struct {
	Text    string
	Scale   float64
	Size    Size
	Ascent  float64
	Descent float64
	Glyphs  []Glyph
	Face    font.Face
}

// Width returns the advance width of the run.
func (t *TextLayout) Width() float64 {
	if t == nil {
		return 0
	}
	return t.Size.Width
}
