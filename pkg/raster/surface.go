// Package raster renders widget trees into in-memory images with
// github.com/fogleman/gg and answers hit tests against the tagged regions
// of the last presented paint.
package raster

import (
	"fmt"
	"image"
	"io"
	"math"
	"slices"
	"time"

	"github.com/fogleman/gg"

	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
)

// shadowSteps is the number of layers used to approximate a blurred shadow.
const shadowSteps = 4

type region struct {
	tag  layout.Tag
	rect graphics.Rect
}

// Surface is a raster rendering backend. It implements graphics.Canvas
// during a paint and the engine's Surface between paints.
type Surface struct {
	dc        *gg.Context
	size      graphics.Size
	regions   []region
	presented []region
	frames    int
}

// New returns a surface; the image is allocated by the first Begin.
func New() *Surface {
	return &Surface{}
}

// Begin starts a paint at size, reallocating the image if the size changed.
func (s *Surface) Begin(size graphics.Size) graphics.Canvas {
	w, h := pixels(size.Width), pixels(size.Height)
	if s.dc == nil || s.dc.Width() != w || s.dc.Height() != h {
		s.dc = gg.NewContext(w, h)
	}
	s.size = size
	s.regions = s.regions[:0]
	return s
}

// Present publishes the tagged regions of the paint for hit testing.
func (s *Surface) Present() error {
	s.presented = slices.Clone(s.regions)
	s.frames++
	return nil
}

// Frames returns the number of presented paints.
func (s *Surface) Frames() int {
	return s.frames
}

// HitTest returns the tag of the topmost presented region containing
// position. Later regions paint over earlier ones.
func (s *Surface) HitTest(position graphics.Offset) (layout.Tag, bool) {
	for i := len(s.presented) - 1; i >= 0; i-- {
		if s.presented[i].rect.Contains(position) {
			return s.presented[i].tag, true
		}
	}
	return 0, false
}

// RecordTag registers a tagged region of the current paint.
func (s *Surface) RecordTag(tag layout.Tag, rect graphics.Rect) {
	s.regions = append(s.regions, region{tag: tag, rect: rect})
}

// Size returns the size of the current paint.
func (s *Surface) Size() graphics.Size {
	return s.size
}

// Clear fills the entire image with color.
func (s *Surface) Clear(color graphics.Color) {
	s.setColor(color)
	s.dc.Clear()
}

// DrawRect fills rect.
func (s *Surface) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	if rect.IsEmpty() {
		return
	}
	s.setColor(paint.Color)
	s.dc.DrawRectangle(rect.Left, rect.Top, rect.Width(), rect.Height())
	s.dc.Fill()
}

// DrawRRect fills rect with rounded corners.
func (s *Surface) DrawRRect(rect graphics.Rect, radius float64, paint graphics.Paint) {
	if rect.IsEmpty() {
		return
	}
	s.setColor(paint.Color)
	s.dc.DrawRoundedRectangle(rect.Left, rect.Top, rect.Width(), rect.Height(), radius)
	s.dc.Fill()
}

// DrawRectShadow approximates a blurred shadow with concentric layers of
// decreasing opacity. Inset shadows are not drawn.
func (s *Surface) DrawRectShadow(rect graphics.Rect, radius float64, shadow graphics.BoxShadow) {
	if shadow.Inset || rect.IsEmpty() {
		return
	}
	base := graphics.Rect{
		Left:   rect.Left + shadow.Offset.X,
		Top:    rect.Top + shadow.Offset.Y,
		Right:  rect.Right + shadow.Offset.X,
		Bottom: rect.Bottom + shadow.Offset.Y,
	}
	alpha := shadow.Color.Alpha() / shadowSteps
	for i := shadowSteps; i >= 1; i-- {
		spread := shadow.BlurRadius * float64(i) / shadowSteps
		layer := base.Inflate(spread, spread)
		s.setColor(shadow.Color.WithAlpha(alpha))
		s.dc.DrawRoundedRectangle(layer.Left, layer.Top, layer.Width(), layer.Height(), radius+spread)
		s.dc.Fill()
	}
}

// DrawText draws every glyph of a measured layout at its measured position.
func (s *Surface) DrawText(text *graphics.TextLayout, position graphics.Offset, color graphics.Color) {
	if text == nil || text.Face == nil || len(text.Glyphs) == 0 {
		return
	}
	s.dc.SetFontFace(text.Face)
	s.setColor(color)
	for _, g := range text.Glyphs {
		s.dc.DrawString(string(g.Rune), position.X+g.X, position.Y+g.Y)
	}
}

// Image returns the rendered image.
func (s *Surface) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// SavePNG writes the rendered image to path.
func (s *Surface) SavePNG(path string) error {
	if s.dc == nil {
		return renderError("raster.Surface.SavePNG", fmt.Errorf("nothing has been painted"))
	}
	if err := s.dc.SavePNG(path); err != nil {
		return renderError("raster.Surface.SavePNG", err)
	}
	return nil
}

// EncodePNG writes the rendered image to w as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.dc == nil {
		return renderError("raster.Surface.EncodePNG", fmt.Errorf("nothing has been painted"))
	}
	if err := s.dc.EncodePNG(w); err != nil {
		return renderError("raster.Surface.EncodePNG", err)
	}
	return nil
}

func (s *Surface) setColor(c graphics.Color) {
	r, g, b, a := c.RGBAF()
	s.dc.SetRGBA(r, g, b, a)
}

func renderError(op string, err error) error {
	return &errors.ArborError{
		Op:        op,
		Kind:      errors.KindRender,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// pixels converts a logical extent to an image dimension of at least one
// pixel.
func pixels(v float64) int {
	if math.IsInf(v, 0) || math.IsNaN(v) || v < 1 {
		return 1
	}
	return int(math.Ceil(v))
}
