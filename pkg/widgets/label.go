package widgets

import (
	"math"

	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// LabelLineHeight is the minimum height of a label line at scale 1.
const LabelLineHeight = 32

// LabelSetText replaces the text of a [Label].
type LabelSetText struct {
	Text string
}

// Label displays a single line of text.
//
// Its width is the measured width of the text and its height a full line,
// both constrained by the parent.
type Label struct {
	layout.Base
	Text  string
	Scale float64
	Color graphics.Color

	measured *graphics.TextLayout
}

// NewLabel creates a black label at scale 1.
func NewLabel(text string) *Label {
	return &Label{Text: text, Scale: 1, Color: graphics.ColorBlack}
}

// Update applies LabelSetText.
func (l *Label) Update(msg layout.Message) []tree.ID {
	if m, ok := msg.(LabelSetText); ok {
		l.Text = m.Text
	}
	return nil
}

func (l *Label) Layout(ctx *layout.Context, c graphics.Constraints, _ *graphics.Size) layout.Result {
	scale := l.Scale
	if scale <= 0 {
		scale = 1
	}
	l.measured = ctx.MeasureText(l.Text, scale)
	height := math.Max(l.measured.Size.Height, LabelLineHeight*scale)
	return layout.SizeResult(c.Constrain(graphics.Size{Width: l.measured.Width(), Height: height}))
}

// Render draws the text vertically centered in the label's box.
func (l *Label) Render(g graphics.Geometry, pc *layout.PaintContext) (layout.Tag, bool) {
	if l.measured == nil || l.Text == "" {
		return 0, false
	}
	position := graphics.Offset{
		X: g.Position.X,
		Y: g.Position.Y + (g.Size.Height-l.measured.Size.Height)/2,
	}
	pc.Canvas.DrawText(l.measured, position, l.Color)
	return 0, false
}
