package widgets

import (
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// FillBoxSetColor changes the fill of a [FillBox].
type FillBoxSetColor struct {
	Color graphics.Color
}

// FillBox paints a filled, optionally rounded rectangle and is interactive.
//
// Without a child it takes its preferred Size, constrained by the parent.
// With a child it passes its constraints through and takes the child's size.
type FillBox struct {
	layout.Base
	Size       graphics.Size
	Color      graphics.Color
	HoverColor graphics.Color
	Radius     float64

	ids     []tree.ID
	hovered bool
}

// NewFillBox creates a childless box.
func NewFillBox(size graphics.Size, color graphics.Color) *FillBox {
	return &FillBox{Size: size, Color: color, HoverColor: color}
}

// WithChild sets the box's child and returns the box.
func (f *FillBox) WithChild(child tree.ID) *FillBox {
	f.ids = []tree.ID{child}
	return f
}

// Hovered reports whether the pointer is over the box.
func (f *FillBox) Hovered() bool {
	return f.hovered
}

func (f *FillBox) Children() []tree.ID {
	return f.ids
}

func (f *FillBox) Layout(ctx *layout.Context, c graphics.Constraints, child *graphics.Size) layout.Result {
	if len(f.ids) == 0 {
		return layout.SizeResult(c.Constrain(f.Size))
	}
	if child == nil {
		return layout.RequestChild(f.ids[0], c)
	}
	ctx.SetPosition(f.ids[0], graphics.Offset{})
	return layout.SizeResult(c.Constrain(*child))
}

func (f *FillBox) Render(g graphics.Geometry, pc *layout.PaintContext) (layout.Tag, bool) {
	color := f.Color
	if f.hovered {
		color = f.HoverColor
	}
	if f.Radius > 0 {
		pc.Canvas.DrawRRect(g.Rect(), f.Radius, graphics.PaintFill(color))
	} else {
		pc.Canvas.DrawRect(g.Rect(), graphics.PaintFill(color))
	}
	return pc.NextTag(), true
}

func (f *FillBox) HandleInteraction(i layout.Interaction) {
	if i.Kind == layout.InteractionHover {
		f.hovered = i.Hovered
	}
}

// Update applies FillBoxSetColor.
func (f *FillBox) Update(msg layout.Message) []tree.ID {
	if m, ok := msg.(FillBoxSetColor); ok {
		f.Color = m.Color
		f.HoverColor = m.Color
	}
	return nil
}
