package widgets

import (
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// Default button styling.
const (
	ButtonPadding      = 10
	ButtonRadius       = 4
	ButtonPressedInset = 2
)

var (
	ButtonColor        = graphics.RGB(0xE0, 0xE0, 0xE0)
	ButtonHoverColor   = graphics.RGB(0xEE, 0xEE, 0xEE)
	ButtonPressedColor = graphics.RGB(0xC8, 0xC8, 0xC8)
)

// Creator stores a widget and returns its id. Both layout.Tree.Create
// and the application's widget context satisfy it as a method value.
type Creator func(layout.Widget) tree.ID

// Button is an interactive box around a centered, padded label.
//
// It builds its own subtree, Padding -> Center -> Label, when created.
// Hovering raises a shadow and pressing shrinks the box slightly:
//
//	ok := widgets.NewButton(tr.Create, "OK")
//	okID := tr.Create(ok)
type Button struct {
	layout.Base
	Color        graphics.Color
	HoverColor   graphics.Color
	PressedColor graphics.Color
	Radius       float64

	ids     []tree.ID
	label   tree.ID
	hovered bool
	down    bool
}

// NewButton creates a button showing text, storing its subtree with create.
func NewButton(create Creator, text string) *Button {
	label := create(NewLabel(text))
	center := create(NewCenter(label))
	padding := create(NewPadding(graphics.EdgeInsetsAll(ButtonPadding), center))
	return &Button{
		Color:        ButtonColor,
		HoverColor:   ButtonHoverColor,
		PressedColor: ButtonPressedColor,
		Radius:       ButtonRadius,
		ids:          []tree.ID{padding},
		label:        label,
	}
}

// WithColor returns the button with the given idle, hover and pressed colors.
func (b *Button) WithColor(idle, hover, pressed graphics.Color) *Button {
	b.Color = idle
	b.HoverColor = hover
	b.PressedColor = pressed
	return b
}

// Label returns the id of the button's label, for LabelSetText messages.
func (b *Button) Label() tree.ID {
	return b.label
}

// Hovered reports whether the pointer is over the button.
func (b *Button) Hovered() bool {
	return b.hovered
}

// Pressed reports whether a press that started on the button is held.
func (b *Button) Pressed() bool {
	return b.down
}

func (b *Button) Children() []tree.ID {
	return b.ids
}

func (b *Button) Layout(ctx *layout.Context, c graphics.Constraints, child *graphics.Size) layout.Result {
	if child == nil {
		return layout.RequestChild(b.ids[0], c)
	}
	ctx.SetPosition(b.ids[0], graphics.Offset{})
	return layout.SizeResult(c.Constrain(*child))
}

func (b *Button) Render(g graphics.Geometry, pc *layout.PaintContext) (layout.Tag, bool) {
	rect := g.Rect()
	color := b.Color
	switch {
	case b.down:
		rect = rect.Inflate(-ButtonPressedInset, -ButtonPressedInset)
		color = b.PressedColor
	case b.hovered:
		color = b.HoverColor
	}
	if b.hovered && !rect.IsEmpty() {
		pc.Canvas.DrawRectShadow(rect, b.Radius, graphics.BoxShadow{
			Color:      graphics.ColorShadow,
			Offset:     graphics.Offset{Y: 2},
			BlurRadius: 4,
		})
	}
	pc.Canvas.DrawRRect(rect, b.Radius, graphics.PaintFill(color))
	return pc.NextTag(), true
}

func (b *Button) HandleInteraction(i layout.Interaction) {
	switch i.Kind {
	case layout.InteractionHover:
		b.hovered = i.Hovered
	case layout.InteractionMouseDown:
		b.down = true
	case layout.InteractionMouseUp:
		b.down = false
	}
}
