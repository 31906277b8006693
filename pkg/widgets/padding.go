package widgets

import (
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// Padding adds empty space around its child.
//
// The child is constrained to the space left after the insets are removed,
// never below zero, and is placed at (Left, Top):
//
//	pad := widgets.NewPadding(graphics.EdgeInsetsAll(10), label)
type Padding struct {
	layout.Base
	Insets graphics.EdgeInsets
	ids    []tree.ID
}

// NewPadding wraps child with the given insets.
func NewPadding(insets graphics.EdgeInsets, child tree.ID) *Padding {
	return &Padding{Insets: insets, ids: []tree.ID{child}}
}

// Child returns the padded widget.
func (p *Padding) Child() tree.ID {
	return p.ids[0]
}

func (p *Padding) Children() []tree.ID {
	return p.ids
}

func (p *Padding) Layout(ctx *layout.Context, c graphics.Constraints, child *graphics.Size) layout.Result {
	if child == nil {
		return layout.RequestChild(p.Child(), c.Deflate(p.Insets))
	}
	ctx.SetPosition(p.Child(), graphics.Offset{X: p.Insets.Left, Y: p.Insets.Top})
	return layout.SizeResult(c.Constrain(graphics.Size{
		Width:  child.Width + p.Insets.Horizontal(),
		Height: child.Height + p.Insets.Vertical(),
	}))
}
