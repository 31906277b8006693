package widgets

import (
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// Center positions its child at the center of the available space.
//
// Center expands to fill the maximum size its constraints allow, then
// centers the child within that space. The child is given loose
// constraints, allowing it to size itself. On an unbounded axis Center
// shrinks to the child's extent.
type Center struct {
	layout.Base
	ids []tree.ID
}

// NewCenter centers child.
func NewCenter(child tree.ID) *Center {
	return &Center{ids: []tree.ID{child}}
}

// Child returns the centered widget.
func (c *Center) Child() tree.ID {
	return c.ids[0]
}

func (c *Center) Children() []tree.ID {
	return c.ids
}

func (c *Center) Layout(ctx *layout.Context, cons graphics.Constraints, child *graphics.Size) layout.Result {
	if child == nil {
		return layout.RequestChild(c.Child(), cons.Loosen())
	}
	target := cons.Max
	if !cons.HasBoundedWidth() {
		target.Width = child.Width
	}
	if !cons.HasBoundedHeight() {
		target.Height = child.Height
	}
	size := cons.Constrain(target)
	ctx.SetPosition(c.Child(), graphics.Offset{
		X: (size.Width - child.Width) / 2,
		Y: (size.Height - child.Height) / 2,
	})
	return layout.SizeResult(size)
}
