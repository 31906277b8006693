package widgets

import (
	"math"

	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// ListAppend adds a child to the bottom of a [List].
type ListAppend struct {
	Child tree.ID
}

// ListRemoveLast removes the bottom child of a [List] and hands it back for
// teardown.
type ListRemoveLast struct{}

// List stacks its children vertically, top to bottom.
//
// Every child is forced to the list's full width and may use at most the
// height left below its predecessors. With unbounded width children size
// themselves and the list takes the widest one.
type List struct {
	layout.Base
	children []tree.ID

	cursor int
	height float64
	width  float64
}

// NewList creates a list of children.
func NewList(children ...tree.ID) *List {
	return &List{children: append([]tree.ID(nil), children...)}
}

func (l *List) Children() []tree.ID {
	return l.children
}

// Update applies ListAppend and ListRemoveLast.
func (l *List) Update(msg layout.Message) []tree.ID {
	switch m := msg.(type) {
	case ListAppend:
		l.children = append(l.children, m.Child)
	case ListRemoveLast:
		if len(l.children) == 0 {
			return nil
		}
		last := l.children[len(l.children)-1]
		l.children = l.children[:len(l.children)-1]
		return []tree.ID{last}
	}
	return nil
}

func (l *List) Layout(ctx *layout.Context, c graphics.Constraints, child *graphics.Size) layout.Result {
	if child == nil {
		l.cursor = 0
		l.height = 0
		l.width = 0
	} else {
		ctx.SetPosition(l.children[l.cursor], graphics.Offset{Y: l.height})
		l.height += child.Height
		l.width = math.Max(l.width, child.Width)
		l.cursor++
	}

	if l.cursor < len(l.children) {
		return layout.RequestChild(l.children[l.cursor], l.childConstraints(c))
	}

	width := c.Max.Width
	if !c.HasBoundedWidth() {
		width = l.width
	}
	return layout.SizeResult(c.Constrain(graphics.Size{Width: width, Height: l.height}))
}

func (l *List) childConstraints(c graphics.Constraints) graphics.Constraints {
	remaining := math.Max(c.Max.Height-l.height, 0)
	if !c.HasBoundedWidth() {
		return graphics.Constraints{Max: graphics.Size{Width: graphics.Infinity, Height: remaining}}
	}
	return graphics.Constraints{
		Min: graphics.Size{Width: c.Max.Width},
		Max: graphics.Size{Width: c.Max.Width, Height: remaining},
	}
}
