package widgets

import (
	"math"

	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// SplitSetRatio moves the divider of a [Split].
type SplitSetRatio struct {
	Ratio float64
}

// Split divides its width between two children at a ratio in [0, 1].
//
// The left child may use up to ratio of the width, the right child the rest,
// and the right child starts at the divider. Split always reports its
// maximum size. With unbounded width the children are laid out side by side
// at their own widths.
type Split struct {
	layout.Base
	ratio float64
	ids   []tree.ID

	leftDone  bool
	leftWidth float64
	height    float64
}

// NewSplit creates a split. The ratio is clamped to [0, 1].
func NewSplit(left, right tree.ID, ratio float64) *Split {
	return &Split{ratio: clampRatio(ratio), ids: []tree.ID{left, right}}
}

// Ratio returns the clamped divider position.
func (s *Split) Ratio() float64 {
	return s.ratio
}

func (s *Split) Children() []tree.ID {
	return s.ids
}

// Update applies SplitSetRatio.
func (s *Split) Update(msg layout.Message) []tree.ID {
	if m, ok := msg.(SplitSetRatio); ok {
		s.ratio = clampRatio(m.Ratio)
	}
	return nil
}

func (s *Split) Layout(ctx *layout.Context, c graphics.Constraints, child *graphics.Size) layout.Result {
	left, right := s.ids[0], s.ids[1]
	bounded := c.HasBoundedWidth()

	switch {
	case child == nil:
		s.leftDone = false
		s.height = 0
		width := graphics.Infinity
		if bounded {
			width = c.Max.Width * s.ratio
		}
		return layout.RequestChild(left, graphics.Loose(graphics.Size{Width: width, Height: c.Max.Height}))

	case !s.leftDone:
		s.leftDone = true
		s.leftWidth = child.Width
		s.height = child.Height
		ctx.SetPosition(left, graphics.Offset{})
		width := graphics.Infinity
		if bounded {
			width = c.Max.Width * (1 - s.ratio)
		}
		return layout.RequestChild(right, graphics.Loose(graphics.Size{Width: width, Height: c.Max.Height}))
	}

	divider := s.leftWidth
	if bounded {
		divider = c.Max.Width * s.ratio
	}
	ctx.SetPosition(right, graphics.Offset{X: divider})
	s.height = math.Max(s.height, child.Height)

	size := c.Max
	if !bounded {
		size.Width = divider + child.Width
	}
	if !c.HasBoundedHeight() {
		size.Height = s.height
	}
	return layout.SizeResult(c.Constrain(size))
}

func clampRatio(r float64) float64 {
	if math.IsNaN(r) {
		return 0.5
	}
	return math.Min(math.Max(r, 0), 1)
}
