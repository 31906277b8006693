package showcase

import (
	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/tree"
	"github.com/go-drift/arbor/pkg/widgets"
)

// FlexText pushes two labels to the window edges with a transparent
// flexible box between them.
type FlexText struct {
	Left, Fill, Right tree.ID
}

func (f *FlexText) Build(ctx *engine.WidgetContext[struct{}]) tree.ID {
	f.Left = ctx.CreateWidget(widgets.NewLabel("Left Text"))
	f.Right = ctx.CreateWidget(widgets.NewLabel("Right Text"))
	f.Fill = ctx.CreateWidget(widgets.NewFillBox(graphics.Size{Width: 10, Height: 10}, graphics.ColorTransparent))
	return ctx.CreateWidget(widgets.Row(widgets.FlexAlignMiddle,
		widgets.NonFlex(f.Left),
		widgets.Flexible(f.Fill, 1),
		widgets.NonFlex(f.Right),
	))
}

func (f *FlexText) HandleMessage(struct{}, *engine.WidgetContext[struct{}]) {}

// NewFlexTextHost returns a host running the flex text demo.
func NewFlexTextHost(opts ...engine.Option) Host {
	return NewHost[struct{}](&FlexText{}, opts...)
}
