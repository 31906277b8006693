package showcase

import (
	"fmt"

	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/tree"
	"github.com/go-drift/arbor/pkg/widgets"
)

// BasicMessage is produced by the basic demo's buttons.
type BasicMessage int

const (
	BasicAdd BasicMessage = iota
	BasicRemove
)

// Basic shows rows of red blocks above Add and Remove buttons. Add appends
// a labelled row, Remove drops the last row.
type Basic struct {
	counter int
	rows    tree.ID
}

// Rows returns the id of the column the buttons modify.
func (b *Basic) Rows() tree.ID {
	return b.rows
}

func (b *Basic) Build(ctx *engine.WidgetContext[BasicMessage]) tree.ID {
	b.rows = ctx.CreateWidget(widgets.Column(widgets.FlexAlignMiddle,
		widgets.Flexible(blockRow(ctx), 1),
		widgets.Flexible(blockRow(ctx), 1),
	))

	add := ctx.CreateWidget(widgets.NewButton(ctx.CreateWidget, "Add").WithColor(
		graphics.RGB(0, 0xFF, 0), graphics.RGB(0x66, 0xFF, 0x66), graphics.RGB(0, 0xC0, 0)))
	remove := ctx.CreateWidget(widgets.NewButton(ctx.CreateWidget, "Remove").WithColor(
		graphics.RGB(0xFF, 0, 0), graphics.RGB(0xFF, 0x66, 0x66), graphics.RGB(0xC0, 0, 0)))
	ctx.AddClickListener(add, func() BasicMessage { return BasicAdd })
	ctx.AddClickListener(remove, func() BasicMessage { return BasicRemove })

	buttons := ctx.CreateWidget(widgets.Row(widgets.FlexAlignMiddle,
		widgets.Flexible(add, 1),
		widgets.Flexible(remove, 1),
	))
	return ctx.CreateWidget(widgets.Column(widgets.FlexAlignMiddle,
		widgets.Flexible(b.rows, 9),
		widgets.Flexible(buttons, 1),
	))
}

func (b *Basic) HandleMessage(msg BasicMessage, ctx *engine.WidgetContext[BasicMessage]) {
	switch msg {
	case BasicAdd:
		b.counter++
		label := ctx.CreateWidget(widgets.NewLabel(fmt.Sprintf("New Item %d", b.counter)))
		padded := ctx.CreateWidget(widgets.NewPadding(graphics.EdgeInsetsAll(2), label))
		ctx.SendMessage(b.rows, widgets.FlexAppendItem{Item: widgets.Flexible(padded, 1)})
	case BasicRemove:
		ctx.SendMessage(b.rows, widgets.FlexRemoveLast{})
	}
}

func blockRow(ctx *engine.WidgetContext[BasicMessage]) tree.ID {
	items := make([]widgets.FlexItem, 0, 5)
	for i := 0; i < 5; i++ {
		block := ctx.CreateWidget(widgets.NewFillBox(graphics.Size{Width: 20, Height: 20}, graphics.RGB(0xFF, 0, 0)))
		items = append(items, widgets.Flexible(ctx.CreateWidget(widgets.NewPadding(graphics.EdgeInsetsAll(2), block)), 1))
	}
	return ctx.CreateWidget(widgets.Row(widgets.FlexAlignMiddle, items...))
}

// NewBasicHost returns a host running the basic demo.
func NewBasicHost(opts ...engine.Option) Host {
	return NewHost[BasicMessage](&Basic{}, opts...)
}
