package layout

import (
	"fmt"

	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/tree"
)

// Tree is the arena that owns every widget.
type Tree = tree.Arena[Widget]

// NewTree returns an empty widget arena.
func NewTree() *Tree {
	return tree.NewArena[Widget]()
}

// Tag links a painted, hit-testable region to the widget that painted it.
type Tag uint64

// Message is a typed update delivered to a widget. Widgets switch on the
// concrete types they understand and ignore all others.
type Message any

// Widget is implemented by every node of the retained tree.
type Widget interface {
	// Children declares the widget's ownership edges, in order. The layout
	// engine and subtree removal both rely on it, so it must not change
	// between calls unless the widget was mutated.
	Children() []tree.ID

	// Layout performs one step of the resumable layout protocol. child is
	// nil on the first call of a pass and afterwards carries the size of
	// the child requested by the previous step.
	Layout(ctx *Context, constraints graphics.Constraints, child *graphics.Size) Result

	// Render paints the widget at its absolute geometry. Returning a tag
	// marks the painted region as interactive for this frame.
	Render(geometry graphics.Geometry, pc *PaintContext) (Tag, bool)

	// HandleInteraction receives hover, press and release notifications.
	HandleInteraction(interaction Interaction)

	// Update applies a message. The returned ids are torn down by the
	// caller with subtree removal.
	Update(msg Message) []tree.ID
}

// Base provides the optional parts of [Widget] as no-ops. Embed it and
// implement Layout (and Children for widgets with children).
type Base struct{}

// Children reports no children.
func (Base) Children() []tree.ID { return nil }

// Render paints nothing and is not interactive.
func (Base) Render(graphics.Geometry, *PaintContext) (Tag, bool) { return 0, false }

// HandleInteraction ignores the interaction.
func (Base) HandleInteraction(Interaction) {}

// Update ignores the message.
func (Base) Update(Message) []tree.ID { return nil }

// InteractionKind enumerates the pointer notifications a widget can receive.
type InteractionKind int

const (
	// InteractionHover reports the pointer entering or leaving the widget.
	InteractionHover InteractionKind = iota
	// InteractionMouseDown reports a button press over the widget.
	InteractionMouseDown
	// InteractionMouseUp reports the release of a press that started on the widget.
	InteractionMouseUp
)

// Interaction is a pointer notification routed to a widget.
type Interaction struct {
	Kind InteractionKind
	// Hovered is meaningful for InteractionHover only.
	Hovered bool
}

// Hovered returns a hover transition notification.
func Hovered(hovered bool) Interaction {
	return Interaction{Kind: InteractionHover, Hovered: hovered}
}

// MouseDown returns a press notification.
func MouseDown() Interaction {
	return Interaction{Kind: InteractionMouseDown}
}

// MouseUp returns a release notification.
func MouseUp() Interaction {
	return Interaction{Kind: InteractionMouseUp}
}

func (i Interaction) String() string {
	switch i.Kind {
	case InteractionHover:
		return fmt.Sprintf("Hovered(%t)", i.Hovered)
	case InteractionMouseDown:
		return "MouseDown"
	case InteractionMouseUp:
		return "MouseUp"
	default:
		return fmt.Sprintf("Interaction(%d)", int(i.Kind))
	}
}
