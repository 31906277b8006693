package engine

import (
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/interaction"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// Window is one root widget drawn to one surface.
type Window[M any] struct {
	id         WindowID
	title      string
	size       graphics.Size
	root       tree.ID
	surface    Surface
	pipeline   *layout.PipelineOwner
	dispatcher *interaction.Dispatcher[M]
	pointer    graphics.Offset
	closed     bool
}

// ID returns the window's id.
func (w *Window[M]) ID() WindowID { return w.id }

// Title returns the window's title.
func (w *Window[M]) Title() string { return w.title }

// Size returns the viewport size.
func (w *Window[M]) Size() graphics.Size { return w.size }

// Root returns the root widget, or the zero id once the window is closed.
func (w *Window[M]) Root() tree.ID { return w.root }

// Surface returns the window's rendering backend.
func (w *Window[M]) Surface() Surface { return w.surface }

// Pointer returns the last reported pointer position.
func (w *Window[M]) Pointer() graphics.Offset { return w.pointer }

// Closed reports whether the window was closed.
func (w *Window[M]) Closed() bool { return w.closed }

// Dispatcher returns the window's interaction dispatcher.
func (w *Window[M]) Dispatcher() *interaction.Dispatcher[M] { return w.dispatcher }

// MarkNeedsLayout schedules a full relayout and repaint on the next frame.
func (w *Window[M]) MarkNeedsLayout() { w.pipeline.MarkNeedsLayout() }

// MarkNeedsPaint schedules a repaint on the next frame.
func (w *Window[M]) MarkNeedsPaint() { w.pipeline.MarkNeedsPaint() }

// rootConstraints seeds the root with the viewport as its maximum.
func (w *Window[M]) rootConstraints() graphics.Constraints {
	return graphics.Loose(w.size)
}
