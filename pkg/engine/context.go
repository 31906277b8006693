package engine

import (
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// WidgetContext is the application's handle on the widget tree of one
// window, passed to Build and HandleMessage.
type WidgetContext[M any] struct {
	app    *App[M]
	window *Window[M]
}

// NewWidgetContext returns a context for mutating the tree of w between
// frames.
func NewWidgetContext[M any](app *App[M], w *Window[M]) *WidgetContext[M] {
	return &WidgetContext[M]{app: app, window: w}
}

// Window returns the window this context belongs to.
func (c *WidgetContext[M]) Window() *Window[M] {
	return c.window
}

// Tree returns the widget arena for read access.
func (c *WidgetContext[M]) Tree() *layout.Tree {
	return c.app.tree
}

// CreateWidget stores w and returns its id.
func (c *WidgetContext[M]) CreateWidget(w layout.Widget) tree.ID {
	return c.app.tree.Create(w)
}

// RemoveSubtree removes id and every descendant, and makes every window
// forget them. The window is relaid out on the next frame.
func (c *WidgetContext[M]) RemoveSubtree(id tree.ID) {
	c.app.removeSubtree(id)
	c.window.MarkNeedsLayout()
}

// SendMessage delivers msg to the widget's Update. Children the widget
// hands back are torn down, and the window is relaid out on the next frame.
// Sending to a removed widget panics.
func (c *WidgetContext[M]) SendMessage(id tree.ID, msg layout.Message) {
	w := c.app.tree.MustGet("engine.WidgetContext.SendMessage", id)
	for _, removed := range w.Update(msg) {
		c.app.removeSubtree(removed)
	}
	c.window.MarkNeedsLayout()
}

// AddClickListener makes a press on id enqueue the listener's message.
func (c *WidgetContext[M]) AddClickListener(id tree.ID, listener func() M) {
	c.window.dispatcher.Listen(id, listener)
}

// RemoveClickListener removes the click listener of id.
func (c *WidgetContext[M]) RemoveClickListener(id tree.ID) {
	c.window.dispatcher.Unlisten(id)
}
