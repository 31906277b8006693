// Package showcase contains small arbor applications exercising the layout
// engine, interaction dispatch and rendering end to end.
package showcase

import (
	"context"
	"fmt"
	"io"

	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// Host drives a showcase application without exposing its message type.
type Host interface {
	// CreateWindow builds the application into a new window.
	CreateWindow(title string, size graphics.Size, surface engine.Surface) engine.WindowID
	// HandleEvent applies one window-system notification.
	HandleEvent(ev engine.Event) error
	// Frame runs one frame.
	Frame() error
	// Run polls source until it is exhausted or every window closed.
	Run(ctx context.Context, source engine.EventSource) error
	// Tree returns the widget arena.
	Tree() *layout.Tree
	// Root returns the root widget of a window.
	Root(w engine.WindowID) (tree.ID, bool)
	// DumpTree prints the widget tree of a window.
	DumpTree(out io.Writer, w engine.WindowID) error
}

type host[M any] struct {
	app *engine.App[M]
}

// NewHost wraps an application in a Host.
func NewHost[M any](application engine.Application[M], opts ...engine.Option) Host {
	return &host[M]{app: engine.New[M](application, opts...)}
}

func (h *host[M]) CreateWindow(title string, size graphics.Size, surface engine.Surface) engine.WindowID {
	return h.app.CreateWindow(title, size, surface).ID()
}

func (h *host[M]) HandleEvent(ev engine.Event) error {
	return h.app.HandleEvent(ev)
}

func (h *host[M]) Frame() error {
	return h.app.Frame()
}

func (h *host[M]) Run(ctx context.Context, source engine.EventSource) error {
	return h.app.Run(ctx, source)
}

func (h *host[M]) Tree() *layout.Tree {
	return h.app.Tree()
}

func (h *host[M]) Root(id engine.WindowID) (tree.ID, bool) {
	w, ok := h.app.Window(id)
	if !ok || w.Closed() {
		return tree.ID{}, false
	}
	return w.Root(), true
}

func (h *host[M]) DumpTree(out io.Writer, id engine.WindowID) error {
	root, ok := h.Root(id)
	if !ok {
		return fmt.Errorf("no open window %d", id)
	}
	return layout.DumpTree(out, h.app.Tree(), root)
}
