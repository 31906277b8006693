package testing

import (
	"testing"

	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 600
)

// BuildFunc creates the widgets of the tested tree and returns its root.
type BuildFunc func(ctx *engine.WidgetContext[any]) tree.ID

// MessageHandler reacts to a click message drained during Pump.
type MessageHandler func(msg any, ctx *engine.WidgetContext[any])

// WidgetTester provides isolated widget testing without real rendering.
// It drives the same layout, dispatch and paint phases as the engine but
// paints into a recording surface.
type WidgetTester struct {
	app      *engine.App[any]
	window   *engine.Window[any]
	surface  *RecordingSurface
	size     graphics.Size
	build    BuildFunc
	handler  MessageHandler
	messages []any
	t        testing.TB
}

// testApp adapts a tester to engine.Application.
type testApp struct {
	tester *WidgetTester
}

func (a testApp) Build(ctx *engine.WidgetContext[any]) tree.ID {
	return a.tester.build(ctx)
}

func (a testApp) HandleMessage(msg any, ctx *engine.WidgetContext[any]) {
	a.tester.messages = append(a.tester.messages, msg)
	if a.tester.handler != nil {
		a.tester.handler(msg, ctx)
	}
}

// NewWidgetTester creates a tester with a default-sized surface.
func NewWidgetTester() *WidgetTester {
	return &WidgetTester{
		size: graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
	}
}

// NewWidgetTesterWithT creates a tester whose frame errors fail t and that
// closes its window via t.Cleanup(). This is the recommended constructor for
// tests.
func NewWidgetTesterWithT(t testing.TB) *WidgetTester {
	tester := NewWidgetTester()
	tester.t = t
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup closes the tested window, tearing down its tree.
func (t *WidgetTester) Cleanup() {
	if t.window != nil && !t.window.Closed() {
		t.app.HandleEvent(engine.Close(t.window.ID()))
	}
}

// SetSize sets the logical surface size. After Mount it resizes the window
// and schedules a relayout.
func (t *WidgetTester) SetSize(size graphics.Size) {
	t.size = size
	if t.window != nil {
		t.app.HandleEvent(engine.Resize(t.window.ID(), size))
	}
}

// OnMessage installs a handler for click messages, called after the message
// is recorded.
func (t *WidgetTester) OnMessage(handler MessageHandler) {
	t.handler = handler
}

// Mount builds a fresh tree with build and runs one full frame.
func (t *WidgetTester) Mount(build BuildFunc) error {
	t.Cleanup()
	t.build = build
	t.messages = nil
	t.surface = NewRecordingSurface()
	t.app = engine.New[any](testApp{tester: t})
	t.window = t.app.CreateWindow("test", t.size, t.surface)
	return t.Pump()
}

// Pump runs a single frame: layout, message drain, paint.
func (t *WidgetTester) Pump() error {
	if t.app == nil {
		return nil
	}
	err := t.app.Frame()
	if err != nil && t.t != nil {
		t.t.Errorf("frame failed: %v", err)
	}
	return err
}

// App returns the underlying application.
func (t *WidgetTester) App() *engine.App[any] {
	return t.app
}

// Window returns the tested window.
func (t *WidgetTester) Window() *engine.Window[any] {
	return t.window
}

// Tree returns the widget arena.
func (t *WidgetTester) Tree() *layout.Tree {
	if t.app == nil {
		return nil
	}
	return t.app.Tree()
}

// Root returns the root widget.
func (t *WidgetTester) Root() tree.ID {
	if t.window == nil {
		return tree.ID{}
	}
	return t.window.Root()
}

// Context returns a widget context for the tested window, for sending
// messages or mutating the tree between frames.
func (t *WidgetTester) Context() *engine.WidgetContext[any] {
	return engine.NewWidgetContext(t.app, t.window)
}

// Size returns the size recorded for id by the last layout.
func (t *WidgetTester) Size(id tree.ID) graphics.Size {
	size, _ := t.Tree().Size(id)
	return size
}

// Position returns id's position relative to its parent.
func (t *WidgetTester) Position(id tree.ID) graphics.Offset {
	return t.Tree().Position(id)
}

// Geometry returns id's absolute geometry in window coordinates.
func (t *WidgetTester) Geometry(id tree.ID) graphics.Geometry {
	g, _ := layout.AbsoluteGeometry(t.Tree(), t.Root(), id)
	return g
}

// Messages returns every click message handled so far, in order.
func (t *WidgetTester) Messages() []any {
	return t.messages
}

// DisplayOps returns the canvas operations of the last paint.
func (t *WidgetTester) DisplayOps() []DisplayOp {
	if t.surface == nil {
		return nil
	}
	return t.surface.DisplayOps()
}

// Surface returns the recording surface.
func (t *WidgetTester) Surface() *RecordingSurface {
	return t.surface
}

// Find evaluates a finder against the current tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.app == nil || t.Root().IsZero() {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		ids:    finder.Evaluate(t.Tree(), t.Root()),
		finder: finder,
	}
}
