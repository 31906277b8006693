// Package engine runs arbor applications: it owns the widget arena and the
// windows, feeds window-system events to the interaction dispatcher and
// drives the frame loop.
//
// A frame runs these phases, in order, over every open window:
//
//  1. layout of windows marked dirty, from the root, with the viewport as
//     the root's loose constraint
//  2. message drain: every click message queued since the last frame is
//     handed to the application's HandleMessage, in emission order
//  3. relayout of windows the messages dirtied
//  4. paint of dirty windows, collecting interaction tags for hit testing
//
// Everything runs on the caller's goroutine; no phase blocks.
package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/interaction"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// Application is implemented by user programs. M is the type of messages
// produced by click listeners.
type Application[M any] interface {
	// Build creates the widgets of a new window and returns its root.
	Build(ctx *WidgetContext[M]) tree.ID
	// HandleMessage reacts to one queued message. It may create widgets,
	// remove subtrees and send messages to existing widgets.
	HandleMessage(msg M, ctx *WidgetContext[M])
}

// Option configures an [App].
type Option func(*options)

type options struct {
	measurer layout.TextMeasurer
	trace    *FrameTraceBuffer
}

// WithTextMeasurer selects the font backend used by layout.
func WithTextMeasurer(m layout.TextMeasurer) Option {
	return func(o *options) { o.measurer = m }
}

// WithFrameTrace records a sample per frame into buf.
func WithFrameTrace(buf *FrameTraceBuffer) Option {
	return func(o *options) { o.trace = buf }
}

// App owns the widget arena, the layout engine and the windows of one
// application.
type App[M any] struct {
	application Application[M]
	tree        *layout.Tree
	engine      *layout.Engine
	windows     []*Window[M]
	nextWindow  WindowID
	frame       uint64
	trace       *FrameTraceBuffer
	last        FrameSample
}

// New returns an app with no windows.
func New[M any](application Application[M], opts ...Option) *App[M] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	t := layout.NewTree()
	return &App[M]{
		application: application,
		tree:        t,
		engine:      layout.NewEngine(t, o.measurer),
		trace:       o.trace,
	}
}

// Tree returns the widget arena.
func (a *App[M]) Tree() *layout.Tree {
	return a.tree
}

// Engine returns the layout engine.
func (a *App[M]) Engine() *layout.Engine {
	return a.engine
}

// Windows returns every window created so far, open or closed.
func (a *App[M]) Windows() []*Window[M] {
	return a.windows
}

// Window returns the window with the given id.
func (a *App[M]) Window(id WindowID) (*Window[M], bool) {
	for _, w := range a.windows {
		if w.id == id {
			return w, true
		}
	}
	return nil, false
}

// LastFrame returns the sample of the most recent frame.
func (a *App[M]) LastFrame() FrameSample {
	return a.last
}

// CreateWindow opens a window, builds its widgets through the application
// and schedules its first layout and paint.
func (a *App[M]) CreateWindow(title string, size graphics.Size, surface Surface) *Window[M] {
	w := &Window[M]{
		id:         a.nextWindow,
		title:      title,
		size:       size,
		surface:    surface,
		pipeline:   layout.NewPipelineOwner(),
		dispatcher: interaction.NewDispatcher[M](a.tree),
	}
	a.nextWindow++
	a.windows = append(a.windows, w)
	w.root = a.application.Build(a.contextFor(w))
	return w
}

// Open reports whether any window is still open.
func (a *App[M]) Open() bool {
	for _, w := range a.windows {
		if !w.closed {
			return true
		}
	}
	return false
}

// HandleEvent applies one window-system notification. Pointer moves are hit
// tested against the window's last paint.
func (a *App[M]) HandleEvent(ev Event) error {
	w, ok := a.Window(ev.Window)
	if !ok || w.closed {
		return &errors.ArborError{
			Op:        "engine.App.HandleEvent",
			Kind:      errors.KindDispatch,
			Err:       fmt.Errorf("%s event for unknown window %d", ev.Kind, ev.Window),
			Timestamp: time.Now(),
		}
	}

	switch ev.Kind {
	case EventResize:
		if ev.Size != w.size {
			w.size = ev.Size
			w.MarkNeedsLayout()
		}
	case EventPointerMove:
		w.pointer = ev.Position
		tag, hit := w.surface.HitTest(ev.Position)
		if w.dispatcher.PointerMoved(tag, hit) {
			w.MarkNeedsPaint()
		}
	case EventPointerDown:
		if w.dispatcher.PointerPressed() {
			w.MarkNeedsPaint()
		}
	case EventPointerUp:
		if w.dispatcher.PointerReleased() {
			w.MarkNeedsPaint()
		}
	case EventClose:
		a.closeWindow(w)
	default:
		return &errors.ArborError{
			Op:        "engine.App.HandleEvent",
			Kind:      errors.KindDispatch,
			Err:       fmt.Errorf("unknown event kind %s", ev.Kind),
			Timestamp: time.Now(),
		}
	}
	return nil
}

// Frame runs one frame over every open window. It returns the first error a
// surface reported while presenting; remaining windows are still painted.
func (a *App[M]) Frame() error {
	start := time.Now()
	a.frame++
	sample := FrameSample{Frame: a.frame, Timestamp: start.UnixMilli()}
	before := a.engine.Stats()

	phase := time.Now()
	a.layoutDirty(&sample)
	sample.Phases.LayoutMs = durationToMillis(time.Since(phase))

	phase = time.Now()
	for _, w := range a.windows {
		if w.closed {
			continue
		}
		msgs := w.dispatcher.Drain()
		sample.Counts.Messages += len(msgs)
		ctx := a.contextFor(w)
		for _, msg := range msgs {
			a.application.HandleMessage(msg, ctx)
		}
	}
	a.layoutDirty(&sample)
	sample.Phases.DispatchMs = durationToMillis(time.Since(phase))

	phase = time.Now()
	var firstErr error
	for _, w := range a.windows {
		if w.closed {
			continue
		}
		if err := a.paint(w, &sample); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	sample.Phases.PaintMs = durationToMillis(time.Since(phase))

	after := a.engine.Stats()
	sample.Counts.LayoutSteps = after.Steps - before.Steps
	sample.Counts.ChildRequests = after.ChildRequests - before.ChildRequests
	sample.Counts.WidgetCount = a.tree.Len()
	elapsed := time.Since(start)
	sample.FrameMs = durationToMillis(elapsed)
	a.last = sample
	if a.trace != nil {
		a.trace.Add(sample, elapsed)
	}
	return firstErr
}

// Run polls source and runs a frame after each batch of events, until every
// window is closed, the source is exhausted or ctx is cancelled. A panic
// raised by a widget or the application is reported through the error
// handler and returned as an error.
func (a *App[M]) Run(ctx context.Context, source EventSource) (err error) {
	defer errors.RecoverInto("engine.App.Run", &err)

	if err := a.Frame(); err != nil {
		return err
	}
	for a.Open() {
		if err := ctx.Err(); err != nil {
			return err
		}
		events, err := source.Poll(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, ev := range events {
			if err := a.HandleEvent(ev); err != nil {
				var aerr *errors.ArborError
				if errors.As(err, &aerr) {
					errors.Report(aerr)
				}
			}
		}
		if err := a.Frame(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App[M]) layoutDirty(sample *FrameSample) {
	for _, w := range a.windows {
		if w.closed {
			continue
		}
		if w.pipeline.FlushLayoutForRoot(a.engine, w.root, w.rootConstraints()) {
			sample.Counts.LaidOutWindows++
		}
	}
}

func (a *App[M]) paint(w *Window[M], sample *FrameSample) error {
	var err error
	w.pipeline.FlushPaint(func() {
		canvas := w.surface.Begin(w.size)
		canvas.Clear(graphics.ColorBackground)
		pc := layout.NewPaintContext(a.tree, canvas)
		pc.PaintTree(w.root)
		w.dispatcher.SetTags(pc.Tags())
		sample.Counts.TaggedRegions += len(pc.Tags())
		sample.Counts.PaintedWindows++
		if perr := w.surface.Present(); perr != nil {
			err = &errors.ArborError{
				Op:        "engine.App.Frame",
				Kind:      errors.KindRender,
				Err:       fmt.Errorf("present window %d: %w", w.id, perr),
				Timestamp: time.Now(),
			}
		}
	})
	return err
}

func (a *App[M]) closeWindow(w *Window[M]) {
	w.closed = true
	if !w.root.IsZero() {
		a.removeSubtree(w.root)
		w.root = tree.ID{}
	}
}

func (a *App[M]) removeSubtree(id tree.ID) {
	removed := a.tree.RemoveSubtree(id)
	for _, w := range a.windows {
		w.dispatcher.Forget(removed)
	}
}

func (a *App[M]) contextFor(w *Window[M]) *WidgetContext[M] {
	return NewWidgetContext(a, w)
}
