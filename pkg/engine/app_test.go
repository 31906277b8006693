package engine_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	arbortest "github.com/go-drift/arbor/pkg/testing"
	"github.com/go-drift/arbor/pkg/tree"
	"github.com/go-drift/arbor/pkg/widgets"
)

var viewport = graphics.Size{Width: 400, Height: 300}

// greeter shows a label above a button; clicking the button renames the
// label.
type greeter struct {
	label    tree.ID
	button   tree.ID
	handled  []string
	contexts []*engine.WidgetContext[string]
}

func (g *greeter) Build(ctx *engine.WidgetContext[string]) tree.ID {
	g.label = ctx.CreateWidget(widgets.NewLabel("hi"))
	g.button = ctx.CreateWidget(widgets.NewButton(ctx.CreateWidget, "Greet"))
	ctx.AddClickListener(g.button, func() string { return "greet" })
	return ctx.CreateWidget(widgets.Column(widgets.FlexAlignTop,
		widgets.NonFlex(g.label),
		widgets.NonFlex(g.button),
	))
}

func (g *greeter) HandleMessage(msg string, ctx *engine.WidgetContext[string]) {
	g.handled = append(g.handled, msg)
	g.contexts = append(g.contexts, ctx)
	ctx.SendMessage(g.label, widgets.LabelSetText{Text: "hello there"})
}

// buttonCenter is inside the button laid out below the 32px label.
var buttonCenter = graphics.Offset{X: 200, Y: 58}

func newGreeter(t *testing.T, opts ...engine.Option) (*engine.App[string], *greeter, *engine.Window[string], *arbortest.RecordingSurface) {
	t.Helper()
	g := &greeter{}
	app := engine.New[string](g, opts...)
	surface := arbortest.NewRecordingSurface()
	w := app.CreateWindow("greeter", viewport, surface)
	if err := app.Frame(); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	return app, g, w, surface
}

func click(t *testing.T, app *engine.App[string], w engine.WindowID, at graphics.Offset) {
	t.Helper()
	for _, ev := range []engine.Event{engine.PointerMove(w, at), engine.PointerDown(w), engine.PointerUp(w)} {
		if err := app.HandleEvent(ev); err != nil {
			t.Fatalf("HandleEvent(%s): %v", ev.Kind, err)
		}
	}
}

func paintedText(surface *arbortest.RecordingSurface) []string {
	var out []string
	for _, op := range surface.DisplayOps() {
		if op.Op == "drawText" {
			out = append(out, op.Params["text"].(string))
		}
	}
	return out
}

func TestApp_FirstFrameLaysOutAndPaints(t *testing.T) {
	app, g, w, surface := newGreeter(t)

	if surface.Frames() != 1 {
		t.Errorf("presented %d frames, want 1", surface.Frames())
	}
	size, ok := app.Tree().Size(w.Root())
	if !ok || size.Width != viewport.Width {
		t.Errorf("root size = %v, want full viewport width", size)
	}
	if got := paintedText(surface); len(got) != 2 || got[0] != "hi" || got[1] != "Greet" {
		t.Errorf("painted text = %v, want [hi Greet]", got)
	}
	sample := app.LastFrame()
	if sample.Counts.LaidOutWindows != 1 || sample.Counts.PaintedWindows != 1 {
		t.Errorf("counts = %+v, want one window laid out and painted", sample.Counts)
	}
	if sample.Counts.TaggedRegions != 1 {
		t.Errorf("tagged regions = %d, want 1 (the button)", sample.Counts.TaggedRegions)
	}
	if len(g.handled) != 0 {
		t.Errorf("messages handled before any input: %v", g.handled)
	}
}

func TestApp_MessagesRelayoutBeforePaint(t *testing.T) {
	app, g, w, surface := newGreeter(t)

	click(t, app, w.ID(), buttonCenter)
	if len(g.handled) != 0 {
		t.Fatal("messages must wait for the next frame")
	}
	if err := app.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	if len(g.handled) != 1 || g.handled[0] != "greet" {
		t.Fatalf("handled = %v, want [greet]", g.handled)
	}
	if g.contexts[0].Window() != w {
		t.Error("message handled with another window's context")
	}
	// The relabel made by the handler is painted in the same frame.
	if got := paintedText(surface); got[0] != "hello there" {
		t.Errorf("painted label = %q, want %q", got[0], "hello there")
	}
	labelSize, _ := app.Tree().Size(g.label)
	if labelSize.Width != 77 {
		t.Errorf("label width = %v, want 77 (11 glyphs of 7px)", labelSize.Width)
	}
	if app.LastFrame().Counts.Messages != 1 {
		t.Errorf("frame counted %d messages, want 1", app.LastFrame().Counts.Messages)
	}
}

func TestApp_CleanFrameDoesNothing(t *testing.T) {
	app, _, _, surface := newGreeter(t)
	if err := app.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if surface.Frames() != 1 {
		t.Errorf("clean frame repainted: %d frames", surface.Frames())
	}
	counts := app.LastFrame().Counts
	if counts.LaidOutWindows != 0 || counts.LayoutSteps != 0 {
		t.Errorf("clean frame did layout work: %+v", counts)
	}
}

func TestApp_ResizeRelaysOut(t *testing.T) {
	app, _, w, _ := newGreeter(t)
	if err := app.HandleEvent(engine.Resize(w.ID(), graphics.Size{Width: 200, Height: 100})); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if err := app.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	size, _ := app.Tree().Size(w.Root())
	if size.Width != 200 {
		t.Errorf("root width = %v, want 200", size.Width)
	}
}

func TestApp_HandleEventErrors(t *testing.T) {
	app, _, w, _ := newGreeter(t)

	err := app.HandleEvent(engine.PointerDown(42))
	var aerr *errors.ArborError
	if !errors.As(err, &aerr) || aerr.Kind != errors.KindDispatch {
		t.Fatalf("unknown window error = %v, want a dispatch ArborError", err)
	}

	if err := app.HandleEvent(engine.Close(w.ID())); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := app.HandleEvent(engine.PointerUp(w.ID())); err == nil {
		t.Error("events for a closed window should fail")
	}
}

func TestApp_CloseTearsDownTree(t *testing.T) {
	app, _, w, _ := newGreeter(t)
	if app.Tree().Len() == 0 {
		t.Fatal("tree should hold the window's widgets")
	}
	if err := app.HandleEvent(engine.Close(w.ID())); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := app.Tree().Len(); n != 0 {
		t.Errorf("tree holds %d widgets after close, want 0", n)
	}
	if app.Open() {
		t.Error("Open() = true with every window closed")
	}
	if !w.Root().IsZero() {
		t.Error("closed window should forget its root")
	}
}

func TestApp_WindowsDispatchIndependently(t *testing.T) {
	g := &greeter{}
	app := engine.New[string](g)
	first := app.CreateWindow("one", viewport, arbortest.NewRecordingSurface())
	firstLabel := g.label
	second := app.CreateWindow("two", viewport, arbortest.NewRecordingSurface())
	if err := app.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}

	click(t, app, second.ID(), buttonCenter)
	if err := app.Frame(); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(g.contexts) != 1 || g.contexts[0].Window() != second {
		t.Fatalf("message contexts = %v, want one for the second window", g.contexts)
	}
	if first.Dispatcher().Hovered() != (tree.ID{}) {
		t.Error("pointer input to one window hovered a widget in another")
	}
	label := app.Tree().MustGet("test", firstLabel).(*widgets.Label)
	if label.Text != "hi" {
		t.Errorf("first window label = %q, want untouched", label.Text)
	}
}

func TestApp_RunScript(t *testing.T) {
	g := &greeter{}
	app := engine.New[string](g)
	surface := arbortest.NewRecordingSurface()
	w := app.CreateWindow("greeter", viewport, surface)

	script := engine.NewScript(
		[]engine.Event{engine.PointerMove(w.ID(), buttonCenter)},
		[]engine.Event{engine.PointerDown(w.ID()), engine.PointerUp(w.ID())},
		[]engine.Event{engine.Close(w.ID())},
		[]engine.Event{engine.PointerMove(w.ID(), graphics.Offset{})},
	)
	if err := app.Run(context.Background(), script); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(g.handled) != 1 {
		t.Errorf("handled = %v, want one greet", g.handled)
	}
	if app.Open() {
		t.Error("window should be closed")
	}
}

func TestApp_RunStopsAtEOF(t *testing.T) {
	app, _, _, _ := newGreeter(t)
	if err := app.Run(context.Background(), engine.NewScript()); err != nil {
		t.Errorf("Run on an exhausted source = %v, want nil", err)
	}
}

func TestApp_RunHonorsCancellation(t *testing.T) {
	app, _, _, _ := newGreeter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx, engine.NewScript()); !errors.Is(err, context.Canceled) {
		t.Errorf("Run with a cancelled context = %v, want context.Canceled", err)
	}
}

type explosive struct {
	layout.Base
}

func (explosive) Layout(*layout.Context, graphics.Constraints, *graphics.Size) layout.Result {
	panic("boom")
}

type explosiveApp struct{}

func (explosiveApp) Build(ctx *engine.WidgetContext[string]) tree.ID {
	return ctx.CreateWidget(explosive{})
}

func (explosiveApp) HandleMessage(string, *engine.WidgetContext[string]) {}

type panicRecorder struct {
	panics []*errors.PanicError
	errs   []*errors.ArborError
}

func (r *panicRecorder) HandleError(err *errors.ArborError) { r.errs = append(r.errs, err) }
func (r *panicRecorder) HandlePanic(err *errors.PanicError) { r.panics = append(r.panics, err) }

func TestApp_RunRecoversPanics(t *testing.T) {
	rec := &panicRecorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	app := engine.New[string](explosiveApp{})
	app.CreateWindow("boom", viewport, arbortest.NewRecordingSurface())
	err := app.Run(context.Background(), engine.NewScript())

	var perr *errors.PanicError
	if !errors.As(err, &perr) {
		t.Fatalf("Run = %v, want a PanicError", err)
	}
	if perr.Value != "boom" || perr.StackTrace == "" {
		t.Errorf("panic error = %+v", perr)
	}
	if len(rec.panics) != 1 {
		t.Errorf("handler saw %d panics, want 1", len(rec.panics))
	}
}

func TestApp_RunReportsEventErrors(t *testing.T) {
	rec := &panicRecorder{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	app, _, _, _ := newGreeter(t)
	script := engine.NewScript([]engine.Event{engine.PointerDown(7)})
	if err := app.Run(context.Background(), script); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rec.errs) != 1 || rec.errs[0].Kind != errors.KindDispatch {
		t.Errorf("reported errors = %v, want one dispatch error", rec.errs)
	}
}

// failingSurface presents nothing.
type failingSurface struct {
	*arbortest.RecordingSurface
}

func (failingSurface) Present() error { return fmt.Errorf("display lost") }

func TestApp_PresentErrorIsRenderError(t *testing.T) {
	app := engine.New[string](&greeter{})
	app.CreateWindow("broken", viewport, failingSurface{arbortest.NewRecordingSurface()})

	err := app.Frame()
	var aerr *errors.ArborError
	if !errors.As(err, &aerr) || aerr.Kind != errors.KindRender {
		t.Fatalf("Frame = %v, want a render ArborError", err)
	}
}

func TestApp_FrameTrace(t *testing.T) {
	buf := engine.NewFrameTraceBuffer(2, time.Hour)
	app, _, _, _ := newGreeter(t, engine.WithFrameTrace(buf))
	for i := 0; i < 2; i++ {
		if err := app.Frame(); err != nil {
			t.Fatalf("Frame: %v", err)
		}
	}

	timeline := buf.Snapshot()
	if len(timeline.Samples) != 2 {
		t.Fatalf("samples = %d, want capacity 2", len(timeline.Samples))
	}
	if timeline.Samples[0].Frame != 2 || timeline.Samples[1].Frame != 3 {
		t.Errorf("frames = %d, %d, want the two most recent (2, 3)",
			timeline.Samples[0].Frame, timeline.Samples[1].Frame)
	}
	if timeline.OverBudget != 0 {
		t.Errorf("over budget = %d under a one hour budget", timeline.OverBudget)
	}

	sum := buf.Summary()
	if sum.Frames != 2 {
		t.Errorf("summary frames = %d, want 2", sum.Frames)
	}
	if sum.Slowest.Frame != 2 && sum.Slowest.Frame != 3 {
		t.Errorf("slowest frame = %d, want one of the retained frames", sum.Slowest.Frame)
	}
}

func TestFrameTraceBuffer_OverBudget(t *testing.T) {
	buf := engine.NewFrameTraceBuffer(0, time.Millisecond)
	if buf.Capacity() != engine.DefaultTraceCapacity {
		t.Errorf("capacity = %d, want default %d", buf.Capacity(), engine.DefaultTraceCapacity)
	}
	buf.Add(engine.FrameSample{Frame: 1, FrameMs: 0.5, Counts: engine.FrameCounts{Messages: 1}}, 500*time.Microsecond)
	buf.Add(engine.FrameSample{Frame: 2, FrameMs: 4, Counts: engine.FrameCounts{Messages: 2}}, 4*time.Millisecond)

	timeline := buf.Snapshot()
	if timeline.OverBudget != 1 || timeline.BudgetMs != 1 {
		t.Errorf("timeline = %+v, want one frame over a 1ms budget", timeline)
	}
	sum := buf.Summary()
	if sum.Slowest.Frame != 2 || sum.MeanMs != 2.25 || sum.Messages != 3 {
		t.Errorf("summary = %+v", sum)
	}

	if empty := engine.NewFrameTraceBuffer(4, 0).Summary(); empty.Frames != 0 || empty.MeanMs != 0 {
		t.Errorf("empty summary = %+v", empty)
	}
}
