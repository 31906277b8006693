package interaction

import (
	"slices"
	"testing"

	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

type event struct {
	widget string
	got    layout.Interaction
}

// recorder appends every interaction it receives to a shared log.
type recorder struct {
	layout.Base
	name string
	log  *[]event
}

func (r *recorder) Layout(_ *layout.Context, c graphics.Constraints, _ *graphics.Size) layout.Result {
	return layout.SizeResult(c.Min)
}

func (r *recorder) HandleInteraction(i layout.Interaction) {
	*r.log = append(*r.log, event{widget: r.name, got: i})
}

type fixture struct {
	tree *layout.Tree
	d    *Dispatcher[string]
	log  []event
	ids  map[string]tree.ID
}

func newFixture(names ...string) *fixture {
	f := &fixture{tree: layout.NewTree(), ids: make(map[string]tree.ID)}
	f.d = NewDispatcher[string](f.tree)
	tags := make(map[layout.Tag]tree.ID)
	for i, name := range names {
		id := f.tree.Create(&recorder{name: name, log: &f.log})
		f.ids[name] = id
		tags[layout.Tag(i)] = id
	}
	f.d.SetTags(tags)
	return f
}

func (f *fixture) take() []event {
	out := f.log
	f.log = nil
	return out
}

func TestDispatcher_HoverSequence(t *testing.T) {
	f := newFixture("x", "y")

	if !f.d.PointerMoved(0, true) {
		t.Fatal("entering x should change hover")
	}
	if got, want := f.take(), []event{{"x", layout.Hovered(true)}}; !slices.Equal(got, want) {
		t.Errorf("enter: got %v, want %v", got, want)
	}

	// Moving within the same tag changes nothing.
	if f.d.PointerMoved(0, true) {
		t.Error("staying on x should not change hover")
	}
	if got := f.take(); len(got) != 0 {
		t.Errorf("stay: got %v, want nothing", got)
	}

	f.d.PointerMoved(1, true)
	want := []event{{"x", layout.Hovered(false)}, {"y", layout.Hovered(true)}}
	if got := f.take(); !slices.Equal(got, want) {
		t.Errorf("move: got %v, want %v", got, want)
	}

	f.d.PointerMoved(0, false)
	if got, want := f.take(), []event{{"y", layout.Hovered(false)}}; !slices.Equal(got, want) {
		t.Errorf("leave: got %v, want %v", got, want)
	}

	f.d.PointerMoved(0, false)
	if got := f.take(); len(got) != 0 {
		t.Errorf("outside: got %v, want nothing", got)
	}
	if !f.d.Hovered().IsZero() {
		t.Errorf("hovered = %v, want none", f.d.Hovered())
	}
}

func TestDispatcher_UnknownTagClearsHover(t *testing.T) {
	f := newFixture("x")
	f.d.PointerMoved(0, true)
	f.take()
	f.d.PointerMoved(99, true)
	if got, want := f.take(), []event{{"x", layout.Hovered(false)}}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDispatcher_PressLatchesHover(t *testing.T) {
	f := newFixture("x", "y")
	f.d.PointerMoved(0, true)
	f.take()

	if !f.d.PointerPressed() {
		t.Fatal("press over x should be delivered")
	}
	if got, want := f.take(), []event{{"x", layout.MouseDown()}}; !slices.Equal(got, want) {
		t.Errorf("press: got %v, want %v", got, want)
	}

	// Dragging onto y while held does not move hover.
	if f.d.PointerMoved(1, true) {
		t.Error("hover should be latched while pressed")
	}
	if got := f.take(); len(got) != 0 {
		t.Errorf("drag: got %v, want nothing", got)
	}

	f.d.PointerReleased()
	if got, want := f.take(), []event{{"x", layout.MouseUp()}}; !slices.Equal(got, want) {
		t.Errorf("release: got %v, want %v", got, want)
	}
	if f.d.Hovered() != f.ids["x"] {
		t.Error("release should not re-target hover")
	}

	f.d.PointerMoved(1, true)
	want := []event{{"x", layout.Hovered(false)}, {"y", layout.Hovered(true)}}
	if got := f.take(); !slices.Equal(got, want) {
		t.Errorf("move after release: got %v, want %v", got, want)
	}
}

func TestDispatcher_PressWithoutHover(t *testing.T) {
	f := newFixture("x")
	if f.d.PointerPressed() {
		t.Error("press over nothing should not be delivered")
	}
	if f.d.PointerReleased() {
		t.Error("release without press should not be delivered")
	}
	if got := f.take(); len(got) != 0 {
		t.Errorf("got %v, want nothing", got)
	}
}

func TestDispatcher_ClickListeners(t *testing.T) {
	f := newFixture("x", "y")
	f.d.Listen(f.ids["x"], func() string { return "clicked x" })

	for i := 0; i < 2; i++ {
		f.d.PointerMoved(0, true)
		f.d.PointerPressed()
		f.d.PointerReleased()
	}
	f.d.PointerMoved(1, true)
	f.d.PointerPressed()
	f.d.PointerReleased()

	if got, want := f.d.Drain(), []string{"clicked x", "clicked x"}; !slices.Equal(got, want) {
		t.Errorf("Drain() = %v, want %v", got, want)
	}
	if got := f.d.Drain(); len(got) != 0 {
		t.Errorf("second Drain() = %v, want empty", got)
	}

	f.d.Unlisten(f.ids["x"])
	f.d.PointerMoved(0, true)
	f.d.PointerPressed()
	f.d.PointerReleased()
	if f.d.Pending() != 0 {
		t.Errorf("Pending() = %d after Unlisten", f.d.Pending())
	}
}

func TestDispatcher_DrainPreservesOrder(t *testing.T) {
	f := newFixture("a", "b")
	f.d.Listen(f.ids["a"], func() string { return "a" })
	f.d.Listen(f.ids["b"], func() string { return "b" })
	f.d.Enqueue("first")
	for _, tag := range []layout.Tag{1, 0, 1} {
		f.d.PointerMoved(tag, true)
		f.d.PointerPressed()
		f.d.PointerReleased()
	}
	if got, want := f.d.Drain(), []string{"first", "b", "a", "b"}; !slices.Equal(got, want) {
		t.Errorf("Drain() = %v, want %v", got, want)
	}
}

func TestDispatcher_ForgetRemovedWidgets(t *testing.T) {
	f := newFixture("x")
	x := f.ids["x"]
	f.d.Listen(x, func() string { return "x" })
	f.d.PointerMoved(0, true)
	f.d.PointerPressed()
	f.take()
	f.d.Drain()

	removed := f.tree.RemoveSubtree(x)
	f.d.Forget(removed)

	if !f.d.Hovered().IsZero() || !f.d.Clicked().IsZero() {
		t.Error("forgotten widget should be neither hovered nor clicked")
	}
	if f.d.PointerReleased() {
		t.Error("release after forget should find no latch")
	}
	if f.d.PointerMoved(0, true) {
		t.Error("tag of a forgotten widget should no longer resolve")
	}
	if got := f.take(); len(got) != 0 {
		t.Errorf("got %v, want nothing", got)
	}
}

func TestDispatcher_DeliveryToDeadWidgetIsSkipped(t *testing.T) {
	f := newFixture("x", "y")
	f.d.PointerMoved(0, true)
	f.take()
	f.tree.RemoveSubtree(f.ids["x"])

	// The tag map is stale until the next paint; hover still moves to y.
	f.d.PointerMoved(1, true)
	if got, want := f.take(), []event{{"y", layout.Hovered(true)}}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
