package layout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/tree"
)

type leaf struct {
	Base
	size     graphics.Size
	rendered []graphics.Geometry
	tag      bool
}

func (l *leaf) Layout(_ *Context, c graphics.Constraints, _ *graphics.Size) Result {
	return SizeResult(c.Constrain(l.size))
}

func (l *leaf) Render(g graphics.Geometry, pc *PaintContext) (Tag, bool) {
	l.rendered = append(l.rendered, g)
	if l.tag {
		return pc.NextTag(), true
	}
	return 0, false
}

// column stacks its children vertically with loose constraints.
type column struct {
	Base
	kids     []tree.ID
	next     int
	y        float64
	width    float64
	rendered []graphics.Geometry
}

func (c *column) Children() []tree.ID { return c.kids }

func (c *column) Layout(ctx *Context, cons graphics.Constraints, child *graphics.Size) Result {
	if child == nil {
		c.next, c.y, c.width = 0, 0, 0
	} else {
		ctx.SetPosition(c.kids[c.next], graphics.Offset{Y: c.y})
		c.y += child.Height
		c.width = max(c.width, child.Width)
		c.next++
	}
	if c.next < len(c.kids) {
		return RequestChild(c.kids[c.next], cons.Loosen())
	}
	return SizeResult(cons.Constrain(graphics.Size{Width: c.width, Height: c.y}))
}

func (c *column) Render(g graphics.Geometry, _ *PaintContext) (Tag, bool) {
	c.rendered = append(c.rendered, g)
	return 0, false
}

// stepFunc adapts a closure into a widget for one-off protocol checks.
type stepFunc struct {
	Base
	kids []tree.ID
	fn   func(ctx *Context, c graphics.Constraints, child *graphics.Size) Result
}

func (s *stepFunc) Children() []tree.ID { return s.kids }

func (s *stepFunc) Layout(ctx *Context, c graphics.Constraints, child *graphics.Size) Result {
	return s.fn(ctx, c, child)
}

func expectContractPanic(t *testing.T, fn func()) *errors.ContractError {
	t.Helper()
	var got *errors.ContractError
	func() {
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic")
			}
			err, ok := r.(*errors.ContractError)
			if !ok {
				t.Fatalf("expected *errors.ContractError, got %T: %v", r, r)
			}
			got = err
		}()
		fn()
	}()
	return got
}

func TestEngine_MeasuresRequestedChildren(t *testing.T) {
	tr := NewTree()
	a := tr.Create(&leaf{size: graphics.Size{Width: 10, Height: 20}})
	b := tr.Create(&leaf{size: graphics.Size{Width: 30, Height: 5}})
	root := tr.Create(&column{kids: []tree.ID{a, b}})

	e := NewEngine(tr, nil)
	size := e.Layout(root, graphics.Loose(graphics.Size{Width: 100, Height: 100}))

	if want := (graphics.Size{Width: 30, Height: 25}); size != want {
		t.Errorf("root size = %v, want %v", size, want)
	}
	if got, _ := tr.Size(a); got != (graphics.Size{Width: 10, Height: 20}) {
		t.Errorf("a size = %v", got)
	}
	if got := tr.Position(b); got != (graphics.Offset{Y: 20}) {
		t.Errorf("b position = %v, want (0, 20)", got)
	}
	if got := tr.Position(root); got != (graphics.Offset{}) {
		t.Errorf("root position = %v, want origin", got)
	}

	stats := e.Stats()
	if stats.Passes != 1 || stats.ChildRequests != 2 || stats.Steps != 5 {
		t.Errorf("stats = %+v, want 1 pass, 2 requests, 5 steps", stats)
	}
}

func TestEngine_RelayoutRestartsFromStart(t *testing.T) {
	tr := NewTree()
	a := tr.Create(&leaf{size: graphics.Size{Width: 10, Height: 10}})
	col := &column{kids: []tree.ID{a}}
	root := tr.Create(col)
	e := NewEngine(tr, nil)

	c := graphics.Loose(graphics.Size{Width: 50, Height: 50})
	first := e.Layout(root, c)
	second := e.Layout(root, c)
	if first != second {
		t.Errorf("relayout changed size: %v then %v", first, second)
	}
}

func TestEngine_SizesHonorConstraints(t *testing.T) {
	tr := NewTree()
	big := tr.Create(&leaf{size: graphics.Size{Width: 500, Height: 500}})
	root := tr.Create(&stepFunc{
		kids: []tree.ID{big},
		fn: func(_ *Context, c graphics.Constraints, child *graphics.Size) Result {
			if child == nil {
				return RequestChild(big, graphics.Tight(graphics.Size{Width: 40, Height: 40}))
			}
			// Deliberately oversized; the engine clamps it.
			return SizeResult(graphics.Size{Width: 1000, Height: 1})
		},
	})

	c := graphics.Constraints{Min: graphics.Size{Height: 10}, Max: graphics.Size{Width: 200, Height: 200}}
	size := NewEngine(tr, nil).Layout(root, c)
	if want := (graphics.Size{Width: 200, Height: 10}); size != want {
		t.Errorf("root size = %v, want %v", size, want)
	}
	if got, _ := tr.Size(big); got != (graphics.Size{Width: 40, Height: 40}) {
		t.Errorf("child size = %v, want tight 40x40", got)
	}
}

func TestEngine_RequestWithoutChildrenPanics(t *testing.T) {
	tr := NewTree()
	other := tr.Create(&leaf{})
	root := tr.Create(&stepFunc{
		fn: func(*Context, graphics.Constraints, *graphics.Size) Result {
			return RequestChild(other, graphics.Unbounded())
		},
	})
	err := expectContractPanic(t, func() {
		NewEngine(tr, nil).Layout(root, graphics.Unbounded())
	})
	if !strings.Contains(err.Reason, "no children") {
		t.Errorf("reason = %q", err.Reason)
	}
}

func TestEngine_RequestForeignChildPanics(t *testing.T) {
	tr := NewTree()
	mine := tr.Create(&leaf{})
	other := tr.Create(&leaf{})
	root := tr.Create(&stepFunc{
		kids: []tree.ID{mine},
		fn: func(*Context, graphics.Constraints, *graphics.Size) Result {
			return RequestChild(other, graphics.Unbounded())
		},
	})
	err := expectContractPanic(t, func() {
		NewEngine(tr, nil).Layout(root, graphics.Unbounded())
	})
	if !strings.Contains(err.Reason, "not one of its children") {
		t.Errorf("reason = %q", err.Reason)
	}
}

func TestEngine_UnmeasuredChildSizePanics(t *testing.T) {
	tr := NewTree()
	kid := tr.Create(&leaf{})
	root := tr.Create(&stepFunc{
		kids: []tree.ID{kid},
		fn: func(ctx *Context, c graphics.Constraints, _ *graphics.Size) Result {
			return SizeResult(ctx.Size(kid))
		},
	})
	expectContractPanic(t, func() {
		NewEngine(tr, nil).Layout(root, graphics.Unbounded())
	})
}

func TestEngine_StaleRootPanics(t *testing.T) {
	tr := NewTree()
	root := tr.Create(&leaf{})
	tr.RemoveSubtree(root)

	defer func() {
		r := recover()
		if _, ok := r.(*errors.StaleIDError); !ok {
			t.Fatalf("expected *errors.StaleIDError, got %T: %v", r, r)
		}
	}()
	NewEngine(tr, nil).Layout(root, graphics.Unbounded())
}

func TestEngine_MeasureText(t *testing.T) {
	tr := NewTree()
	var measured *graphics.TextLayout
	root := tr.Create(&stepFunc{
		fn: func(ctx *Context, c graphics.Constraints, _ *graphics.Size) Result {
			measured = ctx.MeasureText("hello", 1)
			return SizeResult(c.Constrain(measured.Size))
		},
	})
	NewEngine(tr, nil).Layout(root, graphics.Unbounded())
	if measured == nil || measured.Size.Width <= 0 {
		t.Fatalf("expected a measured layout, got %+v", measured)
	}
}

type nopCanvas struct{ size graphics.Size }

func (nopCanvas) Clear(graphics.Color) {}
func (nopCanvas) DrawRect(graphics.Rect, graphics.Paint) {}
func (nopCanvas) DrawRRect(graphics.Rect, float64, graphics.Paint) {}
func (nopCanvas) DrawRectShadow(graphics.Rect, float64, graphics.BoxShadow) {}
func (nopCanvas) DrawText(*graphics.TextLayout, graphics.Offset, graphics.Color) {}
func (c nopCanvas) Size() graphics.Size { return c.size }

func TestPaintContext_AbsoluteGeometry(t *testing.T) {
	tr := NewTree()
	a := &leaf{size: graphics.Size{Width: 10, Height: 20}}
	b := &leaf{size: graphics.Size{Width: 5, Height: 5}, tag: true}
	aID, bID := tr.Create(a), tr.Create(b)
	inner := tr.Create(&column{kids: []tree.ID{aID, bID}})
	top := &leaf{size: graphics.Size{Width: 1, Height: 7}}
	topID := tr.Create(top)
	outer := &column{kids: []tree.ID{topID, inner}}
	root := tr.Create(outer)

	NewEngine(tr, nil).Layout(root, graphics.Loose(graphics.Size{Width: 100, Height: 100}))

	pc := NewPaintContext(tr, nopCanvas{})
	pc.PaintTree(root)

	if len(b.rendered) != 1 {
		t.Fatalf("b rendered %d times", len(b.rendered))
	}
	want := graphics.Geometry{Position: graphics.Offset{Y: 27}, Size: graphics.Size{Width: 5, Height: 5}}
	if b.rendered[0] != want {
		t.Errorf("b geometry = %+v, want %+v", b.rendered[0], want)
	}
	if outer.rendered[0].Position != (graphics.Offset{}) {
		t.Errorf("root should render at origin, got %v", outer.rendered[0].Position)
	}

	tags := pc.Tags()
	if len(tags) != 1 || tags[0] != bID {
		t.Errorf("tags = %v, want {0: %v}", tags, bID)
	}

	g, ok := AbsoluteGeometry(tr, root, bID)
	if !ok || g != want {
		t.Errorf("AbsoluteGeometry = %+v, %v; want %+v", g, ok, want)
	}
}

func TestPipelineOwner(t *testing.T) {
	tr := NewTree()
	root := tr.Create(&leaf{size: graphics.Size{Width: 3, Height: 3}})
	e := NewEngine(tr, nil)
	p := NewPipelineOwner()

	c := graphics.Loose(graphics.Size{Width: 10, Height: 10})
	if !p.FlushLayoutForRoot(e, root, c) {
		t.Fatal("first flush should lay out")
	}
	if p.FlushLayoutForRoot(e, root, c) {
		t.Error("clean owner should not lay out again")
	}
	painted := 0
	p.FlushPaint(func() { painted++ })
	p.FlushPaint(func() { painted++ })
	if painted != 1 {
		t.Errorf("painted %d times, want 1", painted)
	}

	p.MarkNeedsLayout()
	if !p.NeedsLayout() || !p.NeedsPaint() {
		t.Error("layout dirtiness should imply paint dirtiness")
	}
	p.FlushLayoutForRoot(e, root, c)
	p.FlushPaint(func() {})
	p.MarkNeedsPaint()
	if p.NeedsLayout() {
		t.Error("MarkNeedsPaint should not schedule layout")
	}
}

func TestDumpTree(t *testing.T) {
	tr := NewTree()
	kid := tr.Create(&leaf{size: graphics.Size{Width: 4, Height: 2}})
	root := tr.Create(&column{kids: []tree.ID{kid}})
	NewEngine(tr, nil).Layout(root, graphics.Loose(graphics.Size{Width: 10, Height: 10}))

	var buf bytes.Buffer
	if err := DumpTree(&buf, tr, root); err != nil {
		t.Fatalf("DumpTree: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "  *layout.leaf") || !strings.Contains(lines[1], "size=4x2") {
		t.Errorf("unexpected child line %q", lines[1])
	}
}
