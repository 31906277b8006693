package layout

import (
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/tree"
)

// TagRecorder is implemented by canvases that hit test. PaintTree reports
// every tagged region to it, in paint order.
type TagRecorder interface {
	RecordTag(tag Tag, rect graphics.Rect)
}

// PaintContext walks a laid-out tree and renders every widget at its
// absolute geometry, collecting the interaction tags widgets return.
type PaintContext struct {
	// Canvas is the backend surface widgets draw into.
	Canvas graphics.Canvas

	tree    *tree.Arena[Widget]
	nextTag Tag
	tags    map[Tag]tree.ID
}

// NewPaintContext returns a paint context drawing the widgets of t into canvas.
func NewPaintContext(t *Tree, canvas graphics.Canvas) *PaintContext {
	return &PaintContext{
		Canvas: canvas,
		tree:   t,
		tags:   make(map[Tag]tree.ID),
	}
}

// NextTag allocates a fresh interaction tag for the current paint.
func (p *PaintContext) NextTag() Tag {
	tag := p.nextTag
	p.nextTag++
	return tag
}

// Tags returns the tag to widget mapping collected so far.
func (p *PaintContext) Tags() map[Tag]tree.ID {
	return p.tags
}

// PaintTree renders root and its descendants in pre-order, parents before
// children, so children paint over their parents. Rendering a dead id is a
// dangling reference and panics.
func (p *PaintContext) PaintTree(root tree.ID) {
	type entry struct {
		id     tree.ID
		origin graphics.Offset
	}
	stack := []entry{{id: root}}
	for len(stack) > 0 {
		n := len(stack) - 1
		e := stack[n]
		stack = stack[:n]

		w := p.tree.MustGet("layout.PaintContext.PaintTree", e.id)
		size, _ := p.tree.Size(e.id)
		position := e.origin.Add(p.tree.Position(e.id))
		geometry := graphics.Geometry{Position: position, Size: size}
		if tag, ok := w.Render(geometry, p); ok {
			p.tags[tag] = e.id
			if recorder, ok := p.Canvas.(TagRecorder); ok {
				recorder.RecordTag(tag, geometry.Rect())
			}
		}

		children := w.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, entry{id: children[i], origin: position})
		}
	}
}

// AbsoluteGeometry returns id's geometry in root coordinates by walking from
// root. It reports false if id is not in root's subtree.
func AbsoluteGeometry(t *Tree, root, id tree.ID) (graphics.Geometry, bool) {
	var found graphics.Geometry
	ok := false
	origins := map[tree.ID]graphics.Offset{}
	t.Walk(root, func(current tree.ID, w Widget, depth int) bool {
		position := origins[current].Add(t.Position(current))
		if current == id {
			size, _ := t.Size(current)
			found = graphics.Geometry{Position: position, Size: size}
			ok = true
			return false
		}
		for _, child := range w.Children() {
			origins[child] = position
		}
		return true
	})
	return found, ok
}
