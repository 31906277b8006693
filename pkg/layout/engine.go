package layout

import (
	"fmt"
	"log"
	"slices"

	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/text"
	"github.com/go-drift/arbor/pkg/tree"
)

// Stats counts the work done by an [Engine].
type Stats struct {
	// Passes is the number of root layouts run.
	Passes int
	// Steps is the number of Layout calls made on widgets.
	Steps int
	// ChildRequests is the number of child measurements performed.
	ChildRequests int
}

// Engine drives the resumable layout protocol. It knows nothing about any
// particular widget's algorithm: it measures whatever child a widget
// requests, hands the size back, and records final sizes.
type Engine struct {
	tree   *Tree
	ctx    Context
	stats  Stats
	warned map[string]bool
}

// NewEngine returns an engine laying out widgets stored in t, measuring text
// through measurer. A nil measurer selects the built-in bitmap font.
func NewEngine(t *Tree, measurer TextMeasurer) *Engine {
	if measurer == nil {
		measurer = text.Default()
	}
	return &Engine{
		tree: t,
		ctx:  Context{tree: t, text: measurer},
	}
}

// Stats returns the counters accumulated since the engine was created.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Layout sizes the subtree under root within constraints, recording every
// widget's size and letting parents record their children's positions. The
// root is placed at the origin. Every call recomputes the whole subtree.
func (e *Engine) Layout(root tree.ID, constraints graphics.Constraints) graphics.Size {
	size := e.layoutWidget(root, constraints)
	e.tree.SetPosition(root, graphics.Offset{})
	e.stats.Passes++
	return size
}

// layoutWidget runs one widget's state machine to completion. Each child
// measurement is a plain recursive call, so stack depth is bounded by tree
// depth rather than by the number of children.
func (e *Engine) layoutWidget(id tree.ID, constraints graphics.Constraints) graphics.Size {
	w := e.tree.MustGet("layout.Engine.Layout", id)

	var measured graphics.Size
	var child *graphics.Size
	for {
		e.stats.Steps++
		result := w.Layout(&e.ctx, constraints, child)
		if result.IsSize() {
			size := e.checkSize(w, constraints, result.Size())
			e.tree.SetSize(id, size)
			return size
		}

		childID, childConstraints := result.Request()
		e.checkRequest(w, childID)
		e.stats.ChildRequests++
		measured = e.layoutWidget(childID, childConstraints)
		child = &measured
	}
}

// checkRequest enforces that a widget only measures children it declares.
func (e *Engine) checkRequest(w Widget, child tree.ID) {
	children := w.Children()
	if len(children) == 0 {
		panic(&errors.ContractError{
			Widget: fmt.Sprintf("%T", w),
			Reason: "requested a child size but declares no children",
		})
	}
	if !slices.Contains(children, child) {
		panic(&errors.ContractError{
			Widget: fmt.Sprintf("%T", w),
			Reason: fmt.Sprintf("requested the size of %v, which is not one of its children", child),
		})
	}
}

// checkSize clamps a reported size into the widget's constraints so every
// recorded size honors its envelope. Widgets that overflow are reported
// once per type.
func (e *Engine) checkSize(w Widget, constraints graphics.Constraints, size graphics.Size) graphics.Size {
	constrained := constraints.Constrain(size)
	if constrained != size {
		name := fmt.Sprintf("%T", w)
		if !e.warned[name] {
			if e.warned == nil {
				e.warned = make(map[string]bool)
			}
			e.warned[name] = true
			log.Printf("WARNING: %s reported size %v outside its constraints %v; clamped to %v",
				name, size, constraints, constrained)
		}
	}
	return constrained
}
