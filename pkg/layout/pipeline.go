package layout

import (
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/tree"
)

// PipelineOwner tracks whether a surface needs layout or paint.
//
// There is no incremental relayout: marking a surface dirty schedules a full
// layout of its root on the next frame, from the start state, and a repaint
// after it. Layout dirtiness implies paint dirtiness.
type PipelineOwner struct {
	needsLayout bool
	needsPaint  bool
}

// NewPipelineOwner returns an owner that is dirty, so the first frame lays
// out and paints.
func NewPipelineOwner() *PipelineOwner {
	return &PipelineOwner{needsLayout: true, needsPaint: true}
}

// MarkNeedsLayout schedules a full layout and paint.
func (p *PipelineOwner) MarkNeedsLayout() {
	p.needsLayout = true
	p.needsPaint = true
}

// MarkNeedsPaint schedules a repaint without relayout.
func (p *PipelineOwner) MarkNeedsPaint() {
	p.needsPaint = true
}

// NeedsLayout reports if layout is pending.
func (p *PipelineOwner) NeedsLayout() bool {
	return p.needsLayout
}

// NeedsPaint reports if paint is pending.
func (p *PipelineOwner) NeedsPaint() bool {
	return p.needsPaint
}

// FlushLayoutForRoot runs layout from root if it is pending.
//
// The typical frame sequence is:
//  1. FlushLayoutForRoot - lays out the whole tree
//  2. message handling, which may mark the owner dirty again
//  3. FlushPaint - renders the tree
//
// It reports whether layout ran.
func (p *PipelineOwner) FlushLayoutForRoot(engine *Engine, root tree.ID, constraints graphics.Constraints) bool {
	if !p.needsLayout {
		return false
	}
	engine.Layout(root, constraints)
	p.needsLayout = false
	return true
}

// FlushPaint calls paint if a repaint is pending and clears the flag. It
// reports whether paint ran.
func (p *PipelineOwner) FlushPaint(paint func()) bool {
	if !p.needsPaint {
		return false
	}
	paint()
	p.needsPaint = false
	return true
}
