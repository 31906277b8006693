// Package layout defines the widget contract and drives the resumable
// constraint protocol over a widget arena.
//
// # The protocol
//
// A widget's Layout method is a step function. The engine first calls it
// with no child size; the widget answers either with its final size
// ([SizeResult]) or with a request to measure one of its children under
// given constraints ([RequestChild]). The engine measures that child with
// the same protocol and calls the widget again, this time passing the
// measured size. This repeats until the widget reports a size:
//
//	func (p *Padding) Layout(ctx *layout.Context, c graphics.Constraints, child *graphics.Size) layout.Result {
//	    if child == nil {
//	        return layout.RequestChild(p.Child, c.Deflate(p.Insets))
//	    }
//	    ctx.SetPosition(p.Child, graphics.Offset{X: p.Insets.Left, Y: p.Insets.Top})
//	    return layout.SizeResult(...)
//	}
//
// A widget can request any number of children, in any order, across as
// many phases as it needs, keeping its progress in its own fields. A nil
// child size always marks the start of a fresh pass, so widgets reset that
// state there.
//
// Widgets position their children; the engine never infers an offset. The
// engine records every reported size and places the root at the origin.
//
// # Rendering
//
// [PaintContext] walks the tree after layout, accumulating offsets so each
// widget renders at its absolute [graphics.Geometry]. A widget that returns
// a [Tag] from Render becomes hit-testable for the frame.
package layout
