package layout

import (
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/tree"
)

type resultKind uint8

const (
	resultSize resultKind = iota
	resultRequestChild
)

// Result is the outcome of one Layout step: either the widget's final size
// or a request to measure a child.
type Result struct {
	kind        resultKind
	size        graphics.Size
	child       tree.ID
	constraints graphics.Constraints
}

// SizeResult finishes the widget's layout with the given size.
func SizeResult(size graphics.Size) Result {
	return Result{kind: resultSize, size: size}
}

// RequestChild asks the engine to measure child under constraints and call
// the widget again with the measured size.
func RequestChild(child tree.ID, constraints graphics.Constraints) Result {
	return Result{kind: resultRequestChild, child: child, constraints: constraints}
}

// IsSize reports whether the result is a final size.
func (r Result) IsSize() bool {
	return r.kind == resultSize
}

// Size returns the final size. It is meaningful only when IsSize is true.
func (r Result) Size() graphics.Size {
	return r.size
}

// Request returns the requested child and its constraints. It is meaningful
// only when IsSize is false.
func (r Result) Request() (tree.ID, graphics.Constraints) {
	return r.child, r.constraints
}
