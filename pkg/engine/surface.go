package engine

import (
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
)

// Surface is the rendering backend of one window.
//
// Each paint calls Begin with the viewport size, renders the whole tree into
// the returned canvas and calls Present. HitTest answers against the last
// presented paint: it returns the topmost tagged region under the point.
type Surface interface {
	Begin(size graphics.Size) graphics.Canvas
	HitTest(position graphics.Offset) (layout.Tag, bool)
	Present() error
}
