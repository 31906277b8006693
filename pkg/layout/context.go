package layout

import (
	"fmt"

	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/tree"
)

// TextMeasurer shapes a string at a scale and reports its metrics. It is the
// boundary to the font backend.
type TextMeasurer interface {
	Layout(text string, scale float64) *graphics.TextLayout
}

// Context is handed to every Layout step. It gives widgets access to the
// parts of the arena they are allowed to touch: their children's positions
// and measured sizes.
type Context struct {
	tree *Tree
	text TextMeasurer
}

// SetPosition places child relative to the calling widget's content origin.
func (c *Context) SetPosition(child tree.ID, position graphics.Offset) {
	c.tree.SetPosition(child, position)
}

// Size returns the size recorded for child during the current pass. Asking
// for a child that was never measured is a contract violation.
func (c *Context) Size(child tree.ID) graphics.Size {
	size, ok := c.tree.Size(child)
	if !ok {
		if !c.tree.Contains(child) {
			panic(&errors.StaleIDError{Op: "layout.Context.Size", ID: child, Err: tree.ErrNotFound})
		}
		panic(&errors.ContractError{
			Widget: fmt.Sprintf("parent of %v", child),
			Reason: "read the size of a child that was never measured",
		})
	}
	return size
}

// MeasureText lays out text through the configured font backend.
func (c *Context) MeasureText(text string, scale float64) *graphics.TextLayout {
	return c.text.Layout(text, scale)
}
