package testing

import (
	"fmt"

	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/graphics"
)

// MoveTo moves the pointer to pos, updating hover from the last paint.
func (t *WidgetTester) MoveTo(pos graphics.Offset) error {
	return t.send(engine.PointerMove(t.windowID(), pos))
}

// Press presses the pointer button at the current position.
func (t *WidgetTester) Press() error {
	return t.send(engine.PointerDown(t.windowID()))
}

// Release releases the pointer button.
func (t *WidgetTester) Release() error {
	return t.send(engine.PointerUp(t.windowID()))
}

// TapAt moves to pos, then presses and releases.
func (t *WidgetTester) TapAt(pos graphics.Offset) error {
	if err := t.MoveTo(pos); err != nil {
		return err
	}
	if err := t.Press(); err != nil {
		return err
	}
	return t.Release()
}

// Tap taps the center of the first widget matched by finder.
func (t *WidgetTester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no widgets: %s", finder.Description())
	}
	return t.TapAt(t.center(result.First()))
}

// Hover moves the pointer to the center of the first widget matched by
// finder.
func (t *WidgetTester) Hover(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Hover: finder matched no widgets: %s", finder.Description())
	}
	return t.MoveTo(t.center(result.First()))
}

func (t *WidgetTester) send(ev engine.Event) error {
	if t.app == nil {
		return fmt.Errorf("%s: nothing mounted", ev.Kind)
	}
	return t.app.HandleEvent(ev)
}

func (t *WidgetTester) windowID() engine.WindowID {
	if t.window == nil {
		return 0
	}
	return t.window.ID()
}
