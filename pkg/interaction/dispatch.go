// Package interaction routes pointer input to widgets and collects the
// application messages produced by clicks.
//
// A [Dispatcher] sits between the hit tester and the widget tree. Once per
// paint it learns which tag belongs to which widget; on every pointer event
// it resolves the topmost tag to a widget and emits hover, press and release
// notifications. Clicks on widgets with a listener enqueue one application
// message each, drained once per frame.
package interaction

import (
	"log"
	"maps"

	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// Dispatcher tracks hover and press state for one window.
//
// While a press is held the hovered widget is latched: pointer moves are
// ignored until release, so dragging across widgets produces no hover churn.
// Release does not re-target hover; the next pointer move does.
type Dispatcher[M any] struct {
	tree      *layout.Tree
	tags      map[layout.Tag]tree.ID
	hovered   tree.ID
	clicked   tree.ID
	listeners map[tree.ID]func() M
	queue     []M
}

// NewDispatcher returns a dispatcher delivering to widgets stored in t.
func NewDispatcher[M any](t *layout.Tree) *Dispatcher[M] {
	return &Dispatcher[M]{
		tree:      t,
		tags:      make(map[layout.Tag]tree.ID),
		listeners: make(map[tree.ID]func() M),
	}
}

// SetTags replaces the tag map with the one collected by the latest paint.
func (d *Dispatcher[M]) SetTags(tags map[layout.Tag]tree.ID) {
	d.tags = maps.Clone(tags)
	if d.tags == nil {
		d.tags = make(map[layout.Tag]tree.ID)
	}
}

// Hovered returns the widget under the pointer, or the zero id.
func (d *Dispatcher[M]) Hovered() tree.ID {
	return d.hovered
}

// Clicked returns the widget latched by a held press, or the zero id.
func (d *Dispatcher[M]) Clicked() tree.ID {
	return d.clicked
}

// PointerMoved updates hover from the hit tester's answer: the topmost tag
// under the pointer, if ok. It reports whether the hovered widget changed.
// The previous widget is told it lost hover before the new one gains it.
func (d *Dispatcher[M]) PointerMoved(tag layout.Tag, ok bool) bool {
	if !d.clicked.IsZero() {
		return false
	}
	var target tree.ID
	if ok {
		target = d.tags[tag]
	}
	if target == d.hovered {
		return false
	}
	previous := d.hovered
	d.hovered = target
	if !previous.IsZero() {
		d.deliver(previous, layout.Hovered(false))
	}
	if !target.IsZero() {
		d.deliver(target, layout.Hovered(true))
	}
	return true
}

// PointerPressed sends MouseDown to the hovered widget, latches it and
// enqueues its click message if it has a listener. It reports whether any
// widget received the press.
func (d *Dispatcher[M]) PointerPressed() bool {
	if d.hovered.IsZero() || !d.clicked.IsZero() {
		return false
	}
	d.clicked = d.hovered
	d.deliver(d.clicked, layout.MouseDown())
	if listener, ok := d.listeners[d.clicked]; ok {
		d.queue = append(d.queue, listener())
	}
	return true
}

// PointerReleased sends MouseUp to the latched widget and clears the latch.
// It reports whether a press was held.
func (d *Dispatcher[M]) PointerReleased() bool {
	if d.clicked.IsZero() {
		return false
	}
	clicked := d.clicked
	d.clicked = tree.ID{}
	d.deliver(clicked, layout.MouseUp())
	return true
}

// Listen registers a click listener for id, replacing any previous one.
// The listener runs once per press and its result is queued.
func (d *Dispatcher[M]) Listen(id tree.ID, listener func() M) {
	d.listeners[id] = listener
}

// Unlisten removes the click listener for id.
func (d *Dispatcher[M]) Unlisten(id tree.ID) {
	delete(d.listeners, id)
}

// Enqueue appends an application message to the queue.
func (d *Dispatcher[M]) Enqueue(msg M) {
	d.queue = append(d.queue, msg)
}

// Pending returns the number of queued messages.
func (d *Dispatcher[M]) Pending() int {
	return len(d.queue)
}

// Drain returns the queued messages in emission order and empties the queue.
func (d *Dispatcher[M]) Drain() []M {
	msgs := d.queue
	d.queue = nil
	return msgs
}

// Forget drops every reference the dispatcher holds to the given ids. It is
// called with the ids removed by a subtree teardown.
func (d *Dispatcher[M]) Forget(ids []tree.ID) {
	if len(ids) == 0 {
		return
	}
	removed := make(map[tree.ID]struct{}, len(ids))
	for _, id := range ids {
		removed[id] = struct{}{}
		delete(d.listeners, id)
	}
	if _, ok := removed[d.hovered]; ok {
		d.hovered = tree.ID{}
	}
	if _, ok := removed[d.clicked]; ok {
		d.clicked = tree.ID{}
	}
	maps.DeleteFunc(d.tags, func(_ layout.Tag, id tree.ID) bool {
		_, ok := removed[id]
		return ok
	})
}

// deliver hands an interaction to a widget. Widgets removed since the last
// paint are skipped.
func (d *Dispatcher[M]) deliver(id tree.ID, interaction layout.Interaction) {
	w, err := d.tree.Get(id)
	if err != nil {
		log.Printf("interaction: dropped %v for %v: %v", interaction, id, err)
		return
	}
	w.HandleInteraction(interaction)
}
