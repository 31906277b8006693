package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/go-drift/arbor/pkg/graphics"
)

// WindowID identifies a window of an [App].
type WindowID int

// EventKind enumerates the notifications a window system delivers.
type EventKind int

const (
	EventResize EventKind = iota
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventClose
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerDown:
		return "pointer-down"
	case EventPointerUp:
		return "pointer-up"
	case EventClose:
		return "close"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one window-system notification.
type Event struct {
	Kind   EventKind
	Window WindowID
	// Size is set for EventResize.
	Size graphics.Size
	// Position is set for EventPointerMove, in window coordinates.
	Position graphics.Offset
}

// Resize returns a resize notification.
func Resize(w WindowID, size graphics.Size) Event {
	return Event{Kind: EventResize, Window: w, Size: size}
}

// PointerMove returns a pointer move notification.
func PointerMove(w WindowID, position graphics.Offset) Event {
	return Event{Kind: EventPointerMove, Window: w, Position: position}
}

// PointerDown returns a button press notification.
func PointerDown(w WindowID) Event {
	return Event{Kind: EventPointerDown, Window: w}
}

// PointerUp returns a button release notification.
func PointerUp(w WindowID) Event {
	return Event{Kind: EventPointerUp, Window: w}
}

// Close returns a window close notification.
func Close(w WindowID) Event {
	return Event{Kind: EventClose, Window: w}
}

// EventSource supplies input to [App.Run]. Poll returns the events that
// arrived since the previous call; one frame runs after each batch. Poll
// returns io.EOF when no more input will arrive.
type EventSource interface {
	Poll(ctx context.Context) ([]Event, error)
}

// Script is an EventSource replaying fixed batches of events, one batch per
// frame.
type Script struct {
	batches [][]Event
	next    int
}

// NewScript returns a source replaying batches in order.
func NewScript(batches ...[]Event) *Script {
	return &Script{batches: batches}
}

// Poll returns the next batch, or io.EOF once all batches were delivered.
func (s *Script) Poll(ctx context.Context) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.batches) {
		return nil, io.EOF
	}
	batch := s.batches[s.next]
	s.next++
	return batch, nil
}
