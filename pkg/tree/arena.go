package tree

import (
	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
)

// ErrNotFound is returned for ids that were removed or never issued.
var ErrNotFound = errors.New("widget not found")

// Node is implemented by every value stored in an arena. Children declares
// the ownership edges of the node and must be stable between calls unless
// the node was mutated.
type Node interface {
	Children() []ID
}

type slot[T Node] struct {
	value      T
	generation uint32
	alive      bool
	position   graphics.Offset
	size       graphics.Size
	hasSize    bool
}

// Arena owns widget instances by value and hands out generation-checked ids.
// It is not safe for concurrent use; one logical owner mutates it per phase.
type Arena[T Node] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// NewArena returns an empty arena.
func NewArena[T Node]() *Arena[T] {
	return &Arena[T]{}
}

// Create stores value and returns its id.
func (a *Arena[T]) Create(value T) ID {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	}
	s := &a.slots[index]
	s.generation++
	s.value = value
	s.alive = true
	s.position = graphics.Offset{}
	s.size = graphics.Size{}
	s.hasSize = false
	a.live++
	return ID{index: index, generation: s.generation}
}

func (a *Arena[T]) lookup(id ID) (*slot[T], error) {
	if id.IsZero() || int(id.index) >= len(a.slots) {
		return nil, ErrNotFound
	}
	s := &a.slots[id.index]
	if !s.alive || s.generation != id.generation {
		return nil, ErrNotFound
	}
	return s, nil
}

// Get returns the value stored under id. Values are usually pointers to
// widget structs, so the result also serves for mutation.
func (a *Arena[T]) Get(id ID) (T, error) {
	s, err := a.lookup(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.value, nil
}

// MustGet is like Get but panics with a [errors.StaleIDError] for dead ids.
// Use it where a dead id can only mean a dangling reference.
func (a *Arena[T]) MustGet(op string, id ID) T {
	v, err := a.Get(id)
	if err != nil {
		panic(&errors.StaleIDError{Op: op, ID: id, Err: err})
	}
	return v
}

// Contains reports whether id resolves to a live value.
func (a *Arena[T]) Contains(id ID) bool {
	_, err := a.lookup(id)
	return err == nil
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// RemoveSubtree removes id and, depth-first, every id reachable through
// Children. Each node's children are queried immediately before the node is
// deleted, never from a cached list. Ids that are already gone are skipped.
// The removed ids are returned in deletion order.
func (a *Arena[T]) RemoveSubtree(id ID) []ID {
	var removed []ID
	stack := []ID{id}
	for len(stack) > 0 {
		n := len(stack) - 1
		current := stack[n]
		stack = stack[:n]

		s, err := a.lookup(current)
		if err != nil {
			continue
		}
		children := s.value.Children()
		a.release(current.index)
		removed = append(removed, current)

		// Push in reverse so the first child is visited first.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return removed
}

func (a *Arena[T]) release(index uint32) {
	s := &a.slots[index]
	var zero T
	s.value = zero
	s.alive = false
	s.hasSize = false
	a.free = append(a.free, index)
	a.live--
}

// SetPosition records id's offset relative to its parent's content origin.
// Unknown ids are ignored.
func (a *Arena[T]) SetPosition(id ID, position graphics.Offset) {
	if s, err := a.lookup(id); err == nil {
		s.position = position
	}
}

// Position returns id's offset relative to its parent. It is the origin
// until a parent sets it.
func (a *Arena[T]) Position(id ID) graphics.Offset {
	if s, err := a.lookup(id); err == nil {
		return s.position
	}
	return graphics.Offset{}
}

// SetSize records id's measured size.
func (a *Arena[T]) SetSize(id ID, size graphics.Size) {
	if s, err := a.lookup(id); err == nil {
		s.size = size
		s.hasSize = true
	}
}

// Size returns id's measured size and whether one was recorded.
func (a *Arena[T]) Size(id ID) (graphics.Size, bool) {
	if s, err := a.lookup(id); err == nil {
		return s.size, s.hasSize
	}
	return graphics.Size{}, false
}

// Walk visits root and its descendants in pre-order, passing each node's
// depth. Dead ids are skipped along with their (unknowable) subtrees.
// Returning false from fn stops the walk.
func (a *Arena[T]) Walk(root ID, fn func(id ID, value T, depth int) bool) {
	type entry struct {
		id    ID
		depth int
	}
	stack := []entry{{id: root}}
	for len(stack) > 0 {
		n := len(stack) - 1
		e := stack[n]
		stack = stack[:n]

		s, err := a.lookup(e.id)
		if err != nil {
			continue
		}
		value := s.value
		if !fn(e.id, value, e.depth) {
			return
		}
		children := value.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, entry{id: children[i], depth: e.depth + 1})
		}
	}
}
