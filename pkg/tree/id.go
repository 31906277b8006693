package tree

import "fmt"

// ID identifies one widget in an [Arena]. It is a back-reference, never an
// owner. The zero ID is never issued.
type ID struct {
	index      uint32
	generation uint32
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id.generation == 0
}

// String returns a compact representation such as "4#2" (slot 4, generation 2).
func (id ID) String() string {
	if id.IsZero() {
		return "<none>"
	}
	return fmt.Sprintf("%d#%d", id.index, id.generation)
}
