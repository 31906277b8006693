package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
	"github.com/go-drift/arbor/pkg/widgets"
)

// Finder locates widgets in a tree.
type Finder interface {
	// Evaluate returns the matching ids under root, in pre-order.
	Evaluate(t *layout.Tree, root tree.ID) []tree.ID
	// Description describes the finder for error messages.
	Description() string
}

// FinderResult holds the widgets matched by a finder.
type FinderResult struct {
	ids    []tree.ID
	finder Finder
}

// First returns the first match. It panics if there is none.
func (r FinderResult) First() tree.ID {
	if len(r.ids) == 0 {
		panic(fmt.Sprintf("finder matched no widgets: %s", r.finder.Description()))
	}
	return r.ids[0]
}

// At returns the match at index. It panics if index is out of range.
func (r FinderResult) At(index int) tree.ID {
	if index < 0 || index >= len(r.ids) {
		panic(fmt.Sprintf("finder index %d out of range (%d matches): %s", index, len(r.ids), r.finder.Description()))
	}
	return r.ids[index]
}

// All returns every match.
func (r FinderResult) All() []tree.ID {
	return r.ids
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.ids)
}

// Exists reports whether anything matched.
func (r FinderResult) Exists() bool {
	return len(r.ids) > 0
}

type typeFinder struct {
	typ reflect.Type
}

func (f *typeFinder) Evaluate(t *layout.Tree, root tree.ID) []tree.ID {
	return collectMatches(t, root, func(_ tree.ID, w layout.Widget) bool {
		return reflect.TypeOf(w) == f.typ
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.typ)
}

// ByType matches widgets whose dynamic type is T, for example
// ByType[*widgets.Button]().
func ByType[T layout.Widget]() Finder {
	return &typeFinder{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

type idFinder struct {
	id tree.ID
}

func (f *idFinder) Evaluate(t *layout.Tree, root tree.ID) []tree.ID {
	return collectMatches(t, root, func(id tree.ID, _ layout.Widget) bool {
		return id == f.id
	})
}

func (f *idFinder) Description() string {
	return fmt.Sprintf("ByID(%v)", f.id)
}

// ByID matches the widget with the given id, if it is under the root.
func ByID(id tree.ID) Finder {
	return &idFinder{id: id}
}

type labelFinder struct {
	text     string
	contains bool
}

func (f *labelFinder) Evaluate(t *layout.Tree, root tree.ID) []tree.ID {
	return collectMatches(t, root, func(_ tree.ID, w layout.Widget) bool {
		label, ok := w.(*widgets.Label)
		if !ok {
			return false
		}
		if f.contains {
			return strings.Contains(label.Text, f.text)
		}
		return label.Text == f.text
	})
}

func (f *labelFinder) Description() string {
	if f.contains {
		return fmt.Sprintf("ByLabelContaining(%q)", f.text)
	}
	return fmt.Sprintf("ByLabel(%q)", f.text)
}

// ByLabel matches labels showing exactly text.
func ByLabel(text string) Finder {
	return &labelFinder{text: text}
}

// ByLabelContaining matches labels whose text contains substring.
func ByLabelContaining(substring string) Finder {
	return &labelFinder{text: substring, contains: true}
}

type predicateFinder struct {
	fn   func(tree.ID, layout.Widget) bool
	desc string
}

func (f *predicateFinder) Evaluate(t *layout.Tree, root tree.ID) []tree.ID {
	return collectMatches(t, root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate matches widgets for which fn returns true.
func ByPredicate(fn func(tree.ID, layout.Widget) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate"}
}

type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(t *layout.Tree, root tree.ID) []tree.ID {
	var out []tree.ID
	seen := make(map[tree.ID]bool)
	for _, candidate := range f.matching.Evaluate(t, root) {
		for _, target := range f.of.Evaluate(t, root) {
			if candidate != target && !seen[candidate] && isAncestorOf(t, candidate, target) {
				seen[candidate] = true
				out = append(out, candidate)
			}
		}
	}
	return out
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor matches widgets matched by matching that contain a widget
// matched by of. It finds the button owning a label, for example.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

func isAncestorOf(t *layout.Tree, ancestor, descendant tree.ID) bool {
	found := false
	t.Walk(ancestor, func(id tree.ID, _ layout.Widget, _ int) bool {
		if id == descendant {
			found = true
		}
		return !found
	})
	return found
}

func collectMatches(t *layout.Tree, root tree.ID, predicate func(tree.ID, layout.Widget) bool) []tree.ID {
	var out []tree.ID
	t.Walk(root, func(id tree.ID, w layout.Widget, _ int) bool {
		if predicate(id, w) {
			out = append(out, id)
		}
		return true
	})
	return out
}

// center returns the absolute center of id.
func (t *WidgetTester) center(id tree.ID) graphics.Offset {
	r := t.Geometry(id).Rect()
	return graphics.Offset{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}
