package showcase

import (
	"sort"

	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/graphics"
)

// Demo represents a showcase application.
type Demo struct {
	Name     string
	Title    string
	Subtitle string
	// Size is the window size the demo was designed for.
	Size graphics.Size
	New  func(opts ...engine.Option) Host
}

// demos is the registry of all showcase applications.
// Add new demos here to make them available to the CLI.
var demos = []Demo{
	{"calculator", "Calculator!", "Four-function calculator built from flex rows", graphics.Size{Width: 280, Height: 350}, NewCalculatorHost},
	{"flextext", "Flex Text", "Two labels pushed apart by a flexible box", graphics.Size{Width: 1024, Height: 768}, NewFlexTextHost},
	{"basic", "Basic Demo!", "Add and remove flexible rows at runtime", graphics.Size{Width: 1024, Height: 768}, NewBasicHost},
}

// Demos returns every registered demo.
func Demos() []Demo {
	return demos
}

// Lookup returns the demo with the given name.
func Lookup(name string) (Demo, bool) {
	for _, d := range demos {
		if d.Name == name {
			return d, true
		}
	}
	return Demo{}, false
}

// Names returns the sorted demo names.
func Names() []string {
	names := make([]string, 0, len(demos))
	for _, d := range demos {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
