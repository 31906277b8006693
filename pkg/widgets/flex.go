package widgets

import (
	"fmt"
	"log"
	"math"

	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/tree"
)

// Axis represents the layout direction.
// AxisVertical is the zero value.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// String returns a human-readable representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// FlexAlign controls where children sit on the minor (cross) axis.
type FlexAlign int

const (
	// FlexAlignTop places children at the start of the minor axis.
	FlexAlignTop FlexAlign = iota
	// FlexAlignMiddle centers children within the tallest child's extent.
	FlexAlignMiddle
	// FlexAlignBaseline places children flush against the far edge.
	FlexAlignBaseline
)

// String returns a human-readable representation of the alignment.
func (a FlexAlign) String() string {
	switch a {
	case FlexAlignTop:
		return "top"
	case FlexAlignMiddle:
		return "middle"
	case FlexAlignBaseline:
		return "baseline"
	default:
		return fmt.Sprintf("FlexAlign(%d)", int(a))
	}
}

// FlexItem is one child of a [Flex] together with its weight.
type FlexItem struct {
	Child  tree.ID
	Weight float64
	flex   bool
}

// NonFlex returns an item measured at its intrinsic major extent.
func NonFlex(child tree.ID) FlexItem {
	return FlexItem{Child: child}
}

// Flexible returns an item that shares the space left by non-flex items in
// proportion to weight. Weights must be positive.
func Flexible(child tree.ID, weight float64) FlexItem {
	return FlexItem{Child: child, Weight: weight, flex: true}
}

// IsFlex reports whether the item takes part in the flex phase.
func (i FlexItem) IsFlex() bool {
	return i.flex
}

// FlexAppend adds a non-flex child to the end of a [Flex].
type FlexAppend struct {
	Child tree.ID
}

// FlexAppendItem adds an item, flexible or not, to the end of a [Flex].
// A flexible item with an invalid weight panics like [NewFlex].
type FlexAppendItem struct {
	Item FlexItem
}

// FlexRemoveLast removes the last child of a [Flex] and hands it back for
// teardown.
type FlexRemoveLast struct{}

type flexPhase uint8

const (
	flexPhaseNonFlex flexPhase = iota
	flexPhaseFlex
)

// Flex lays out children in a row or column in two measurement phases.
// Non-flex children are measured first, unconstrained on the major axis.
// The remaining major space is then divided among flex children in
// proportion to their weights, each receiving a tight major extent.
type Flex struct {
	layout.Base
	Direction Axis
	Align     FlexAlign

	items []FlexItem
	ids   []tree.ID

	// Per-pass state, reset whenever a pass starts.
	phase        flexPhase
	cursor       int
	nonFlexMajor float64
	totalFlex    float64
	remaining    float64
	minorMax     float64

	unboundedWarned bool
}

// NewFlex creates a flex container. It panics with a contract error if a
// flexible item has a weight that is not positive.
func NewFlex(direction Axis, align FlexAlign, items ...FlexItem) *Flex {
	for _, item := range items {
		checkWeight(item)
	}
	f := &Flex{Direction: direction, Align: align}
	f.items = append(f.items, items...)
	f.syncIDs()
	return f
}

func checkWeight(item FlexItem) {
	if item.flex && (!(item.Weight > 0) || math.IsInf(item.Weight, 1)) {
		panic(&errors.ContractError{
			Widget: "Flex",
			Reason: fmt.Sprintf("flex weight %v for child %v must be positive and finite", item.Weight, item.Child),
		})
	}
}

// Row returns a horizontal flex.
func Row(align FlexAlign, items ...FlexItem) *Flex {
	return NewFlex(AxisHorizontal, align, items...)
}

// Column returns a vertical flex.
func Column(align FlexAlign, items ...FlexItem) *Flex {
	return NewFlex(AxisVertical, align, items...)
}

// Items returns a copy of the flex items.
func (f *Flex) Items() []FlexItem {
	return append([]FlexItem(nil), f.items...)
}

func (f *Flex) Children() []tree.ID {
	return f.ids
}

func (f *Flex) syncIDs() {
	f.ids = f.ids[:0]
	for _, item := range f.items {
		f.ids = append(f.ids, item.Child)
	}
}

// Update applies FlexAppend, FlexAppendItem and FlexRemoveLast. They take
// effect on the next layout pass.
func (f *Flex) Update(msg layout.Message) []tree.ID {
	switch m := msg.(type) {
	case FlexAppend:
		f.items = append(f.items, NonFlex(m.Child))
		f.syncIDs()
	case FlexAppendItem:
		checkWeight(m.Item)
		f.items = append(f.items, m.Item)
		f.syncIDs()
	case FlexRemoveLast:
		if len(f.items) == 0 {
			return nil
		}
		last := f.items[len(f.items)-1]
		f.items = f.items[:len(f.items)-1]
		f.syncIDs()
		return []tree.ID{last.Child}
	}
	return nil
}

func (f *Flex) Layout(ctx *layout.Context, c graphics.Constraints, child *graphics.Size) layout.Result {
	if child == nil {
		if len(f.items) == 0 {
			return layout.SizeResult(c.Min)
		}
		f.phase = flexPhaseNonFlex
		f.cursor = 0
		f.nonFlexMajor = 0
		f.totalFlex = 0
		f.remaining = 0
		f.minorMax = 0
	} else {
		if f.phase == flexPhaseNonFlex {
			f.nonFlexMajor += f.mainAxis(*child)
		}
		f.minorMax = math.Max(f.minorMax, f.crossAxis(*child))
		f.cursor++
	}

	if f.phase == flexPhaseNonFlex {
		if i := f.nextItem(false); i >= 0 {
			f.cursor = i
			return layout.RequestChild(f.items[i].Child, f.nonFlexConstraints(c))
		}
		f.startFlexPhase(c)
	}

	if i := f.nextItem(true); i >= 0 {
		f.cursor = i
		item := f.items[i]
		allocated := f.remaining * item.Weight / f.totalFlex
		return layout.RequestChild(item.Child, f.flexConstraints(c, allocated))
	}

	return layout.SizeResult(f.position(ctx, c))
}

// nextItem returns the index of the next item at or after the cursor that
// belongs to the requested phase, or -1.
func (f *Flex) nextItem(flex bool) int {
	for i := f.cursor; i < len(f.items); i++ {
		if f.items[i].flex == flex {
			return i
		}
	}
	return -1
}

func (f *Flex) startFlexPhase(c graphics.Constraints) {
	f.phase = flexPhaseFlex
	f.cursor = 0
	for _, item := range f.items {
		if item.flex {
			f.totalFlex += item.Weight
		}
	}
	maxMajor := f.mainAxis(c.Max)
	if math.IsInf(maxMajor, 1) {
		if f.totalFlex > 0 && !f.unboundedWarned {
			log.Printf("WARNING: Flex children used with unbounded %s axis. "+
				"Flex children cannot flex in unbounded constraints and will be given no space.",
				f.Direction)
			f.unboundedWarned = true
		}
		f.remaining = 0
		return
	}
	f.remaining = math.Max(maxMajor-f.nonFlexMajor, 0)
}

// position places every child in original order and returns the flex's size.
func (f *Flex) position(ctx *layout.Context, c graphics.Constraints) graphics.Size {
	major := 0.0
	for _, item := range f.items {
		size := ctx.Size(item.Child)
		ctx.SetPosition(item.Child, f.makeOffset(major, f.crossAxisOffset(size)))
		major += f.mainAxis(size)
	}
	return c.Constrain(f.makeSize(major, f.minorMax))
}

func (f *Flex) crossAxisOffset(childSize graphics.Size) float64 {
	free := f.minorMax - f.crossAxis(childSize)
	if free <= 0 {
		return 0
	}
	switch f.Align {
	case FlexAlignMiddle:
		return free / 2
	case FlexAlignBaseline:
		return free
	default:
		return 0
	}
}

func (f *Flex) nonFlexConstraints(c graphics.Constraints) graphics.Constraints {
	return f.makeConstraints(0, graphics.Infinity, f.crossAxis(c.Min), f.crossAxis(c.Max))
}

func (f *Flex) flexConstraints(c graphics.Constraints, allocated float64) graphics.Constraints {
	return f.makeConstraints(allocated, allocated, f.crossAxis(c.Min), f.crossAxis(c.Max))
}

func (f *Flex) mainAxis(size graphics.Size) float64 {
	if f.Direction == AxisHorizontal {
		return size.Width
	}
	return size.Height
}

func (f *Flex) crossAxis(size graphics.Size) float64 {
	if f.Direction == AxisHorizontal {
		return size.Height
	}
	return size.Width
}

func (f *Flex) makeSize(main, cross float64) graphics.Size {
	if f.Direction == AxisHorizontal {
		return graphics.Size{Width: main, Height: cross}
	}
	return graphics.Size{Width: cross, Height: main}
}

func (f *Flex) makeOffset(main, cross float64) graphics.Offset {
	if f.Direction == AxisHorizontal {
		return graphics.Offset{X: main, Y: cross}
	}
	return graphics.Offset{X: cross, Y: main}
}

func (f *Flex) makeConstraints(minMain, maxMain, minCross, maxCross float64) graphics.Constraints {
	return graphics.Constraints{
		Min: f.makeSize(minMain, minCross),
		Max: f.makeSize(maxMain, maxCross),
	}
}
