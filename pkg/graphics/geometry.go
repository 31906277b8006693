package graphics

import (
	"fmt"
	"math"
)

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Infinity is the sentinel for an unbounded maximum extent. Only the Max side
// of a [Constraints] may carry it.
var Infinity = math.Inf(1)

// Offset represents a 2D point or vector in layout coordinates.
//
// A widget's stored offset is relative to its parent's content origin. The
// render traversal accumulates offsets from the root so that [Geometry]
// always carries an absolute position.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// String returns a compact representation such as "(10, 20)".
func (o Offset) String() string {
	return fmt.Sprintf("(%g, %g)", o.X, o.Y)
}

// Size represents width and height dimensions.
type Size struct {
	Width  float64
	Height float64
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// String returns a compact representation such as "100x40".
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Contains reports whether the point lies inside the rectangle. The left and
// top edges are inclusive, the right and bottom edges exclusive, so adjacent
// rectangles never both claim a point on their shared edge.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Inflate grows the rectangle by dx on the left and right and dy on the top
// and bottom. Negative values shrink it.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left - dx,
		Top:    r.Top - dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Geometry is the absolute placement of a widget handed to rendering.
type Geometry struct {
	Position Offset
	Size     Size
}

// Rect returns the geometry as a rectangle.
func (g Geometry) Rect() Rect {
	return RectFromLTWH(g.Position.X, g.Position.Y, g.Size.Width, g.Size.Height)
}

// Constraints is the min/max size envelope a parent imposes on a child.
type Constraints struct {
	Min Size
	Max Size
}

// Tight returns constraints that force exactly the given size.
func Tight(size Size) Constraints {
	return Constraints{Min: size, Max: size}
}

// Loose returns constraints with a zero minimum and the given maximum.
func Loose(max Size) Constraints {
	return Constraints{Max: max}
}

// Unbounded returns constraints with a zero minimum and infinite maximum on
// both axes.
func Unbounded() Constraints {
	return Constraints{Max: Size{Width: Infinity, Height: Infinity}}
}

// Constrain clamps each axis of size into [Min, Max] independently.
func (c Constraints) Constrain(size Size) Size {
	return Size{
		Width:  clamp(size.Width, c.Min.Width, c.Max.Width),
		Height: clamp(size.Height, c.Min.Height, c.Max.Height),
	}
}

// IsTight reports whether min and max agree on both axes, within a small
// tolerance to absorb accumulated arithmetic error.
func (c Constraints) IsTight() bool {
	return floatEqual(c.Min.Width, c.Max.Width) && floatEqual(c.Min.Height, c.Max.Height)
}

// HasBoundedWidth reports whether the maximum width is finite.
func (c Constraints) HasBoundedWidth() bool {
	return !math.IsInf(c.Max.Width, 1)
}

// HasBoundedHeight reports whether the maximum height is finite.
func (c Constraints) HasBoundedHeight() bool {
	return !math.IsInf(c.Max.Height, 1)
}

// Loosen returns a copy with the minimum dropped to zero.
func (c Constraints) Loosen() Constraints {
	return Constraints{Max: c.Max}
}

// Deflate shrinks the constraints by the given insets, never below zero.
// Infinite maxima stay infinite.
func (c Constraints) Deflate(insets EdgeInsets) Constraints {
	h := insets.Horizontal()
	v := insets.Vertical()
	minW := math.Max(0, c.Min.Width-h)
	minH := math.Max(0, c.Min.Height-v)
	return Constraints{
		Min: Size{Width: minW, Height: minH},
		Max: Size{
			Width:  math.Max(minW, c.Max.Width-h),
			Height: math.Max(minH, c.Max.Height-v),
		},
	}
}

// String returns a compact representation such as "0x0..100x40".
func (c Constraints) String() string {
	return fmt.Sprintf("%v..%v", c.Min, c.Max)
}

// EdgeInsets describes space around the four sides of a box.
type EdgeInsets struct {
	Top, Bottom, Left, Right float64
}

// EdgeInsetsAll returns insets with the same value on every side.
func EdgeInsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Top: v, Bottom: v, Left: v, Right: v}
}

// Horizontal returns left + right.
func (e EdgeInsets) Horizontal() float64 {
	return e.Left + e.Right
}

// Vertical returns top + bottom.
func (e EdgeInsets) Vertical() float64 {
	return e.Top + e.Bottom
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// floatEqual returns true if two float64 values are approximately equal.
func floatEqual(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= epsilon
}
