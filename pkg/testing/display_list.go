package testing

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/layout"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

type taggedRect struct {
	tag  layout.Tag
	rect graphics.Rect
}

// RecordingSurface is an engine surface that serializes every canvas
// operation instead of rasterizing, and hit tests against the tagged
// regions of the last presented paint.
type RecordingSurface struct {
	canvas    serializingCanvas
	regions   []taggedRect
	ops       []DisplayOp
	presented []taggedRect
	frames    int
}

// NewRecordingSurface returns an empty recording surface.
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{}
}

// Begin starts recording a paint.
func (s *RecordingSurface) Begin(size graphics.Size) graphics.Canvas {
	s.canvas = serializingCanvas{size: size, surface: s}
	s.regions = s.regions[:0]
	return &s.canvas
}

// Present publishes the recorded operations and tagged regions.
func (s *RecordingSurface) Present() error {
	s.ops = s.canvas.ops
	s.presented = slices.Clone(s.regions)
	s.frames++
	return nil
}

// HitTest returns the topmost presented tagged region containing position.
func (s *RecordingSurface) HitTest(position graphics.Offset) (layout.Tag, bool) {
	for i := len(s.presented) - 1; i >= 0; i-- {
		if s.presented[i].rect.Contains(position) {
			return s.presented[i].tag, true
		}
	}
	return 0, false
}

// DisplayOps returns the operations of the last presented paint.
func (s *RecordingSurface) DisplayOps() []DisplayOp {
	return s.ops
}

// Frames returns the number of presented paints.
func (s *RecordingSurface) Frames() int {
	return s.frames
}

// serializingCanvas implements graphics.Canvas and records ops as DisplayOp.
type serializingCanvas struct {
	ops     []DisplayOp
	size    graphics.Size
	surface *RecordingSurface
}

// RecordTag forwards a tagged region to the surface and records it.
func (c *serializingCanvas) RecordTag(tag layout.Tag, rect graphics.Rect) {
	if c.surface != nil {
		c.surface.regions = append(c.surface.regions, taggedRect{tag: tag, rect: rect})
	}
	c.ops = append(c.ops, DisplayOp{
		Op:     "tag",
		Params: sortedMap("tag", uint64(tag), "rect", serializeRect(rect)),
	})
}

func (c *serializingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: sortedMap("color", serializeColor(color)),
	})
}

func (c *serializingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "drawRect",
		Params: sortedMap("rect", serializeRect(rect), "color", serializeColor(paint.Color)),
	})
}

func (c *serializingCanvas) DrawRRect(rect graphics.Rect, radius float64, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawRRect",
		Params: sortedMap(
			"rect", serializeRect(rect),
			"radius", round2(radius),
			"color", serializeColor(paint.Color),
		),
	})
}

func (c *serializingCanvas) DrawRectShadow(rect graphics.Rect, radius float64, shadow graphics.BoxShadow) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawRectShadow",
		Params: sortedMap(
			"rect", serializeRect(rect),
			"radius", round2(radius),
			"color", serializeColor(shadow.Color),
			"blur", round2(shadow.BlurRadius),
		),
	})
}

func (c *serializingCanvas) DrawText(text *graphics.TextLayout, position graphics.Offset, color graphics.Color) {
	content := ""
	if text != nil {
		content = text.Text
	}
	c.ops = append(c.ops, DisplayOp{
		Op: "drawText",
		Params: sortedMap(
			"text", content,
			"x", round2(position.X),
			"y", round2(position.Y),
			"color", serializeColor(color),
		),
	})
}

func (c *serializingCanvas) Size() graphics.Size {
	return c.size
}

// --- Serialization helpers ---

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
// JSON marshaling sorts the keys, so snapshots are stable.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String formats the op with its parameters in key order, for test failure
// messages.
func (op DisplayOp) String() string {
	s := op.Op + "("
	for i, k := range sortedKeys(op.Params) {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%v", k, op.Params[k])
	}
	return s + ")"
}
