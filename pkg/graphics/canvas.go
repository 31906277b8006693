package graphics

// Canvas is the paint surface a widget draws into during rendering.
//
// All coordinates are absolute layout coordinates; the render traversal has
// already accumulated parent offsets into each widget's [Geometry]. The
// concrete canvas belongs to a rendering backend and can be swapped without
// affecting layout.
type Canvas interface {
	// Clear fills the entire canvas with the given color.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawRRect draws a rectangle with uniformly rounded corners.
	DrawRRect(rect Rect, radius float64, paint Paint)

	// DrawRectShadow draws a shadow around (or inside) a rectangle.
	DrawRectShadow(rect Rect, radius float64, shadow BoxShadow)

	// DrawText draws a measured text layout with its top-left corner at
	// the given position.
	DrawText(layout *TextLayout, position Offset, color Color)

	// Size returns the size of the canvas.
	Size() Size
}

// Paint describes how shapes are filled.
type Paint struct {
	Color Color
}

// PaintFill returns a fill paint of the given color.
func PaintFill(c Color) Paint {
	return Paint{Color: c}
}

// BoxShadow describes a soft shadow cast by a box.
type BoxShadow struct {
	Color      Color
	Offset     Offset
	BlurRadius float64
	// Inset draws the shadow inside the box instead of around it.
	Inset bool
}
