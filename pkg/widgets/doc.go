// Package widgets provides the stock widgets of the arbor toolkit.
//
// Layout widgets (Flex, List, Split, Padding, Center) only arrange their
// children. Display widgets (Label, FillBox, Button) paint, and FillBox and
// Button are interactive: they return a tag from Render and react to hover
// and press notifications.
//
// # Widget Construction
//
// Widgets live in a [layout.Tree] and refer to each other by id, so a parent
// is created after its children:
//
//	tr := layout.NewTree()
//	a := tr.Create(widgets.NewLabel("a"))
//	b := tr.Create(widgets.NewFillBox(graphics.Size{Height: 20}, graphics.ColorBlack))
//	row := tr.Create(widgets.Row(widgets.FlexAlignMiddle,
//	    widgets.NonFlex(a),
//	    widgets.Flexible(b, 1),
//	))
//
// Composite widgets such as Button build their own subtree through a
// [Creator].
//
// # Messages
//
// Containers accept messages through Update: FlexAppend, FlexAppendItem,
// FlexRemoveLast, ListAppend and ListRemoveLast change the child list and
// take effect on the next layout pass. Removal messages return the removed child so the
// caller can tear down its subtree. Unknown messages are ignored.
package widgets
