// Package testing provides a widget testing framework for arbor.
//
// # Quick Start
//
// Create a tester, mount a tree, and make assertions:
//
//	func TestMyWidget(t *testing.T) {
//	    tester := arbortest.NewWidgetTesterWithT(t)
//	    tester.SetSize(graphics.Size{Width: 200, Height: 100})
//	    tester.Mount(func(ctx *engine.WidgetContext[any]) tree.ID {
//	        return ctx.CreateWidget(widgets.NewLabel("Submit"))
//	    })
//
//	    label := tester.Find(arbortest.ByLabel("Submit")).First()
//	    if got := tester.Size(label); got.Width == 0 {
//	        t.Error("expected the label to be measured")
//	    }
//	}
//
// # Pointer Input
//
// MoveTo, Press, Release and TapAt feed pointer events through the same
// hit testing and dispatch as a real window. Events are applied
// immediately; call Pump to run the frame that drains click messages and
// repaints:
//
//	tester.TapAt(graphics.Offset{X: 10, Y: 10})
//	tester.Pump()
//	msgs := tester.Messages()
//
// # Snapshot Testing
//
// Capture and compare the laid-out tree and its paint operations:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/my_widget.snapshot.json")
//
// Update snapshots with:
//
//	ARBOR_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import arbortest "github.com/go-drift/arbor/pkg/testing"
package testing
