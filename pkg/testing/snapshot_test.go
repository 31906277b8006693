package testing_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/graphics"
	arbortest "github.com/go-drift/arbor/pkg/testing"
	"github.com/go-drift/arbor/pkg/tree"
	"github.com/go-drift/arbor/pkg/widgets"
)

// fakeT records failures instead of failing the real test.
type fakeT struct {
	name   string
	errors []string
	fatal  bool
}

func (f *fakeT) Helper() {}

func (f *fakeT) Fatalf(format string, args ...any) {
	f.fatal = true
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeT) Errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *fakeT) Name() string { return f.name }

func mountPadded(t *testing.T, text string) *arbortest.WidgetTester {
	t.Helper()
	tester := arbortest.NewWidgetTesterWithT(t)
	err := tester.Mount(func(ctx *engine.WidgetContext[any]) tree.ID {
		label := ctx.CreateWidget(widgets.NewLabel(text))
		box := ctx.CreateWidget(widgets.NewFillBox(graphics.Size{Width: 20, Height: 20}, red))
		row := ctx.CreateWidget(widgets.Row(widgets.FlexAlignMiddle,
			widgets.NonFlex(label),
			widgets.NonFlex(box),
		))
		return ctx.CreateWidget(widgets.NewPadding(graphics.EdgeInsetsAll(8), row))
	})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return tester
}

func TestCaptureSnapshot_Tree(t *testing.T) {
	snap := mountPadded(t, "hi").CaptureSnapshot()

	root := snap.WidgetTree
	if root == nil || root.ID != "Padding#0" {
		t.Fatalf("root node = %+v, want Padding#0", root)
	}
	if len(root.Children) != 1 {
		t.Fatalf("padding has %d children, want 1", len(root.Children))
	}
	row := root.Children[0]
	if row.Type != "Flex" || row.Offset != [2]float64{8, 8} {
		t.Errorf("row node = %s at %v, want Flex at [8 8]", row.Type, row.Offset)
	}
	if row.Properties["direction"] != "horizontal" || row.Properties["align"] != "middle" {
		t.Errorf("row props = %v", row.Properties)
	}
	if len(row.Children) != 2 {
		t.Fatalf("row has %d children, want 2", len(row.Children))
	}
	label, box := row.Children[0], row.Children[1]
	if label.Properties["text"] != "hi" {
		t.Errorf("label props = %v", label.Properties)
	}
	// The 32px label line is the tallest child, so the box is centered in it.
	if box.Offset != [2]float64{14, 6} {
		t.Errorf("box offset = %v, want [14 6]", box.Offset)
	}
	if len(snap.DisplayOps) == 0 || snap.DisplayOps[0].Op != "clear" {
		t.Errorf("display ops = %v, want a leading clear", snap.DisplayOps)
	}
}

func TestSnapshot_MatchesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots", "padded.json")
	snap := mountPadded(t, "hi").CaptureSnapshot()
	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile: %v", err)
	}

	same := &fakeT{name: t.Name()}
	mountPadded(t, "hi").CaptureSnapshot().MatchesFile(same, path)
	if len(same.errors) != 0 {
		t.Errorf("identical snapshot mismatched: %v", same.errors)
	}

	changed := &fakeT{name: t.Name()}
	mountPadded(t, "hello").CaptureSnapshot().MatchesFile(changed, path)
	if len(changed.errors) != 1 || changed.fatal {
		t.Fatalf("changed snapshot errors = %v, fatal = %v", changed.errors, changed.fatal)
	}
	if !strings.Contains(changed.errors[0], "ARBOR_UPDATE_SNAPSHOTS=1") {
		t.Errorf("mismatch message lacks update instructions: %s", changed.errors[0])
	}
	if !strings.Contains(changed.errors[0], `"text": "hello"`) {
		t.Errorf("diff does not show the new label text:\n%s", changed.errors[0])
	}
}

func TestSnapshot_MissingFile(t *testing.T) {
	ft := &fakeT{name: "TestMissing"}
	snap := mountPadded(t, "hi").CaptureSnapshot()
	snap.MatchesFile(ft, filepath.Join(t.TempDir(), "absent.json"))
	if !ft.fatal || !strings.Contains(ft.errors[0], "snapshot file missing") {
		t.Errorf("errors = %v, want a fatal missing-file report", ft.errors)
	}
}

func TestSnapshot_UpdateEnv(t *testing.T) {
	t.Setenv(arbortest.UpdateSnapshotsEnv, "1")
	path := filepath.Join(t.TempDir(), "fresh.json")
	ft := &fakeT{name: t.Name()}
	mountPadded(t, "hi").CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.errors) != 0 {
		t.Fatalf("update mode reported errors: %v", ft.errors)
	}

	t.Setenv(arbortest.UpdateSnapshotsEnv, "")
	mountPadded(t, "hi").CaptureSnapshot().MatchesFile(ft, path)
	if len(ft.errors) != 0 {
		t.Errorf("written snapshot does not match: %v", ft.errors)
	}
}
