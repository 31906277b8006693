package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-drift/arbor/pkg/tree"
)

// DumpTree writes one line per widget under root with its type, id, size
// and parent-relative position, indented by depth.
func DumpTree(w io.Writer, t *Tree, root tree.ID) error {
	var err error
	t.Walk(root, func(id tree.ID, widget Widget, depth int) bool {
		size, _ := t.Size(id)
		_, err = fmt.Fprintf(w, "%s%T %v size=%v pos=%v\n",
			strings.Repeat("  ", depth), widget, id, size, t.Position(id))
		return err == nil
	})
	return err
}
