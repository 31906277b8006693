package cmd

import (
	"fmt"

	"github.com/go-drift/arbor/pkg/raster"
)

func init() {
	RegisterCommand(&Command{
		Name:  "layout",
		Short: "Print the laid-out widget tree of an application",
		Long: `Layout builds a showcase application, runs one frame and prints every
widget with its offset and size.

Flags:
  --config <file>     Configuration file (.yaml, .yml or .toml)
  --app <name>        Application to lay out (see "arbor demos")
  --font <file>       TrueType or OpenType font for text
  --width <px>        Window width
  --height <px>       Window height`,
		Usage: "arbor layout [--app name] [--width px] [--height px]",
		Run:   runLayout,
	})
}

func runLayout(args []string) error {
	var o overrides
	for i := 0; i < len(args); i++ {
		skip, ok, err := o.parse(args, i)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("unknown flag %q", args[i])
		}
		i += skip
	}

	s, err := loadSession(o)
	if err != nil {
		return err
	}
	h, err := s.host()
	if err != nil {
		return err
	}
	id := h.CreateWindow(s.cfg.Window.Title, s.cfg.WindowSize(), raster.New())
	if err := h.Frame(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s (%gx%g)\n", s.demo.Name, s.cfg.Window.Width, s.cfg.Window.Height)
	return h.DumpTree(stdout, id)
}
