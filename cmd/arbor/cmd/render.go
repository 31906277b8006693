package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/raster"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render an application to a PNG image",
		Long: `Render builds a showcase application into an offscreen window, replays
the script from the configuration file and writes the final frame as a PNG.

Settings are read from --config, or from arbor.yaml, arbor.yml or
arbor.toml in the current directory. Flags override the file.

Flags:
  --config <file>     Configuration file (.yaml, .yml or .toml)
  --app <name>        Application to render (see "arbor demos")
  --out <file>        Output PNG path
  --trace <file>      Write the frame timeline as JSON
  --font <file>       TrueType or OpenType font for text
  --width <px>        Window width
  --height <px>       Window height`,
		Usage: "arbor render [--app name] [--out file] [--config file]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	var o overrides
	var out, trace string

	for i := 0; i < len(args); i++ {
		skip, ok, err := o.parse(args, i)
		if err != nil {
			return err
		}
		if ok {
			i += skip
			continue
		}
		if value, skip, ok, err := flagValue(args, i, "--out"); ok {
			if err != nil {
				return err
			}
			out = value
			i += skip
			continue
		}
		if value, skip, ok, err := flagValue(args, i, "--trace"); ok {
			if err != nil {
				return err
			}
			trace = value
			i += skip
			continue
		}
		return fmt.Errorf("unknown flag %q", args[i])
	}

	s, err := loadSession(o)
	if err != nil {
		return err
	}
	if out != "" {
		s.cfg.Output.Path = out
	}
	if trace != "" {
		s.cfg.Output.Trace = trace
	}

	frames := engine.NewFrameTraceBuffer(0, 0)
	h, err := s.host(engine.WithFrameTrace(frames))
	if err != nil {
		return err
	}
	surface := raster.New()
	id := h.CreateWindow(s.cfg.Window.Title, s.cfg.WindowSize(), surface)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := h.Run(ctx, engine.NewScript(s.cfg.Events(id)...)); err != nil {
		return fmt.Errorf("run %s: %w", s.demo.Name, err)
	}
	elapsed := time.Since(start)

	if err := surface.SavePNG(s.cfg.Output.Path); err != nil {
		return err
	}
	if s.cfg.Output.Trace != "" {
		if err := writeTrace(s.cfg.Output.Trace, frames.Snapshot()); err != nil {
			return err
		}
	}

	sum := frames.Summary()
	fmt.Fprintf(stdout, "Rendered %s (%gx%g) in %d frames, %v\n",
		s.demo.Name, s.cfg.Window.Width, s.cfg.Window.Height, sum.Frames, elapsed.Round(time.Millisecond))
	fmt.Fprintf(stdout, "  Layout: %d steps, %d child requests, %d messages, slowest frame %.2fms\n",
		sum.LayoutSteps, sum.ChildRequests, sum.Messages, sum.Slowest.FrameMs)
	fmt.Fprintf(stdout, "  Output: %s\n", s.cfg.Output.Path)
	if s.cfg.Output.Trace != "" {
		fmt.Fprintf(stdout, "  Trace:  %s\n", s.cfg.Output.Trace)
	}
	return nil
}

func writeTrace(path string, timeline engine.FrameTimeline) error {
	data, err := json.MarshalIndent(timeline, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode frame trace: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write frame trace: %w", err)
	}
	return nil
}
