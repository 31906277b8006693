package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-drift/arbor/cmd/arbor/internal/config"
	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/layout"
	"github.com/go-drift/arbor/pkg/text"
	"github.com/go-drift/arbor/showcase"
)

// overrides holds the flags shared by render and layout. Zero values leave
// the configuration untouched.
type overrides struct {
	configPath string
	app        string
	font       string
	width      float64
	height     float64
}

// parse consumes the flag at args[i] if it is one of the shared flags.
func (o *overrides) parse(args []string, i int) (int, bool, error) {
	for _, name := range []string{"--config", "--app", "--font", "--width", "--height"} {
		value, skip, ok, err := flagValue(args, i, name)
		if err != nil {
			return 0, true, err
		}
		if !ok {
			continue
		}
		switch name {
		case "--config":
			o.configPath = value
		case "--app":
			o.app = value
		case "--font":
			o.font = value
		case "--width", "--height":
			n, err := strconv.ParseFloat(value, 64)
			if err != nil || n <= 0 {
				return 0, true, fmt.Errorf("%s must be a positive number, got %q", name, value)
			}
			if name == "--width" {
				o.width = n
			} else {
				o.height = n
			}
		}
		return skip, true, nil
	}
	return 0, false, nil
}

// session is a resolved configuration and the demo it selects.
type session struct {
	cfg  *config.Config
	demo showcase.Demo
}

// loadSession reads the configuration, applies flag overrides and fills
// window defaults from the selected demo.
func loadSession(o overrides) (*session, error) {
	var cfg *config.Config
	var err error
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		var cwd string
		cwd, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg, err = config.LoadOptional(cwd)
	}
	if err != nil {
		return nil, err
	}

	if o.app != "" {
		cfg.App = o.app
	}
	if o.font != "" {
		cfg.Text.FontPath = o.font
	}
	if o.width > 0 {
		cfg.Window.Width = o.width
	}
	if o.height > 0 {
		cfg.Window.Height = o.height
	}

	name := cfg.App
	if name == "" {
		name = config.DefaultApp
	}
	demo, ok := showcase.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown app %q (available: %v)", name, showcase.Names())
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = demo.Title
	}
	if cfg.Window.Width == 0 {
		cfg.Window.Width = demo.Size.Width
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = demo.Size.Height
	}

	resolved, err := config.Resolve(cfg)
	if err != nil {
		return nil, err
	}
	return &session{cfg: resolved, demo: demo}, nil
}

// measurer returns the text measurer the configuration selects.
func (s *session) measurer() (layout.TextMeasurer, error) {
	if s.cfg.Text.FontPath == "" {
		return text.Default(), nil
	}
	m, err := text.LoadFile(s.cfg.Text.FontPath, s.cfg.Text.FontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load font %s: %w", s.cfg.Text.FontPath, err)
	}
	return m, nil
}

// host builds the selected demo with the configured measurer.
func (s *session) host(opts ...engine.Option) (showcase.Host, error) {
	m, err := s.measurer()
	if err != nil {
		return nil, err
	}
	return s.demo.New(append([]engine.Option{engine.WithTextMeasurer(m)}, opts...)...), nil
}
