// Package config loads the optional arbor.yaml or arbor.toml file that
// drives the arbor CLI: window size, font, output paths and a pointer
// script replayed against the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/errors"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults applied by Resolve.
const (
	DefaultTitle    = "arbor"
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultFontSize = 13
	DefaultOutput   = "arbor.png"
	DefaultApp      = "calculator"
)

// FileNames lists the configuration files LoadOptional looks for, in order.
var FileNames = []string{"arbor.yaml", "arbor.yml", "arbor.toml"}

// Config represents an arbor configuration file.
type Config struct {
	App    string       `yaml:"app,omitempty" toml:"app,omitempty"`
	Window WindowConfig `yaml:"window" toml:"window"`
	Text   TextConfig   `yaml:"text" toml:"text"`
	Output OutputConfig `yaml:"output" toml:"output"`
	Script []Step       `yaml:"script,omitempty" toml:"script,omitempty"`
}

// WindowConfig describes the window the application is built into.
type WindowConfig struct {
	Title  string  `yaml:"title,omitempty" toml:"title,omitempty"`
	Width  float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" toml:"height,omitempty"`
}

// TextConfig selects the font used for measurement and drawing. An empty
// FontPath selects the built-in bitmap face.
type TextConfig struct {
	FontPath string  `yaml:"font,omitempty" toml:"font,omitempty"`
	FontSize float64 `yaml:"size,omitempty" toml:"size,omitempty"`
}

// OutputConfig names the files the render command writes.
type OutputConfig struct {
	Path string `yaml:"path,omitempty" toml:"path,omitempty"`
	// Trace, when set, receives the frame timeline as JSON.
	Trace string `yaml:"trace,omitempty" toml:"trace,omitempty"`
}

// Step actions.
const (
	ActionMove   = "move"
	ActionDown   = "down"
	ActionUp     = "up"
	ActionClick  = "click"
	ActionResize = "resize"
	ActionFrame  = "frame"
)

// Step is one scripted input. Steps accumulate into a batch of events that
// is handled before the next frame; a frame step closes the batch.
type Step struct {
	Action string  `yaml:"action" toml:"action"`
	X      float64 `yaml:"x,omitempty" toml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty" toml:"y,omitempty"`
	Width  float64 `yaml:"width,omitempty" toml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty" toml:"height,omitempty"`
}

// Load reads a configuration file, choosing the decoder by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("config.Load", fmt.Errorf("failed to read %s: %w", path, err))
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data in the format named by ext (".yaml", ".yml" or
// ".toml").
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, configError("config.Parse", fmt.Errorf("failed to parse yaml: %w", err))
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, configError("config.Parse", fmt.Errorf("failed to parse toml: %w", err))
		}
	default:
		return nil, configError("config.Parse", fmt.Errorf("unsupported config format %q", ext))
	}
	return &cfg, nil
}

// LoadOptional reads the first of FileNames present in dir, or returns an
// empty config when there is none.
func LoadOptional(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, configError("config.LoadOptional", err)
		}
		return Load(path)
	}
	return &Config{}, nil
}

// Resolve fills defaults and validates the result.
func Resolve(cfg *Config) (*Config, error) {
	out := *cfg
	out.Script = append([]Step(nil), cfg.Script...)

	out.App = strings.TrimSpace(out.App)
	if out.App == "" {
		out.App = DefaultApp
	}
	out.Window.Title = strings.TrimSpace(out.Window.Title)
	if out.Window.Title == "" {
		out.Window.Title = DefaultTitle
	}
	if out.Window.Width == 0 {
		out.Window.Width = DefaultWidth
	}
	if out.Window.Height == 0 {
		out.Window.Height = DefaultHeight
	}
	if out.Text.FontSize == 0 {
		out.Text.FontSize = DefaultFontSize
	}
	if out.Output.Path == "" {
		out.Output.Path = DefaultOutput
	}

	if err := out.validate(); err != nil {
		return nil, configError("config.Resolve", err)
	}
	return &out, nil
}

// WindowSize returns the configured viewport.
func (c *Config) WindowSize() graphics.Size {
	return graphics.Size{Width: c.Window.Width, Height: c.Window.Height}
}

// Events converts the script into event batches for window w. A trailing
// batch without a frame step is kept.
func (c *Config) Events(w engine.WindowID) [][]engine.Event {
	var batches [][]engine.Event
	var batch []engine.Event
	for _, step := range c.Script {
		switch step.Action {
		case ActionMove:
			batch = append(batch, engine.PointerMove(w, graphics.Offset{X: step.X, Y: step.Y}))
		case ActionDown:
			batch = append(batch, engine.PointerDown(w))
		case ActionUp:
			batch = append(batch, engine.PointerUp(w))
		case ActionClick:
			batch = append(batch,
				engine.PointerMove(w, graphics.Offset{X: step.X, Y: step.Y}),
				engine.PointerDown(w),
				engine.PointerUp(w),
			)
		case ActionResize:
			batch = append(batch, engine.Resize(w, graphics.Size{Width: step.Width, Height: step.Height}))
		case ActionFrame:
			batches = append(batches, batch)
			batch = nil
		}
	}
	if len(batch) > 0 {
		batches = append(batches, batch)
	}
	return batches
}

func (c *Config) validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size %vx%v must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Text.FontSize < 0 {
		return fmt.Errorf("font size %v must be positive", c.Text.FontSize)
	}
	for i, step := range c.Script {
		switch step.Action {
		case ActionMove, ActionDown, ActionUp, ActionClick, ActionFrame:
		case ActionResize:
			if step.Width <= 0 || step.Height <= 0 {
				return fmt.Errorf("script step %d: resize to %vx%v must be positive", i, step.Width, step.Height)
			}
		default:
			return fmt.Errorf("script step %d: unknown action %q", i, step.Action)
		}
	}
	return nil
}

func configError(op string, err error) error {
	return &errors.ArborError{
		Op:        op,
		Kind:      errors.KindConfig,
		Err:       err,
		Timestamp: time.Now(),
	}
}
