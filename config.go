package sprig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a Display. Zero fields take their defaults.
//
// A YAML file may set any subset:
//
//	tap_hold_delay: 600ms
//	double_tap_window: 400ms
//	theme:
//	  background: "#202020"
type Config struct {
	TapHoldDelay         time.Duration `yaml:"tap_hold_delay,omitempty"`
	DoubleTapWindow      time.Duration `yaml:"double_tap_window,omitempty"`
	DragThreshold        int           `yaml:"drag_threshold,omitempty"`
	SwipeDistance        int           `yaml:"swipe_distance,omitempty"`
	AutoHideDelay        time.Duration `yaml:"auto_hide_delay,omitempty"`
	MinThumbLength       int           `yaml:"min_thumb_length,omitempty"`
	ScrollbarThickness   int           `yaml:"scrollbar_thickness,omitempty"`
	RenderWait           time.Duration `yaml:"render_wait,omitempty"`
	KeyboardPollInterval time.Duration `yaml:"keyboard_poll_interval,omitempty"`
	Debug                bool          `yaml:"debug,omitempty"`
	Theme                Theme         `yaml:"theme,omitempty"`

	// Clock drives the scheduler. nil uses the wall clock.
	Clock Clock `yaml:"-"`
}

// Theme is the palette the stock widgets paint with.
type Theme struct {
	Background Color `yaml:"background,omitempty"`
	Foreground Color `yaml:"foreground,omitempty"`
	Accent     Color `yaml:"accent,omitempty"`
	Border     Color `yaml:"border,omitempty"`
	Scrollbar  Color `yaml:"scrollbar,omitempty"`
	TitleBar   Color `yaml:"title_bar,omitempty"`
	TitleText  Color `yaml:"title_text,omitempty"`
	KeyFace    Color `yaml:"key_face,omitempty"`
	KeyPressed Color `yaml:"key_pressed,omitempty"`
}

var defaultTheme = Theme{
	Background: Color{R: 0x20, G: 0x22, B: 0x28, A: 0xff},
	Foreground: Color{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff},
	Accent:     Color{R: 0x3d, G: 0x8b, B: 0xfd, A: 0xff},
	Border:     Color{R: 0x55, G: 0x58, B: 0x60, A: 0xff},
	Scrollbar:  Color{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xc0},
	TitleBar:   Color{R: 0x30, G: 0x50, B: 0x80, A: 0xff},
	TitleText:  ColorWhite,
	KeyFace:    Color{R: 0x40, G: 0x43, B: 0x4a, A: 0xff},
	KeyPressed: Color{R: 0x3d, G: 0x8b, B: 0xfd, A: 0xff},
}

var defaultConfig = Config{
	TapHoldDelay:         500 * time.Millisecond,
	DoubleTapWindow:      500 * time.Millisecond,
	DragThreshold:        4,
	SwipeDistance:        60,
	AutoHideDelay:        time.Second,
	MinThumbLength:       8,
	ScrollbarThickness:   4,
	RenderWait:           2 * time.Second,
	KeyboardPollInterval: 50 * time.Millisecond,
	Theme:                defaultTheme,
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config { return defaultConfig }

// LoadConfig reads a YAML configuration file. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML configuration. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if len(data) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, err
		}
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// withDefaults fills zero fields from the defaults.
func (c Config) withDefaults() Config {
	d := defaultConfig
	if c.TapHoldDelay == 0 {
		c.TapHoldDelay = d.TapHoldDelay
	}
	if c.DoubleTapWindow == 0 {
		c.DoubleTapWindow = d.DoubleTapWindow
	}
	if c.DragThreshold == 0 {
		c.DragThreshold = d.DragThreshold
	}
	if c.SwipeDistance == 0 {
		c.SwipeDistance = d.SwipeDistance
	}
	if c.AutoHideDelay == 0 {
		c.AutoHideDelay = d.AutoHideDelay
	}
	if c.MinThumbLength == 0 {
		c.MinThumbLength = d.MinThumbLength
	}
	if c.ScrollbarThickness == 0 {
		c.ScrollbarThickness = d.ScrollbarThickness
	}
	if c.RenderWait == 0 {
		c.RenderWait = d.RenderWait
	}
	if c.KeyboardPollInterval == 0 {
		c.KeyboardPollInterval = d.KeyboardPollInterval
	}
	fillColor(&c.Theme.Background, d.Theme.Background)
	fillColor(&c.Theme.Foreground, d.Theme.Foreground)
	fillColor(&c.Theme.Accent, d.Theme.Accent)
	fillColor(&c.Theme.Border, d.Theme.Border)
	fillColor(&c.Theme.Scrollbar, d.Theme.Scrollbar)
	fillColor(&c.Theme.TitleBar, d.Theme.TitleBar)
	fillColor(&c.Theme.TitleText, d.Theme.TitleText)
	fillColor(&c.Theme.KeyFace, d.Theme.KeyFace)
	fillColor(&c.Theme.KeyPressed, d.Theme.KeyPressed)
	return c
}

func fillColor(dst *Color, def Color) {
	if *dst == (Color{}) {
		*dst = def
	}
}

func (c Config) validate() error {
	switch {
	case c.TapHoldDelay < 0, c.DoubleTapWindow < 0, c.AutoHideDelay < 0,
		c.RenderWait < 0, c.KeyboardPollInterval < 0:
		return errors.New("sprig: durations must not be negative")
	case c.DragThreshold < 0, c.SwipeDistance < 0:
		return errors.New("sprig: distances must not be negative")
	case c.MinThumbLength < 0, c.ScrollbarThickness < 0:
		return errors.New("sprig: scrollbar sizes must not be negative")
	}
	return nil
}
