// Package config provides configuration loading and management.
package config

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/user/pinframe/pkg/keymap"
	"github.com/user/pinframe/pkg/ports"
	"github.com/user/pinframe/pkg/session"
)

// Config represents the full configuration for pinframe.
type Config struct {
	// Input/Output
	OutputDir  string   `yaml:"output_dir" toml:"output_dir"`
	Extensions []string `yaml:"extensions" toml:"extensions"`
	FFmpegPath string   `yaml:"ffmpeg_path" toml:"ffmpeg_path"`

	// Navigation
	FrameJump int             `yaml:"frame_jump" toml:"frame_jump"`
	Keys      keymap.Bindings `yaml:"keys" toml:"keys"`

	// Overlay
	Marker  MarkerConfig  `yaml:"marker" toml:"marker"`
	Text    TextConfig    `yaml:"text" toml:"text"`
	Display DisplayConfig `yaml:"display" toml:"display"`

	// Window
	Window WindowConfig `yaml:"window" toml:"window"`
}

// MarkerConfig styles the annotation marker.
type MarkerConfig struct {
	Radius         float64 `yaml:"radius" toml:"radius"`
	ExactColor     string  `yaml:"exact_color" toml:"exact_color"`
	InheritedColor string  `yaml:"inherited_color" toml:"inherited_color"`
}

// TextConfig styles the overlay text.
type TextConfig struct {
	Color    string  `yaml:"color" toml:"color"`
	FontSize float64 `yaml:"font_size" toml:"font_size"`
	FontPath string  `yaml:"font_path" toml:"font_path"`
}

// DisplayConfig controls how frames are sent to the window.
// A zero MaxWidth or MaxHeight disables scaling on that axis.
type DisplayConfig struct {
	MaxWidth  int    `yaml:"max_width" toml:"max_width"`
	MaxHeight int    `yaml:"max_height" toml:"max_height"`
	Format    string `yaml:"format" toml:"format"`
	Quality   int    `yaml:"quality" toml:"quality"`
}

// WindowConfig configures the browser app window.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	ChromePath string `yaml:"chrome_path" toml:"chrome_path"`
}

// ImageFormat returns the window transport format.
func (c Config) ImageFormat() ports.ImageFormat {
	return ports.ParseImageFormat(c.Display.Format)
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputDir:  "annotations",
		Extensions: []string{".mp4"},

		FrameJump: session.DefaultFrameJump,
		Keys:      keymap.DefaultBindings(),

		Marker: MarkerConfig{
			Radius:         2,
			ExactColor:     "#ff0000",
			InheritedColor: "#00ff00",
		},
		Text: TextConfig{
			Color:    "#ffffff",
			FontSize: 13,
		},
		Display: DisplayConfig{
			MaxWidth:  1280,
			MaxHeight: 720,
			Format:    "jpeg",
			Quality:   90,
		},
		Window: WindowConfig{
			Title:  "pinframe",
			Width:  1320,
			Height: 800,
		},
	}
}

// LoadFromFile loads configuration from a YAML (.yaml, .yml) or TOML (.toml)
// file. Fields absent from the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	if c.FrameJump < 1 {
		return fmt.Errorf("frame_jump must be at least 1, got %d", c.FrameJump)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	if c.Marker.Radius <= 0 {
		return fmt.Errorf("marker.radius must be positive")
	}
	switch strings.ToLower(c.Display.Format) {
	case "jpeg", "jpg", "png", "webp":
	default:
		return fmt.Errorf("display.format must be jpeg, png or webp, got %q", c.Display.Format)
	}
	if c.Display.Quality < 1 || c.Display.Quality > 100 {
		return fmt.Errorf("display.quality must be between 1 and 100, got %d", c.Display.Quality)
	}
	if _, err := keymap.New(c.Keys); err != nil {
		return err
	}
	return nil
}

// ParseColor parses a hex color string ("#rrggbb", "#rrggbbaa" or "#rgb")
// to color.Color. Malformed input yields black.
func ParseColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.Black
	}

	var rgba [4]uint8
	for i := range rgba {
		hi, ok1 := hexValue(hex[i*2])
		lo, ok2 := hexValue(hex[i*2+1])
		if !ok1 || !ok2 {
			return color.Black
		}
		rgba[i] = hi<<4 | lo
	}

	return color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
