package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/pinframe/pkg/ports"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.OutputDir != "annotations" {
		t.Errorf("expected output dir annotations, got %q", cfg.OutputDir)
	}
	if cfg.FrameJump != 5 {
		t.Errorf("expected frame jump 5, got %d", cfg.FrameJump)
	}
	if len(cfg.Extensions) != 1 || cfg.Extensions[0] != ".mp4" {
		t.Errorf("unexpected extensions %v", cfg.Extensions)
	}
	if cfg.Marker.Radius != 2 {
		t.Errorf("expected marker radius 2, got %v", cfg.Marker.Radius)
	}
	if cfg.ImageFormat() != ports.FormatJPEG {
		t.Errorf("expected jpeg transport, got %s", cfg.ImageFormat())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeConfig(t, "pinframe.yaml", `
frame_jump: 10
output_dir: labels
extensions: [".mp4", ".MOV"]
marker:
  radius: 4
keys:
  quit: ["q"]
display:
  format: webp
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.FrameJump != 10 {
		t.Errorf("expected frame jump 10, got %d", cfg.FrameJump)
	}
	if cfg.OutputDir != "labels" {
		t.Errorf("expected output dir labels, got %q", cfg.OutputDir)
	}
	if len(cfg.Extensions) != 2 {
		t.Errorf("expected 2 extensions, got %v", cfg.Extensions)
	}
	if cfg.Marker.Radius != 4 {
		t.Errorf("expected radius 4, got %v", cfg.Marker.Radius)
	}
	// Unset fields keep defaults.
	if cfg.Marker.ExactColor != "#ff0000" {
		t.Errorf("expected default exact color, got %q", cfg.Marker.ExactColor)
	}
	if got := cfg.Keys["quit"]; len(got) != 1 || got[0] != "q" {
		t.Errorf("expected quit bound to q, got %v", got)
	}
	if cfg.ImageFormat() != ports.FormatWebP {
		t.Errorf("expected webp, got %s", cfg.ImageFormat())
	}
}

func TestLoadFromFile_TOML(t *testing.T) {
	path := writeConfig(t, "pinframe.toml", `
frame_jump = 3
ffmpeg_path = "/opt/ffmpeg/bin/ffmpeg"

[window]
chrome_path = "/usr/bin/chromium"

[text]
font_size = 18.0
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.FrameJump != 3 {
		t.Errorf("expected frame jump 3, got %d", cfg.FrameJump)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("unexpected ffmpeg path %q", cfg.FFmpegPath)
	}
	if cfg.Window.ChromePath != "/usr/bin/chromium" {
		t.Errorf("unexpected chrome path %q", cfg.Window.ChromePath)
	}
	if cfg.Text.FontSize != 18 {
		t.Errorf("expected font size 18, got %v", cfg.Text.FontSize)
	}
	if cfg.Window.Title != "pinframe" {
		t.Errorf("expected default title, got %q", cfg.Window.Title)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		contains string
	}{
		{"zero jump", "c.yaml", "frame_jump: 0\n", "frame_jump"},
		{"key conflict", "c.yaml", "keys:\n  quit: [\"d\"]\n", "bound to both"},
		{"bad format", "c.toml", "[display]\nformat = \"gif\"\n", "display.format"},
		{"malformed", "c.yaml", "frame_jump: [\n", "parse config"},
		{"unsupported", "c.ini", "frame_jump=1\n", "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error containing %q, got %v", tt.contains, err)
			}
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}},
		{"00ff00", color.NRGBA{0, 255, 0, 255}},
		{"#FFF", color.NRGBA{255, 255, 255, 255}},
		{"#00000080", color.NRGBA{0, 0, 0, 128}},
	}

	for _, tt := range tests {
		got, ok := ParseColor(tt.input).(color.NRGBA)
		if !ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#12", "#gggggg"} {
		if ParseColor(bad) != color.Black {
			t.Errorf("ParseColor(%q) should fall back to black", bad)
		}
	}
}
