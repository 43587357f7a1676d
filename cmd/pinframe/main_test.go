package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/user/pinframe/pkg/config"
	"github.com/user/pinframe/pkg/ports"
)

type parsed struct {
	input    string
	inputErr error
	cfg      config.Config
	cfgErr   error
}

// parse runs the app's flag parsing with an action that captures the
// resolved input directory and configuration.
func parse(t *testing.T, args ...string) parsed {
	t.Helper()

	var p parsed
	app := newApp()
	app.Action = func(c *cli.Context) error {
		p.input, p.inputErr = inputDir(c)
		p.cfg, p.cfgErr = loadConfig(c)
		return nil
	}
	if err := app.Run(append([]string{"pinframe"}, args...)); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
	return p
}

func TestInputDir(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"positional", []string{"/videos"}, "/videos", false},
		{"flag", []string{"--input", "/videos"}, "/videos", false},
		{"short flag", []string{"-i", "/videos"}, "/videos", false},
		{"positional wins", []string{"-i", "/other", "/videos"}, "/videos", false},
		{"missing", nil, "", true},
		{"too many", []string{"/a", "/b"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parse(t, tt.args...)
			if (p.inputErr != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, p.inputErr)
			}
			if p.input != tt.want {
				t.Errorf("expected %q, got %q", tt.want, p.input)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	p := parse(t, "/videos")
	if p.cfgErr != nil {
		t.Fatalf("loadConfig failed: %v", p.cfgErr)
	}
	if !reflect.DeepEqual(p.cfg, config.Defaults()) {
		t.Errorf("expected defaults, got %+v", p.cfg)
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pinframe.yaml")
	data := "frame_jump: 3\noutput_dir: labels\nffmpeg_path: /opt/ffmpeg\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	p := parse(t,
		"--config", path,
		"--frame-jump", "10",
		"--ext", ".mov", "--ext", ".mkv",
		"--chrome-path", "/opt/chrome",
		"/videos",
	)
	if p.cfgErr != nil {
		t.Fatalf("loadConfig failed: %v", p.cfgErr)
	}
	cfg := p.cfg

	if cfg.FrameJump != 10 {
		t.Errorf("expected flag frame jump 10, got %d", cfg.FrameJump)
	}
	if cfg.OutputDir != "labels" || cfg.FFmpegPath != "/opt/ffmpeg" {
		t.Errorf("expected file values kept, got %q %q", cfg.OutputDir, cfg.FFmpegPath)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{".mov", ".mkv"}) {
		t.Errorf("expected extensions from flags, got %v", cfg.Extensions)
	}
	if cfg.Window.ChromePath != "/opt/chrome" {
		t.Errorf("expected chrome path from flag, got %q", cfg.Window.ChromePath)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	if p := parse(t, "--frame-jump", "0", "/videos"); p.cfgErr == nil {
		t.Error("expected error for frame jump 0")
	}
	if p := parse(t, "--config", "/nonexistent/pinframe.yaml", "/videos"); p.cfgErr == nil {
		t.Error("expected error for missing config file")
	}
}

func TestOverlayStyle(t *testing.T) {
	cfg := config.Defaults()
	cfg.Display.MaxWidth = 800

	style := overlayStyle(cfg)

	if style.MarkerRadius != 2 || style.MaxWidth != 800 || style.Margin != 10 {
		t.Errorf("unexpected style %+v", style)
	}
	if r, g, _, _ := style.ExactColor.RGBA(); r != 0xffff || g != 0 {
		t.Errorf("expected red exact marker, got %v", style.ExactColor)
	}
	if cfg.ImageFormat() != ports.FormatJPEG {
		t.Errorf("expected jpeg transport, got %v", cfg.ImageFormat())
	}
}
