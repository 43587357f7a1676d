package overlay

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/pinframe/pkg/annotation"
	"github.com/user/pinframe/pkg/mocks"
	"github.com/user/pinframe/pkg/ports"
	"github.com/user/pinframe/pkg/session"
)

func frame(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestCompose_Text(t *testing.T) {
	renderer := &mocks.Renderer{}
	c := NewComposer(renderer, DefaultStyle())

	_, err := c.Compose(Frame{
		Image:     frame(320, 240),
		Name:      "clip.mp4",
		Index:     4,
		Count:     10,
		FrameJump: 5,
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	canvas := renderer.Last()
	if canvas.Images != 1 {
		t.Errorf("expected frame drawn once, got %d", canvas.Images)
	}
	if len(canvas.Texts) != 3 {
		t.Fatalf("expected 3 text items, got %d", len(canvas.Texts))
	}

	name, jump, pos := canvas.Texts[0], canvas.Texts[1], canvas.Texts[2]
	if name.Text != "clip.mp4" || name.X != 10 || name.Y >= 120 {
		t.Errorf("unexpected name text %+v", name)
	}
	if jump.Text != "Frame jump: 5" || jump.X != 10 || jump.Y <= 120 {
		t.Errorf("unexpected jump text %+v", jump)
	}
	if pos.Text != "Frame: 5 of 10" || pos.X != 310 || pos.Style.Align != ports.AlignRight {
		t.Errorf("unexpected position text %+v", pos)
	}
	if len(canvas.Circles) != 0 {
		t.Errorf("expected no marker without annotation, got %d", len(canvas.Circles))
	}
}

func TestCompose_MarkerColors(t *testing.T) {
	style := DefaultStyle()

	tests := []struct {
		name  string
		res   session.Resolution
		color color.Color
	}{
		{"exact", session.Resolution{Found: true, Frame: 3, Point: annotation.Point{X: 40, Y: 50}, Exact: true}, style.ExactColor},
		{"inherited", session.Resolution{Found: true, Frame: 1, Point: annotation.Point{X: 40, Y: 50}}, style.InheritedColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := &mocks.Renderer{}
			c := NewComposer(renderer, style)

			if _, err := c.Compose(Frame{Image: frame(100, 100), Index: 3, Count: 5, FrameJump: 1, Annotation: tt.res}); err != nil {
				t.Fatalf("Compose failed: %v", err)
			}

			circles := renderer.Last().Circles
			if len(circles) != 1 {
				t.Fatalf("expected one marker, got %d", len(circles))
			}
			got := circles[0]
			if got.X != 40 || got.Y != 50 || got.Radius != 2 {
				t.Errorf("unexpected marker %+v", got)
			}
			if got.Color != tt.color {
				t.Errorf("expected color %v, got %v", tt.color, got.Color)
			}
		})
	}
}

func TestCompose_Scaled(t *testing.T) {
	renderer := &mocks.Renderer{
		FitImageFunc: func(img image.Image, maxWidth, maxHeight int) image.Image {
			return frame(maxWidth, maxWidth*img.Bounds().Dy()/img.Bounds().Dx())
		},
	}
	style := DefaultStyle()
	style.MaxWidth = 500
	style.MaxHeight = 500
	c := NewComposer(renderer, style)

	res, err := c.Compose(Frame{
		Image:      frame(1000, 800),
		Count:      1,
		FrameJump:  5,
		Annotation: session.Resolution{Found: true, Point: annotation.Point{X: 200, Y: 100}, Exact: true},
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if res.ScaleX != 0.5 || res.ScaleY != 0.5 {
		t.Fatalf("expected scale 0.5, got %v x %v", res.ScaleX, res.ScaleY)
	}
	if b := res.Image.Bounds(); b.Dx() != 500 || b.Dy() != 400 {
		t.Errorf("expected 500x400 display, got %v", b)
	}
	marker := renderer.Last().Circles[0]
	if marker.X != 100 || marker.Y != 50 {
		t.Errorf("expected marker at display (100,50), got (%d,%d)", marker.X, marker.Y)
	}

	if x, y := res.ToFrame(100, 50); x != 200 || y != 100 {
		t.Errorf("ToFrame(100,50) = (%d,%d), want (200,100)", x, y)
	}
	if x, y := res.ToFrame(-5, 900); x != 0 || y != 799 {
		t.Errorf("expected clamped (0,799), got (%d,%d)", x, y)
	}
}

func TestCompose_ScaleRoundedPerAxis(t *testing.T) {
	renderer := &mocks.Renderer{
		FitImageFunc: func(image.Image, int, int) image.Image {
			// 1001x1000 fit into 500 wide rounds the height to 500.
			return frame(500, 500)
		},
	}
	style := DefaultStyle()
	style.MaxWidth = 500
	c := NewComposer(renderer, style)

	res, err := c.Compose(Frame{
		Image:      frame(1001, 1000),
		Count:      1,
		FrameJump:  1,
		Annotation: session.Resolution{Found: true, Point: annotation.Point{X: 0, Y: 998}, Exact: true},
	})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if res.ScaleY != 0.5 {
		t.Fatalf("expected vertical scale 0.5, got %v", res.ScaleY)
	}
	if x, y := res.ToFrame(0, 499); x != 0 || y != 998 {
		t.Errorf("ToFrame(0,499) = (%d,%d), want (0,998)", x, y)
	}
	if marker := renderer.Last().Circles[0]; marker.Y != 499 {
		t.Errorf("expected marker at display y 499, got %d", marker.Y)
	}
}

func TestCompose_Unscaled(t *testing.T) {
	renderer := &mocks.Renderer{
		FitImageFunc: func(image.Image, int, int) image.Image {
			t.Fatal("FitImage must not be called without bounds")
			return nil
		},
	}
	c := NewComposer(renderer, DefaultStyle())

	res, err := c.Compose(Frame{Image: frame(64, 48), Count: 1, FrameJump: 1})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if res.ScaleX != 1 || res.ScaleY != 1 {
		t.Errorf("expected scale 1, got %v x %v", res.ScaleX, res.ScaleY)
	}
	if x, y := res.ToFrame(64, 48); x != 63 || y != 47 {
		t.Errorf("expected (63,47), got (%d,%d)", x, y)
	}
}

func TestCompose_NoImage(t *testing.T) {
	c := NewComposer(&mocks.Renderer{}, DefaultStyle())
	if _, err := c.Compose(Frame{}); !errors.Is(err, ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}
