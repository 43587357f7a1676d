// Package overlay draws the annotation overlay onto a video frame.
//
// The composed image shows the video name in the top-left corner, the
// current frame jump in the bottom-left corner, the 1-based frame position in
// the bottom-right corner and a filled marker at the resolved annotation
// point. Text is drawn at display resolution so it stays legible regardless
// of the source video size.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/user/pinframe/pkg/ports"
	"github.com/user/pinframe/pkg/session"
)

// ErrNoImage is returned when a frame has no image to draw on.
var ErrNoImage = errors.New("overlay: frame has no image")

// Style configures the overlay.
type Style struct {
	MarkerRadius   float64
	ExactColor     color.Color // marker on a frame with its own point
	InheritedColor color.Color // marker carried over from an earlier frame

	TextColor color.Color
	FontSize  float64
	FontPath  string
	Margin    int

	// Frames larger than MaxWidth x MaxHeight are scaled down for display.
	// Zero leaves that axis unbounded.
	MaxWidth  int
	MaxHeight int
}

// DefaultStyle returns the classic look: white text, a radius 2 marker,
// red when exact and green when inherited.
func DefaultStyle() Style {
	return Style{
		MarkerRadius:   2,
		ExactColor:     color.RGBA{R: 255, A: 255},
		InheritedColor: color.RGBA{G: 255, A: 255},
		TextColor:      color.White,
		FontSize:       13,
		Margin:         10,
	}
}

// Frame is everything the overlay needs to know about the current view.
type Frame struct {
	Image      image.Image
	Name       string
	Index      int // 0-based
	Count      int
	FrameJump  int
	Annotation session.Resolution
}

// Result is a composed display image.
type Result struct {
	Image image.Image

	// ScaleX and ScaleY are display pixels per frame pixel on each axis.
	ScaleX float64
	ScaleY float64

	frameWidth  int
	frameHeight int
}

// ToFrame maps a point in display space back to frame space, clamped to
// the frame bounds.
func (r Result) ToFrame(x, y int) (int, int) {
	fx := int(math.Floor(float64(x) / axisScale(r.ScaleX)))
	fy := int(math.Floor(float64(y) / axisScale(r.ScaleY)))
	return clamp(fx, r.frameWidth), clamp(fy, r.frameHeight)
}

func axisScale(s float64) float64 {
	if s <= 0 {
		return 1
	}
	return s
}

func clamp(v, size int) int {
	if v < 0 || size <= 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}

// Composer renders overlays with a ports.Renderer.
type Composer struct {
	renderer ports.Renderer
	style    Style
}

// NewComposer creates a Composer.
func NewComposer(renderer ports.Renderer, style Style) *Composer {
	if style.MarkerRadius <= 0 {
		style.MarkerRadius = DefaultStyle().MarkerRadius
	}
	if style.FontSize <= 0 {
		style.FontSize = DefaultStyle().FontSize
	}
	if style.TextColor == nil {
		style.TextColor = DefaultStyle().TextColor
	}
	if style.ExactColor == nil {
		style.ExactColor = DefaultStyle().ExactColor
	}
	if style.InheritedColor == nil {
		style.InheritedColor = DefaultStyle().InheritedColor
	}
	return &Composer{renderer: renderer, style: style}
}

// Compose draws the overlay for f.
func (c *Composer) Compose(f Frame) (Result, error) {
	if f.Image == nil {
		return Result{}, ErrNoImage
	}

	src := f.Image.Bounds()
	if src.Empty() {
		return Result{}, fmt.Errorf("overlay: empty frame %dx%d", src.Dx(), src.Dy())
	}

	display := f.Image
	if c.style.MaxWidth > 0 || c.style.MaxHeight > 0 {
		display = c.renderer.FitImage(f.Image, c.style.MaxWidth, c.style.MaxHeight)
	}
	db := display.Bounds()
	scaleX := float64(db.Dx()) / float64(src.Dx())
	scaleY := float64(db.Dy()) / float64(src.Dy())

	canvas := c.renderer.CreateCanvas(db.Dx(), db.Dy(), color.Black)
	canvas.DrawImage(display, 0, 0)

	style := ports.TextStyle{
		FontSize: c.style.FontSize,
		FontPath: c.style.FontPath,
		Color:    c.style.TextColor,
		Align:    ports.AlignLeft,
	}
	_, lineHeight := canvas.MeasureText("Frame", style)
	top := c.style.Margin + int(math.Ceil(lineHeight/2))
	bottom := db.Dy() - c.style.Margin - int(math.Ceil(lineHeight/2))

	canvas.DrawText(f.Name, c.style.Margin, top, style)
	canvas.DrawText(fmt.Sprintf("Frame jump: %d", f.FrameJump), c.style.Margin, bottom, style)

	right := style
	right.Align = ports.AlignRight
	canvas.DrawText(fmt.Sprintf("Frame: %d of %d", f.Index+1, f.Count), db.Dx()-c.style.Margin, bottom, right)

	if f.Annotation.Found {
		marker := c.style.InheritedColor
		if f.Annotation.Exact {
			marker = c.style.ExactColor
		}
		x := int(math.Round(float64(f.Annotation.Point.X) * scaleX))
		y := int(math.Round(float64(f.Annotation.Point.Y) * scaleY))
		canvas.DrawCircle(x, y, c.style.MarkerRadius, marker)
	}

	return Result{
		Image:       canvas.ToImage(),
		ScaleX:      scaleX,
		ScaleY:      scaleY,
		frameWidth:  src.Dx(),
		frameHeight: src.Dy(),
	}, nil
}
