package mocks

import (
	"image"
	"image/color"

	"github.com/user/pinframe/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
// Canvases it creates record their draw calls.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc  func(img image.Image, width, height int) image.Image
	FitImageFunc     func(img image.Image, maxWidth, maxHeight int) image.Image

	Canvases []*Canvas
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{width: width, height: height}
	m.Canvases = append(m.Canvases, c)
	return c
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) FitImage(img image.Image, maxWidth, maxHeight int) image.Image {
	if m.FitImageFunc != nil {
		return m.FitImageFunc(img, maxWidth, maxHeight)
	}
	return img
}

// Last returns the most recently created canvas, or nil.
func (m *Renderer) Last() *Canvas {
	if len(m.Canvases) == 0 {
		return nil
	}
	return m.Canvases[len(m.Canvases)-1]
}

var _ ports.Renderer = (*Renderer)(nil)

// TextCall records a DrawText call.
type TextCall struct {
	Text  string
	X, Y  int
	Style ports.TextStyle
}

// CircleCall records a DrawCircle call.
type CircleCall struct {
	X, Y   int
	Radius float64
	Color  color.Color
}

// Canvas is a mock implementation of ports.Canvas.
type Canvas struct {
	width  int
	height int

	Images  int
	Texts   []TextCall
	Circles []CircleCall
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	m.Images++
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.Texts = append(m.Texts, TextCall{Text: text, X: x, Y: y, Style: style})
}

// MeasureText assumes 7x13 glyphs.
func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	return float64(7 * len(text)), 13
}

func (m *Canvas) DrawCircle(x, y int, radius float64, c color.Color) {
	m.Circles = append(m.Circles, CircleCall{X: x, Y: y, Radius: radius, Color: c})
}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)
