// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/pinframe/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &Canvas{dc: dc}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case ports.FormatWebP:
		if err := webp.Encode(&buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
			return nil, fmt.Errorf("encode WebP: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// FitImage scales img down to fit maxWidth x maxHeight. A non-positive bound
// leaves that axis unconstrained.
func (r *Renderer) FitImage(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 {
		maxWidth = b.Dx()
	}
	if maxHeight <= 0 {
		maxHeight = b.Dy()
	}
	if b.Dx() <= maxWidth && b.Dy() <= maxHeight {
		return img
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context

	// font currently loaded into dc; empty path means gg's built-in face
	fontPath string
	fontSize float64
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	b := img.Bounds()
	c.dc.DrawImage(img, x-b.Min.X, y-b.Min.Y)
}

// DrawText draws text with its vertical center at y.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	c.useFont(style)
	c.dc.SetColor(style.Color)

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	c.dc.DrawStringAnchored(text, float64(x), float64(y), ax, 0.5)
}

// MeasureText returns the width and height of the text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	c.useFont(style)
	return c.dc.MeasureString(text)
}

// DrawCircle draws a filled circle.
func (c *Canvas) DrawCircle(x, y int, radius float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(float64(x), float64(y), radius)
	c.dc.Fill()
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// useFont loads the style's font face unless it is already active. A font
// that fails to load leaves the current face in place.
func (c *Canvas) useFont(style ports.TextStyle) {
	if style.FontPath == "" || (style.FontPath == c.fontPath && style.FontSize == c.fontSize) {
		return
	}
	if err := c.dc.LoadFontFace(style.FontPath, style.FontSize); err != nil {
		return
	}
	c.fontPath = style.FontPath
	c.fontSize = style.FontSize
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
