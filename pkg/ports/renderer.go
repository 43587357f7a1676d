package ports

import (
	"image"
	"image/color"
	"strings"
)

// Renderer abstracts image processing operations.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image

	// FitImage scales an image down to fit within maxWidth x maxHeight,
	// preserving its aspect ratio. Images that already fit are returned as is.
	FitImage(img image.Image, maxWidth, maxHeight int) image.Image
}

// Canvas provides drawing operations for compositing images.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// DrawText draws text at the specified position.
	// y is the vertical center of the text line.
	DrawText(text string, x, y int, style TextStyle)

	// MeasureText returns the width and height of the text.
	MeasureText(text string, style TextStyle) (width, height float64)

	// DrawCircle draws a filled circle.
	DrawCircle(x, y int, radius float64, c color.Color)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	FormatWebP
)

// String returns the lower-case name of the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// MIMEType returns the media type of the format.
func (f ImageFormat) MIMEType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// ParseImageFormat parses a format name. Unknown names map to FormatJPEG.
func ParseImageFormat(s string) ImageFormat {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG
	case "webp":
		return FormatWebP
	default:
		return FormatJPEG
	}
}
