package ports

import (
	"context"
	"image"
)

// InputKind identifies the type of an input event.
type InputKind int

const (
	// InputKey is a key press.
	InputKey InputKind = iota
	// InputClick is a pointer button press on the displayed frame.
	InputClick
	// InputClosed is sent once when the window goes away.
	InputClosed
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonPrimary MouseButton = iota
	ButtonMiddle
	ButtonSecondary
)

// InputEvent is a single user input event.
// Click coordinates are in pixels of the last image passed to Show.
type InputEvent struct {
	Kind   InputKind
	Key    string
	Button MouseButton
	X      int
	Y      int
}

// WindowOptions configures the display window.
type WindowOptions struct {
	Title      string
	Width      int
	Height     int
	ChromePath string
	Format     ImageFormat // Transport format for frames pushed to the window
	Quality    int         // Lossy transport quality (0-100)
	Headless   bool        // no visible window; used by tests
}

// Window abstracts the interactive display surface.
type Window interface {
	// Open creates the window.
	Open(ctx context.Context, opts WindowOptions) error

	// Show replaces the displayed image.
	Show(img image.Image) error

	// Events returns the channel of input events.
	Events() <-chan InputEvent

	// Close destroys the window.
	Close() error
}
