package mocks

import (
	"context"
	"image"
	"sync"

	"github.com/user/pinframe/pkg/ports"
)

// Window is a mock implementation of ports.Window.
// Events are scripted up front; ShowHook runs after every Show so tests can
// inject events that depend on what was displayed.
type Window struct {
	mu sync.Mutex

	OpenFunc func(ctx context.Context, opts ports.WindowOptions) error
	ShowFunc func(img image.Image) error
	ShowHook func(n int)

	events chan ports.InputEvent
	Shown  []image.Image
	Opened bool
	Closed bool
}

// NewWindow creates a mock window with room for buffered events.
func NewWindow(events ...ports.InputEvent) *Window {
	w := &Window{events: make(chan ports.InputEvent, 256)}
	for _, ev := range events {
		w.events <- ev
	}
	return w
}

// Push queues an event.
func (m *Window) Push(ev ports.InputEvent) {
	m.events <- ev
}

// Key queues a key press.
func (m *Window) Key(key string) {
	m.Push(ports.InputEvent{Kind: ports.InputKey, Key: key})
}

// Click queues a pointer press.
func (m *Window) Click(button ports.MouseButton, x, y int) {
	m.Push(ports.InputEvent{Kind: ports.InputClick, Button: button, X: x, Y: y})
}

func (m *Window) Open(ctx context.Context, opts ports.WindowOptions) error {
	m.Opened = true
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, opts)
	}
	return nil
}

func (m *Window) Show(img image.Image) error {
	m.mu.Lock()
	m.Shown = append(m.Shown, img)
	n := len(m.Shown)
	m.mu.Unlock()

	if m.ShowFunc != nil {
		if err := m.ShowFunc(img); err != nil {
			return err
		}
	}
	if m.ShowHook != nil {
		m.ShowHook(n)
	}
	return nil
}

func (m *Window) Events() <-chan ports.InputEvent {
	return m.events
}

func (m *Window) Close() error {
	m.Closed = true
	return nil
}

// ShowCount returns how many images were shown.
func (m *Window) ShowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Shown)
}

var _ ports.Window = (*Window)(nil)
