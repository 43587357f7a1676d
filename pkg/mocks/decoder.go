// Package mocks provides func-field mock implementations of the ports for tests.
package mocks

import (
	"context"
	"image"
	"sync"

	"github.com/user/pinframe/pkg/ports"
)

// VideoDecoder is a mock implementation of ports.VideoDecoder.
type VideoDecoder struct {
	mu sync.Mutex

	ReadFramesFunc func(ctx context.Context, path string) ([]ports.VideoFrame, error)

	Videos map[string][]ports.VideoFrame // served by path when ReadFramesFunc is nil
	Calls  []string
	Closed bool
}

// NewVideoDecoder creates a decoder serving blank frames of the given counts.
func NewVideoDecoder(frameCounts map[string]int, width, height int) *VideoDecoder {
	videos := make(map[string][]ports.VideoFrame, len(frameCounts))
	for path, n := range frameCounts {
		videos[path] = BlankFrames(n, width, height)
	}
	return &VideoDecoder{Videos: videos}
}

func (m *VideoDecoder) ReadFrames(ctx context.Context, path string) ([]ports.VideoFrame, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, path)
	m.mu.Unlock()

	if m.ReadFramesFunc != nil {
		return m.ReadFramesFunc(ctx, path)
	}
	return m.Videos[path], nil
}

func (m *VideoDecoder) Close() {
	m.Closed = true
}

var _ ports.VideoDecoder = (*VideoDecoder)(nil)

// BlankFrames returns n blank frames of the given size, 40 ms apart.
func BlankFrames(n, width, height int) []ports.VideoFrame {
	frames := make([]ports.VideoFrame, n)
	for i := range frames {
		frames[i] = ports.VideoFrame{
			Image:       image.NewRGBA(image.Rect(0, 0, width, height)),
			TimestampMs: i * 40,
			Duration:    40,
		}
	}
	return frames
}

// VideoProbe is a mock implementation of ports.VideoProbe.
type VideoProbe struct {
	ProbeFunc func(path string) (ports.VideoInfo, error)
}

func (m *VideoProbe) Probe(path string) (ports.VideoInfo, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return ports.VideoInfo{Codec: "h264", Width: 64, Height: 48}, nil
}

var _ ports.VideoProbe = (*VideoProbe)(nil)
