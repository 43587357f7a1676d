// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"image"
)

// VideoFrame represents a decoded video frame with timing information.
type VideoFrame struct {
	Image       image.Image
	TimestampMs int
	Duration    int // Duration in milliseconds
}

// VideoDecoder abstracts video decoding operations.
type VideoDecoder interface {
	// ReadFrames reads and decodes all frames from a video file.
	// The whole video is decoded in one synchronous pass.
	ReadFrames(ctx context.Context, path string) ([]VideoFrame, error)

	// Close releases decoder resources.
	Close()
}

// VideoInfo describes the first video track of a container.
type VideoInfo struct {
	Codec       string
	Width       int
	Height      int
	SampleCount int // 0 when unknown
	DurationMs  int
	Fragmented  bool
}

// VideoProbe inspects a video container without decoding frames.
type VideoProbe interface {
	// Probe returns information about the video track in the file at path.
	Probe(path string) (VideoInfo, error)
}
