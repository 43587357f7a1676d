// Package session implements the annotation state engine: the decoded frames
// of the loaded video, its sparse point annotations, the frame cursor and the
// navigation step.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/pinframe/pkg/annotation"
	"github.com/user/pinframe/pkg/ports"
)

// ErrNoFrames is returned (wrapped in a DecodeError) when a video decodes to
// zero frames.
var ErrNoFrames = errors.New("session: video has no frames")

// DecodeError reports a video that could not be loaded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Options configures a Session.
type Options struct {
	FrameJump int // Initial frame jump (default: 5)
}

// Session owns the frames and annotation state of one video at a time.
// It is not safe for concurrent use; a single control loop drives it.
type Session struct {
	decoder ports.VideoDecoder
	logger  ports.Logger

	path   string
	frames []ports.VideoFrame
	state  State
}

// New creates an empty Session.
func New(decoder ports.VideoDecoder, logger ports.Logger, opts Options) *Session {
	if opts.FrameJump == 0 {
		opts.FrameJump = DefaultFrameJump
	}
	return &Session{
		decoder: decoder,
		logger:  logger.WithComponent("session"),
		state:   NewState(opts.FrameJump),
	}
}

// Load decodes the video at path and makes it the current video.
// Annotations are replaced by a copy of initial (emptied when nil), the cursor
// returns to 0 and the frame jump is kept. Frames of the previous video are
// released before decoding starts. On failure the session is left empty and
// a *DecodeError is returned.
func (s *Session) Load(ctx context.Context, path string, initial annotation.Map) error {
	s.frames = nil
	s.path = ""
	s.state = s.state.Reset(0, nil)

	frames, err := s.decoder.ReadFrames(ctx, path)
	if err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	if len(frames) == 0 {
		return &DecodeError{Path: path, Err: ErrNoFrames}
	}

	s.frames = frames
	s.path = path
	s.state = s.state.Reset(len(frames), initial)

	s.logger.Debug("Loaded %s: %d frames, %d annotations", filepath.Base(path), len(frames), len(s.state.Annotations))
	return nil
}

// Loaded reports whether a video is currently loaded.
func (s *Session) Loaded() bool {
	return len(s.frames) > 0
}

// Apply runs ev through Transition and reports whether the state changed.
func (s *Session) Apply(ev Event) bool {
	next := Transition(s.state, ev)
	changed := !next.Equal(s.state)
	s.state = next
	return changed
}

// StepForward moves the cursor forward by the frame jump, clamped to the last frame.
func (s *Session) StepForward() {
	s.Apply(Event{Kind: EventStepForward})
}

// StepBackward moves the cursor back by the frame jump, clamped to frame 0.
func (s *Session) StepBackward() {
	s.Apply(Event{Kind: EventStepBackward})
}

// IncreaseJump increments the frame jump.
func (s *Session) IncreaseJump() {
	s.Apply(Event{Kind: EventIncreaseJump})
}

// DecreaseJump decrements the frame jump, never below 1.
func (s *Session) DecreaseJump() {
	s.Apply(Event{Kind: EventDecreaseJump})
}

// SetPoint inserts or overwrites the annotation at frame.
// Coordinates are stored as given.
func (s *Session) SetPoint(frame, x, y int) {
	s.Apply(Event{Kind: EventSetPoint, Frame: frame, Point: annotation.Point{X: x, Y: y}})
}

// ClearPoint removes the annotation at frame if there is one.
func (s *Session) ClearPoint(frame int) {
	s.Apply(Event{Kind: EventClearPoint, Frame: frame})
}

// ResolveDisplayAnnotation returns the annotation to show for frame.
// See State.Resolve.
func (s *Session) ResolveDisplayAnnotation(frame int) Resolution {
	return s.state.Resolve(frame)
}

// ExportAnnotations returns a copy of the current annotation map.
func (s *Session) ExportAnnotations() annotation.Map {
	return s.state.Annotations.Clone()
}

// CurrentFrame returns the image at the cursor, or nil when nothing is loaded.
func (s *Session) CurrentFrame() image.Image {
	if !s.Loaded() {
		return nil
	}
	return s.frames[s.state.Cursor].Image
}

// Cursor returns the current frame index.
func (s *Session) Cursor() int {
	return s.state.Cursor
}

// FrameJump returns the navigation step.
func (s *Session) FrameJump() int {
	return s.state.FrameJump
}

// FrameCount returns the number of frames of the loaded video.
func (s *Session) FrameCount() int {
	return len(s.frames)
}

// Path returns the path of the loaded video.
func (s *Session) Path() string {
	return s.path
}

// Name returns the base name of the loaded video.
func (s *Session) Name() string {
	if s.path == "" {
		return ""
	}
	return filepath.Base(s.path)
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	return s.state
}
