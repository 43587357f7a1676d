package session

import "github.com/user/pinframe/pkg/annotation"

// DefaultFrameJump is the initial navigation step.
const DefaultFrameJump = 5

// State is the annotation state of one loaded video.
//
// States are values: Transition returns a new State and never writes to the
// annotation map of the State it was given, so older States stay valid.
type State struct {
	FrameCount  int
	Cursor      int
	FrameJump   int
	Annotations annotation.Map
}

// NewState returns an empty state with the given frame jump (floored at 1).
func NewState(frameJump int) State {
	if frameJump < 1 {
		frameJump = 1
	}
	return State{FrameJump: frameJump, Annotations: annotation.Map{}}
}

// Reset returns the state for a newly loaded video: cursor at 0, annotations
// replaced by a copy of initial (empty when nil), frame jump kept.
func (s State) Reset(frameCount int, initial annotation.Map) State {
	return State{
		FrameCount:  frameCount,
		Cursor:      0,
		FrameJump:   s.FrameJump,
		Annotations: initial.Clone(),
	}
}

// Equal reports whether two states are indistinguishable.
func (s State) Equal(other State) bool {
	return s.FrameCount == other.FrameCount &&
		s.Cursor == other.Cursor &&
		s.FrameJump == other.FrameJump &&
		s.Annotations.Equal(other.Annotations)
}

// Resolution is the annotation to display for a frame.
type Resolution struct {
	Found bool             // false means "none": no entry at or before the frame
	Frame int              // frame the point was annotated on
	Point annotation.Point // the annotated point
	Exact bool             // the frame has its own entry
}

// Resolve returns the frame's own annotation if present, otherwise the
// annotation with the greatest frame index strictly less than frame.
func (s State) Resolve(frame int) Resolution {
	if p, ok := s.Annotations[frame]; ok {
		return Resolution{Found: true, Frame: frame, Point: p, Exact: true}
	}

	best := -1
	for idx := range s.Annotations {
		if idx < frame && idx > best {
			best = idx
		}
	}
	if best < 0 {
		return Resolution{}
	}
	return Resolution{Found: true, Frame: best, Point: s.Annotations[best]}
}

// EventKind identifies a state transition.
type EventKind int

const (
	EventStepForward EventKind = iota + 1
	EventStepBackward
	EventIncreaseJump
	EventDecreaseJump
	EventSetPoint
	EventClearPoint
)

// String returns a short name for logs.
func (k EventKind) String() string {
	switch k {
	case EventStepForward:
		return "step-forward"
	case EventStepBackward:
		return "step-backward"
	case EventIncreaseJump:
		return "increase-jump"
	case EventDecreaseJump:
		return "decrease-jump"
	case EventSetPoint:
		return "set-point"
	case EventClearPoint:
		return "clear-point"
	default:
		return "unknown"
	}
}

// Event is an input to Transition. Frame and Point are used by
// EventSetPoint and EventClearPoint only.
type Event struct {
	Kind  EventKind
	Frame int
	Point annotation.Point
}

// Transition applies ev to s and returns the resulting state.
// Unknown event kinds return s unchanged.
func Transition(s State, ev Event) State {
	switch ev.Kind {
	case EventStepForward:
		s.Cursor = clampCursor(s.Cursor+s.FrameJump, s.FrameCount)
	case EventStepBackward:
		s.Cursor = clampCursor(s.Cursor-s.FrameJump, s.FrameCount)
	case EventIncreaseJump:
		s.FrameJump++
	case EventDecreaseJump:
		if s.FrameJump > 1 {
			s.FrameJump--
		}
	case EventSetPoint:
		annotations := s.Annotations.Clone()
		annotations[ev.Frame] = ev.Point
		s.Annotations = annotations
	case EventClearPoint:
		if _, ok := s.Annotations[ev.Frame]; ok {
			annotations := s.Annotations.Clone()
			delete(annotations, ev.Frame)
			s.Annotations = annotations
		}
	}
	return s
}

func clampCursor(cursor, frameCount int) int {
	if cursor > frameCount-1 {
		cursor = frameCount - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
