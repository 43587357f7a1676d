package driver

import "github.com/user/pinframe/pkg/scan"

// Status is the outcome of one video in a batch.
type Status int

const (
	// StatusNotVisited means the batch ended before the video was opened.
	StatusNotVisited Status = iota
	// StatusCommitted means the video's annotations were saved.
	StatusCommitted
	// StatusSkipped means the video could not be opened for annotation.
	StatusSkipped
	// StatusUnsaved means the video was open with edits not yet saved when the
	// user quit.
	StatusUnsaved
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusNotVisited:
		return "not visited"
	case StatusCommitted:
		return "committed"
	case StatusSkipped:
		return "skipped"
	case StatusUnsaved:
		return "unsaved"
	default:
		return "unknown"
	}
}

// VideoResult records what happened to one video.
type VideoResult struct {
	Video      scan.Video
	Status     Status
	Reason     string // why the video was skipped
	Frames     int
	Annotated  int // annotated frames in the saved record
	RecordPath string
}

// Result is the outcome of a batch.
type Result struct {
	InputDir  string
	RecordDir string
	Videos    []VideoResult
	Quit      bool // the user quit before the end of the list
}

// Count returns the number of videos with status s.
func (r Result) Count(s Status) int {
	n := 0
	for _, v := range r.Videos {
		if v.Status == s {
			n++
		}
	}
	return n
}
