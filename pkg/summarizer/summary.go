// Package summarizer provides summary generation for annotation batches.
package summarizer

import (
	"time"

	"github.com/user/pinframe/pkg/driver"
)

// Summary contains the outcome of an annotation batch.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Directories
	InputDir  string
	RecordDir string

	// Quit is set when the user left before the end of the video list.
	Quit bool

	Videos []VideoEntry
}

// VideoEntry is the outcome of one video.
type VideoEntry struct {
	Name       string
	Status     driver.Status
	Reason     string
	Frames     int
	Annotated  int
	RecordPath string
}

// Totals counts videos by status.
type Totals struct {
	Committed  int
	Skipped    int
	Unsaved    int
	NotVisited int
	Annotated  int // annotated frames across committed records
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// FromResult builds a Summary from a finished batch.
func FromResult(r driver.Result) *Summary {
	s := NewSummary()
	s.InputDir = r.InputDir
	s.RecordDir = r.RecordDir
	s.Quit = r.Quit

	s.Videos = make([]VideoEntry, len(r.Videos))
	for i, v := range r.Videos {
		s.Videos[i] = VideoEntry{
			Name:       v.Video.Name,
			Status:     v.Status,
			Reason:     v.Reason,
			Frames:     v.Frames,
			Annotated:  v.Annotated,
			RecordPath: v.RecordPath,
		}
	}
	return s
}

// Totals returns the per-status counts.
func (s *Summary) Totals() Totals {
	var t Totals
	for _, v := range s.Videos {
		switch v.Status {
		case driver.StatusCommitted:
			t.Committed++
			t.Annotated += v.Annotated
		case driver.StatusSkipped:
			t.Skipped++
		case driver.StatusUnsaved:
			t.Unsaved++
		default:
			t.NotVisited++
		}
	}
	return t
}
