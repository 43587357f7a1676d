package annotation

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/user/pinframe/pkg/mocks"
)

func TestStore_RecordPath(t *testing.T) {
	s := NewStore(mocks.NewFileSystem(), "/data/annotations")

	tests := []struct {
		video string
		want  string
	}{
		{"/data/clip01.mp4", "/data/annotations/clip01.json"},
		{"/data/take.final.MOV", "/data/annotations/take.final.json"},
		{"/data/noext", "/data/annotations/noext.json"},
	}

	for _, tt := range tests {
		if got := s.RecordPath(tt.video); got != filepath.FromSlash(tt.want) {
			t.Errorf("RecordPath(%q) = %q, want %q", tt.video, got, tt.want)
		}
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s := NewStore(mocks.NewFileSystem(), "/data/annotations")

	m, ok, err := s.Load("/data/a.mp4")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok || m != nil {
		t.Errorf("expected no record, got %v (ok=%v)", m, ok)
	}
}

func TestStore_SaveThenLoad(t *testing.T) {
	fs := mocks.NewFileSystem()
	s := NewStore(fs, "/data/annotations")

	want := Map{3: {X: 10, Y: 20}}
	path, err := s.Save("/data/a.mp4", want)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != filepath.Join("/data/annotations", "a.json") {
		t.Errorf("unexpected path %q", path)
	}

	m, ok, err := s.Load("/data/a.mp4")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok || !m.Equal(want) {
		t.Errorf("expected %v, got %v (ok=%v)", want, m, ok)
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	fs := mocks.NewFileSystem()
	path := filepath.Join("/data/annotations", "a.json")
	fs.AddFile(path, []byte(`{"x": [1, 2]}`))
	s := NewStore(fs, "/data/annotations")

	_, _, err := s.Load("/data/a.mp4")
	var serr *SerializationError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *SerializationError, got %v", err)
	}
	if serr.Path != path {
		t.Errorf("expected path %q in error, got %q", path, serr.Path)
	}
}

func TestStore_WriteFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}
	s := NewStore(fs, "/data/annotations")

	if _, err := s.Save("/data/a.mp4", Map{}); err == nil {
		t.Error("expected error")
	}
}

func TestStore_Prepare(t *testing.T) {
	fs := mocks.NewFileSystem()
	s := NewStore(fs, "/data/annotations")

	if err := s.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if ok, _ := fs.IsDir("/data/annotations"); !ok {
		t.Error("expected record directory to be created")
	}
}

func TestStore_ClaimSharedStem(t *testing.T) {
	fs := mocks.NewFileSystem()
	s := NewStore(fs, "/data/annotations")

	shared := s.Claim([]string{"/data/clip.mov", "/data/clip.mp4", "/data/other.mp4", "/data/Take.mp4", "/data/take.mkv"})
	if len(shared) != 2 || shared[0] != "clip" || shared[1] != "Take" {
		t.Errorf("expected shared stems [clip Take], got %v", shared)
	}

	tests := []struct {
		video string
		want  string
	}{
		{"/data/clip.mov", "/data/annotations/clip.mov.json"},
		{"/data/clip.mp4", "/data/annotations/clip.mp4.json"},
		{"/data/other.mp4", "/data/annotations/other.json"},
		{"/data/Take.mp4", "/data/annotations/Take.mp4.json"},
		{"/data/take.mkv", "/data/annotations/take.mkv.json"},
	}
	for _, tt := range tests {
		if got := s.RecordPath(tt.video); got != filepath.FromSlash(tt.want) {
			t.Errorf("RecordPath(%q) = %q, want %q", tt.video, got, tt.want)
		}
	}

	if _, err := s.Save("/data/clip.mov", Map{3: {X: 10, Y: 20}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	m, ok, err := s.Load("/data/clip.mp4")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok || m != nil {
		t.Errorf("expected clip.mp4 to have no record of its own, got %v", m)
	}
}
