package annotation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/pinframe/pkg/ports"
)

// RecordExt is the file extension of annotation records.
const RecordExt = ".json"

// Store reads and writes one annotation record per video in a directory.
type Store struct {
	fs  ports.FileSystem
	dir string

	// keepExt holds the videos whose records keep the video extension.
	keepExt map[string]bool
}

// NewStore creates a Store that keeps records in dir.
func NewStore(fs ports.FileSystem, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Dir returns the record directory.
func (s *Store) Dir() string {
	return s.dir
}

// Prepare creates the record directory if needed.
func (s *Store) Prepare() error {
	if err := s.fs.MkdirAll(s.dir); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}
	return nil
}

// Claim registers the videos of a batch. Videos whose base names differ only
// by extension would share a record, so their records are named after the
// full base name instead (clip.mp4.json). It returns the shared stems.
// Stems are compared case-insensitively.
func (s *Store) Claim(videoPaths []string) []string {
	byStem := make(map[string][]string)
	var order []string
	for _, p := range videoPaths {
		key := strings.ToLower(stem(p))
		if _, seen := byStem[key]; !seen {
			order = append(order, key)
		}
		byStem[key] = append(byStem[key], p)
	}

	s.keepExt = make(map[string]bool)
	var shared []string
	for _, key := range order {
		paths := byStem[key]
		if len(paths) < 2 {
			continue
		}
		shared = append(shared, stem(paths[0]))
		for _, p := range paths {
			s.keepExt[p] = true
		}
	}
	return shared
}

// RecordPath returns the record path for a video: the video's base name with
// its extension replaced by .json, inside the record directory. Videos that
// share a stem with another claimed video keep their extension.
func (s *Store) RecordPath(videoPath string) string {
	name := stem(videoPath)
	if s.keepExt[videoPath] {
		name = filepath.Base(videoPath)
	}
	return filepath.Join(s.dir, name+RecordExt)
}

func stem(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load reads the record for a video. It returns (nil, false, nil) when no
// record exists yet, and a *SerializationError when the record is malformed.
func (s *Store) Load(videoPath string) (Map, bool, error) {
	path := s.RecordPath(videoPath)

	exists, err := s.fs.Exists(path)
	if err != nil {
		return nil, false, fmt.Errorf("stat record: %w", err)
	}
	if !exists {
		return nil, false, nil
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read record: %w", err)
	}

	m, err := Decode(data)
	if err != nil {
		var serr *SerializationError
		if errors.As(err, &serr) {
			serr.Path = path
		}
		return nil, false, err
	}
	return m, true, nil
}

// Save writes the record for a video and returns its path.
func (s *Store) Save(videoPath string, m Map) (string, error) {
	path := s.RecordPath(videoPath)

	data, err := Encode(m)
	if err != nil {
		return "", err
	}
	if err := s.fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	return path, nil
}
