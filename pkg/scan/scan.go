// Package scan discovers the videos of a batch in an input directory.
package scan

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/user/pinframe/pkg/ports"
)

// DefaultExtensions lists the video extensions matched when none are configured.
var DefaultExtensions = []string{".mp4"}

// ErrNotDirectory is wrapped by DirectoryError when the path exists but is a file.
var ErrNotDirectory = errors.New("scan: not a directory")

// ErrMissing is wrapped by DirectoryError when the path does not exist.
var ErrMissing = errors.New("scan: directory does not exist")

// DirectoryError reports an unusable input directory.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("input directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}

// Video is one discovered input video.
type Video struct {
	Path string
	Name string
}

// Discover lists the files in dir whose extension matches one of extensions
// (case-insensitive), sorted by name. Subdirectories are not descended into.
func Discover(fs ports.FileSystem, dir string, extensions []string) ([]Video, error) {
	exists, err := fs.Exists(dir)
	if err != nil {
		return nil, &DirectoryError{Path: dir, Err: err}
	}
	if !exists {
		return nil, &DirectoryError{Path: dir, Err: ErrMissing}
	}
	isDir, err := fs.IsDir(dir)
	if err != nil {
		return nil, &DirectoryError{Path: dir, Err: err}
	}
	if !isDir {
		return nil, &DirectoryError{Path: dir, Err: ErrNotDirectory}
	}

	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryError{Path: dir, Err: err}
	}

	wanted := normalizeExtensions(extensions)

	var videos []Video
	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		if !wanted[strings.ToLower(filepath.Ext(entry.Name))] {
			continue
		}
		videos = append(videos, Video{
			Path: filepath.Join(dir, entry.Name),
			Name: entry.Name,
		})
	}

	sort.Slice(videos, func(i, j int) bool {
		return videos[i].Name < videos[j].Name
	})
	return videos, nil
}

func normalizeExtensions(extensions []string) map[string]bool {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		wanted[ext] = true
	}
	return wanted
}
