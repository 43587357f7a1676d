package summarizer

import (
	"fmt"
	"path/filepath"

	"github.com/user/pinframe/pkg/ports"
)

// Writer writes formatted summaries to files.
type Writer struct {
	fs        ports.FileSystem
	formatter Formatter
}

// NewWriter creates a new Writer with the given Formatter.
func NewWriter(fs ports.FileSystem, formatter Formatter) *Writer {
	return &Writer{
		fs:        fs,
		formatter: formatter,
	}
}

// Write formats the summary and writes it to the specified path.
// Creates parent directories if they don't exist.
func (w *Writer) Write(path string, summary *Summary) error {
	content := w.formatter.Format(summary)

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
