package mocks

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/user/pinframe/pkg/ports"
)

// FileSystem is a mock implementation of ports.FileSystem.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
	ExistsFunc    func(path string) (bool, error)
	IsDirFunc     func(path string) (bool, error)
	ReadDirFunc   func(path string) ([]ports.DirEntry, error)
	RemoveFunc    func(path string) error

	Writes []string // paths passed to WriteFile, in call order
}

// NewFileSystem creates a new mock FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[path]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("file not found: %s", path)
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	m.Writes = append(m.Writes, path)
	m.mu.Unlock()
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.files[path]; ok {
		return true, nil
	}
	if _, ok := m.dirs[path]; ok {
		return true, nil
	}
	return false, nil
}

func (m *FileSystem) IsDir(path string) (bool, error) {
	if m.IsDirFunc != nil {
		return m.IsDirFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[path], nil
}

// ReadDir lists files and directories whose parent is path, sorted by name.
func (m *FileSystem) ReadDir(path string) ([]ports.DirEntry, error) {
	if m.ReadDirFunc != nil {
		return m.ReadDirFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.dirs[path] {
		return nil, fmt.Errorf("directory not found: %s", path)
	}
	var entries []ports.DirEntry
	for f := range m.files {
		if filepath.Dir(f) == path {
			entries = append(entries, ports.DirEntry{Name: filepath.Base(f)})
		}
	}
	for d := range m.dirs {
		if d != path && filepath.Dir(d) == path {
			entries = append(entries, ports.DirEntry{Name: filepath.Base(d), IsDir: true})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.Compare(entries[i].Name, entries[j].Name) < 0
	})
	return entries, nil
}

func (m *FileSystem) Remove(path string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	delete(m.dirs, path)
	return nil
}

// AddFile stores a file without recording a write (for test setup).
func (m *FileSystem) AddFile(path string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
}

// AddDir marks a directory as existing (for test setup).
func (m *FileSystem) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

// GetFile returns the contents of a file (for test verification).
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	return data, ok
}

var _ ports.FileSystem = (*FileSystem)(nil)

// DirLocker is a mock implementation of ports.DirLocker.
type DirLocker struct {
	TryLockFunc func() (bool, error)

	Locked   bool
	Unlocked bool
}

func (m *DirLocker) TryLock() (bool, error) {
	if m.TryLockFunc != nil {
		return m.TryLockFunc()
	}
	m.Locked = true
	return true, nil
}

func (m *DirLocker) Unlock() error {
	m.Unlocked = true
	return nil
}

var _ ports.DirLocker = (*DirLocker)(nil)
