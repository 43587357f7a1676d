package ports

// DirEntry is a single directory listing entry.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]DirEntry, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error
}

// DirLocker guards a directory against concurrent writers.
type DirLocker interface {
	// TryLock acquires the lock without blocking.
	// It returns false when another process holds it.
	TryLock() (bool, error)

	// Unlock releases the lock.
	Unlock() error
}
