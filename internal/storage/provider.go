// Package storage gives the pipeline access to files under a course root.
package storage

// Provider is the interface for course file operations. All paths are
// relative to the course root.
type Provider interface {
	// Read returns the raw bytes of the file at path. A missing file wraps apperr.ErrNotFound.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Move renames oldPath to newPath, replacing newPath if it exists.
	Move(oldPath, newPath string) error
	// Exists reports whether a regular file exists at path.
	Exists(path string) (bool, error)
	// MkdirAll ensures dir exists.
	MkdirAll(dir string) error
	// Abs resolves path to an absolute file system path.
	Abs(path string) (string, error)
}
