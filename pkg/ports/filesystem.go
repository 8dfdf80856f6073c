package ports

import "io"

// File is a writable, seekable file handle. WAV output needs to seek back
// and patch its header once the sample count is known.
type File interface {
	io.Writer
	io.Seeker
	io.Closer
}

// FileSystem abstracts the file operations used by the export sinks.
type FileSystem interface {
	// WriteFile writes data to a file, creating parent directories if necessary.
	WriteFile(path string, data []byte) error

	// Create creates or truncates a file, creating parent directories if necessary.
	Create(path string) (File, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)
}
