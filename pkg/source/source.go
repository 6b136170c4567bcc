// Package source abstracts where file content comes from so detectors can
// run against the working tree or in-memory snippets without caring which.
package source

import "os"

// ContentSource provides file content from a specific source.
type ContentSource interface {
	// Read returns the content of the file at path.
	Read(path string) ([]byte, error)
}

// FilesystemSource reads files from the local filesystem.
type FilesystemSource struct{}

// NewFilesystem creates a source that reads from the filesystem.
func NewFilesystem() *FilesystemSource {
	return &FilesystemSource{}
}

// Read implements ContentSource.
func (f *FilesystemSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MemorySource serves content from an in-memory map. Used by the
// validation pipeline and in tests. The map must not be mutated while
// reads are in flight.
type MemorySource struct {
	files map[string][]byte
}

// NewMemory creates a source over the given path-to-content map.
func NewMemory(files map[string][]byte) *MemorySource {
	return &MemorySource{files: files}
}

// Read implements ContentSource.
func (m *MemorySource) Read(path string) ([]byte, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return content, nil
}
