package cartparser

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SourceReader supplies the raw text of a cart given its path.
type SourceReader interface {
	ReadSource(path string) (string, error)
}

// SourceReaderFunc adapts a function to SourceReader.
type SourceReaderFunc func(path string) (string, error)

// ReadSource calls f(path).
func (f SourceReaderFunc) ReadSource(path string) (string, error) {
	return f(path)
}

// IDGenerator produces a fresh unique identifier on every call.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// ExtensionSource dispatches to a SourceReader chosen by file extension.
// Extensions are matched case-insensitively and include the leading dot.
type ExtensionSource struct {
	readers  map[string]SourceReader
	fallback SourceReader
}

// NewExtensionSource creates an ExtensionSource that uses fallback for any
// extension without a registered reader.
func NewExtensionSource(fallback SourceReader) *ExtensionSource {
	return &ExtensionSource{
		readers:  make(map[string]SourceReader),
		fallback: fallback,
	}
}

// Register sets the reader for ext (for example ".xlsx").
func (s *ExtensionSource) Register(ext string, reader SourceReader) *ExtensionSource {
	s.readers[strings.ToLower(ext)] = reader
	return s
}

// ReadSource reads path with the reader registered for its extension.
func (s *ExtensionSource) ReadSource(path string) (string, error) {
	if reader, ok := s.readers[strings.ToLower(filepath.Ext(path))]; ok {
		return reader.ReadSource(path)
	}
	return s.fallback.ReadSource(path)
}
