package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MaxSize is the largest definition file a Fetcher accepts.
const MaxSize = 16 << 20

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrFileTooLarge is returned when the file exceeds MaxSize.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// Fetcher holds the cached contents of one definition file.
type Fetcher struct {
	filepath string
	data     []byte
}

// New reads the file at fpath and returns a Fetcher caching its contents.
// A missing file yields an error matching fs.ErrNotExist.
func New(fpath string) (*Fetcher, error) {
	cleanPath := filepath.Clean(fpath)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	if stat.Size() > MaxSize {
		return nil, fmt.Errorf("path %q (%d bytes): %w", cleanPath, stat.Size(), ErrFileTooLarge)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return &Fetcher{
		filepath: cleanPath,
		data:     data,
	}, nil
}

// NewFetcher returns a constructor function for New, deferring the read until
// the constructor is called. This is the form Fx providers expect.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		return New(fpath)
	}
}

// Path returns the cleaned path the Fetcher was read from.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Ext returns the file extension of the fetched path, including the dot.
func (f *Fetcher) Ext() string {
	return filepath.Ext(f.filepath)
}

// Fetch returns a copy of the cached file contents.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
