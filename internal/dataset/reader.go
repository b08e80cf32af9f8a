package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Reader defines a tabular file reader implementation.
type Reader interface {
	CanRead(filename string) bool
	Read(content []byte) (*Dataset, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ErrUnsupported indicates a file format is not supported.
var ErrUnsupported = errors.New("unsupported dataset format")

// Supported reports whether some registered reader handles the filename.
func Supported(name string) bool {
	for _, r := range registry {
		if r.CanRead(name) {
			return true
		}
	}
	return false
}

// InputError wraps any failure to produce a dataset from an input file.
// It is fatal: no dataset exists and no cleaning runs.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ReadFile selects a reader based on filename and returns the loaded dataset.
func ReadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return ReadNamed(path, data)
}

// ReadNamed parses in-memory content using the reader matching the given
// filename. Uploads arrive this way.
func ReadNamed(name string, content []byte) (*Dataset, error) {
	for _, r := range registry {
		if r.CanRead(name) {
			ds, err := r.Read(content)
			if err != nil {
				return nil, &InputError{Path: name, Err: err}
			}
			ds.Source = filepath.Base(name)
			return ds, nil
		}
	}
	return nil, &InputError{Path: name, Err: ErrUnsupported}
}

func init() {
	// Register default readers
	Register(csvReader{})
	Register(tsvReader{})
	Register(xlsxReader{})
}
