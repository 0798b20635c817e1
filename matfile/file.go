package matfile

import (
	"fmt"
	"io"
)

// File is a decoded MAT-file: its header and top-level variables in file
// order.
type File struct {
	Header Header
	Arrays []Array
}

// Open reads and decodes the MAT-file at path. The file is memory-mapped
// where the platform allows it and released before Open returns.
func Open(path string, opts ...ReadOption) (*File, error) {
	data, release, err := mapFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file: %w", ErrIO, err)
	}
	f, err := Decode(data, opts...)
	if rerr := release(); rerr != nil && err == nil {
		return nil, fmt.Errorf("%w: releasing file: %w", ErrIO, rerr)
	}
	return f, err
}

// Read decodes a MAT-file from r, reading it to the end.
func Read(r io.Reader, opts ...ReadOption) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading: %w", ErrIO, err)
	}
	return Decode(data, opts...)
}

// Lookup returns the first top-level variable called name.
func (f *File) Lookup(name string) (Array, error) {
	for _, a := range f.Arrays {
		if a.Name() == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Names returns the top-level variable names in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Arrays))
	for i, a := range f.Arrays {
		names[i] = a.Name()
	}
	return names
}
