//go:build unix

package matfile

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps path read-only. When mapping fails the file is read into
// memory instead.
func mapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := st.Size()
	noop := func() error { return nil }
	if size == 0 {
		return nil, noop, nil
	}
	if size > math.MaxInt {
		return nil, nil, fmt.Errorf("file is %d bytes", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		data, err = io.ReadAll(f)
		if err != nil {
			return nil, nil, err
		}
		return data, noop, nil
	}
	return data, func() error { return unix.Munmap(data) }, nil
}
