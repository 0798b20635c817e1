package matfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	binpkg "github.com/robert-malhotra/go-matfile/internal/binary"
)

// Write encodes arrays to w. Each variable is rendered in memory and then
// written, so at most one variable is buffered at a time.
func Write(w io.Writer, arrays []Array, opts ...WriteOption) error {
	e := newEncoder(opts)
	if _, err := w.Write(e.header().encode()); err != nil {
		return fmt.Errorf("%w: writing header: %w", ErrIO, err)
	}

	buf := binpkg.NewWriter(e.order)
	scratch := binpkg.NewWriter(e.order)
	for _, a := range arrays {
		buf.Reset()
		if err := e.writeTopLevel(buf, scratch, a); err != nil {
			return err
		}
		if _, err := buf.WriteTo(w); err != nil {
			return fmt.Errorf("%w: writing %q: %w", ErrIO, a.Name(), err)
		}
	}
	return nil
}

// WriteFile creates or truncates path and writes arrays to it. On failure
// the partial file is removed.
func WriteFile(path string, arrays []Array, opts ...WriteOption) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating file: %w", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: closing file: %w", ErrIO, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := Write(bw, arrays, opts...); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flushing: %w", ErrIO, err)
	}
	return nil
}
