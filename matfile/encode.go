package matfile

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	binpkg "github.com/robert-malhotra/go-matfile/internal/binary"
	"github.com/robert-malhotra/go-matfile/internal/dtype"
	"github.com/robert-malhotra/go-matfile/internal/filter"
	"github.com/robert-malhotra/go-matfile/internal/tag"
)

// Encode renders arrays as a complete MAT-file.
func Encode(arrays []Array, opts ...WriteOption) ([]byte, error) {
	e := newEncoder(opts)
	out := binpkg.NewWriter(e.order)
	out.WriteBytes(e.header().encode())

	scratch := binpkg.NewWriter(e.order)
	for _, a := range arrays {
		if err := e.writeTopLevel(out, scratch, a); err != nil {
			return nil, err
		}
	}
	return out.Bytes(), nil
}

type encoder struct {
	order binary.ByteOrder
	opts  *writeOptions
	log   zerolog.Logger
}

func newEncoder(opts []WriteOption) *encoder {
	o := defaultWriteOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &encoder{order: o.order, opts: o, log: o.logger}
}

func (e *encoder) header() Header {
	desc := e.opts.description
	if desc == "" {
		desc = DefaultDescription(e.opts.now())
	}
	return Header{Description: desc, Version: Version5, ByteOrder: e.order}
}

// writeTopLevel appends one variable to out, compressing it when enabled.
// scratch is reused between calls.
func (e *encoder) writeTopLevel(out, scratch *binpkg.Writer, a Array) error {
	if !e.opts.compress {
		return e.wrap(a, e.writeMatrix(out, a))
	}

	scratch.Reset()
	if err := e.writeMatrix(scratch, a); err != nil {
		return e.wrap(a, err)
	}
	compressed, err := filter.Compress(scratch.Bytes(), e.opts.level)
	if err != nil {
		return fmt.Errorf("%w: compressing %q: %w", ErrIO, a.Name(), err)
	}
	if int64(len(compressed)) > math.MaxUint32 {
		return fmt.Errorf("%w: %q compresses to %d bytes", ErrDimensionMismatch, a.Name(), len(compressed))
	}
	tag.WriteHeader(out, tag.Compressed, len(compressed))
	out.WriteBytes(compressed)

	e.log.Debug().
		Str("name", a.Name()).
		Int("raw", scratch.Len()).
		Int("compressed", len(compressed)).
		Msg("compressed array")
	return nil
}

func (e *encoder) wrap(a Array, err error) error {
	if err == nil || isNil(a) {
		return err
	}
	return fmt.Errorf("writing %q: %w", a.Name(), err)
}

// writeMatrix writes a complete miMATRIX element. The size word is patched
// once the contents are known.
func (e *encoder) writeMatrix(w *binpkg.Writer, a Array) error {
	if isNil(a) {
		return fmt.Errorf("%w: nil array %T", ErrUnsupportedArrayType, a)
	}
	if _, ok := a.(*Empty); ok {
		tag.WriteHeader(w, tag.Matrix, 0)
		return nil
	}

	start := w.Len()
	tag.WriteHeader(w, tag.Matrix, 0)
	if err := e.writeContents(w, a); err != nil {
		return err
	}
	size := w.Len() - start - tag.HeaderSize
	if int64(size) > math.MaxUint32 {
		return fmt.Errorf("%w: %q encodes to %d bytes", ErrDimensionMismatch, a.Name(), size)
	}
	return w.PutUint32At(start+4, uint32(size))
}

func (e *encoder) writeContents(w *binpkg.Writer, a Array) error {
	switch v := a.(type) {
	case *Numeric[float64]:
		return writeNumeric(e, w, v)
	case *Numeric[float32]:
		return writeNumeric(e, w, v)
	case *Numeric[int8]:
		return writeNumeric(e, w, v)
	case *Numeric[uint8]:
		return writeNumeric(e, w, v)
	case *Numeric[int16]:
		return writeNumeric(e, w, v)
	case *Numeric[uint16]:
		return writeNumeric(e, w, v)
	case *Numeric[int32]:
		return writeNumeric(e, w, v)
	case *Numeric[uint32]:
		return writeNumeric(e, w, v)
	case *Numeric[int64]:
		return writeNumeric(e, w, v)
	case *Numeric[uint64]:
		return writeNumeric(e, w, v)
	case *Char:
		return e.writeChar(w, v)
	case *Cell:
		return e.writeCell(w, v)
	case *Struct:
		return e.writeStruct(w, v)
	case *Sparse:
		return e.writeSparse(w, v)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedArrayType, a)
	}
}

// writePreamble writes the flags, dimensions and name sub-elements shared by
// every array class.
func (e *encoder) writePreamble(w *binpkg.Writer, a Array, nzmax int) {
	dims := a.info().dims
	name := a.Name()
	w.Grow(tag.EncodedSize(8) + tag.EncodedSize(4*len(dims)) + tag.EncodedSize(len(name)))

	flags := make([]byte, 8)
	e.order.PutUint32(flags, uint32(a.Flags()))
	e.order.PutUint32(flags[4:], uint32(nzmax))
	tag.Write(w, tag.Uint32, flags)

	dims32 := make([]int32, len(dims))
	for i, d := range dims {
		dims32[i] = int32(d)
	}
	tag.Write(w, tag.Int32, dtype.Encode(e.order, dims32))
	tag.Write(w, tag.Int8, []byte(name))
}

func writeNumeric[T Number](e *encoder, w *binpkg.Writer, a *Numeric[T]) error {
	if len(a.real) != a.Len() {
		return fmt.Errorf("%w: %d values for %s", ErrDimensionMismatch, len(a.real), formatDims(a.dims))
	}
	if a.IsComplex() && len(a.imag) != len(a.real) {
		return fmt.Errorf("%w: %d imaginary values for %d real values", ErrDimensionMismatch, len(a.imag), len(a.real))
	}

	e.writePreamble(w, a, 0)
	parts := 1
	if a.IsComplex() {
		parts = 2
	}
	w.Grow(parts * tag.EncodedSize(len(a.real)*dtype.SizeOf[T]()))
	tag.Write(w, dtype.TypeOf[T](), dtype.Encode(e.order, a.real))
	if a.IsComplex() {
		tag.Write(w, dtype.TypeOf[T](), dtype.Encode(e.order, a.imag))
	}
	return nil
}

func (e *encoder) writeChar(w *binpkg.Writer, c *Char) error {
	if len(c.data) != c.Len() {
		return fmt.Errorf("%w: %d code units for %s", ErrDimensionMismatch, len(c.data), formatDims(c.dims))
	}
	e.writePreamble(w, c, 0)
	tag.Write(w, tag.Uint16, dtype.Encode(e.order, c.data))
	return nil
}

func (e *encoder) writeCell(w *binpkg.Writer, c *Cell) error {
	e.writePreamble(w, c, 0)
	for i, child := range c.cells {
		if err := e.writeMatrix(w, child); err != nil {
			return fmt.Errorf("cell %d: %w", i+1, err)
		}
	}
	return nil
}

// writeStruct writes field names padded to a common width, then every
// field of element 1, every field of element 2, and so on.
func (e *encoder) writeStruct(w *binpkg.Writer, s *Struct) error {
	e.writePreamble(w, s, 0)

	width := s.FieldNameLength()
	lenBuf := make([]byte, 4)
	e.order.PutUint32(lenBuf, uint32(width))
	tag.Write(w, tag.Int32, lenBuf)

	names := make([]byte, width*len(s.fields))
	for i, f := range s.fields {
		copy(names[i*width:], f)
	}
	tag.Write(w, tag.Int8, names)

	for el, values := range s.values {
		for f, child := range values {
			if err := e.writeMatrix(w, child); err != nil {
				return fmt.Errorf("element %d field %q: %w", el+1, s.fields[f], err)
			}
		}
	}
	return nil
}

func (e *encoder) writeSparse(w *binpkg.Writer, s *Sparse) error {
	nnz := s.NNZ()
	if len(s.ir) != nnz || len(s.real) != nnz || (s.imag != nil && len(s.imag) != nnz) {
		return fmt.Errorf("%w: sparse %q has inconsistent entry counts", ErrDimensionMismatch, s.Name())
	}

	e.writePreamble(w, s, max(s.nzmax, nnz))
	tag.Write(w, tag.Int32, dtype.Encode(e.order, toInt32s(s.ir)))
	tag.Write(w, tag.Int32, dtype.Encode(e.order, toInt32s(s.jc)))
	tag.Write(w, tag.Double, dtype.Encode(e.order, s.real))
	if s.IsComplex() {
		tag.Write(w, tag.Double, dtype.Encode(e.order, s.imag))
	}
	return nil
}

func toInt32s(v []int) []int32 {
	out := make([]int32, len(v))
	for i, x := range v {
		out[i] = int32(x)
	}
	return out
}
