package matfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	binpkg "github.com/robert-malhotra/go-matfile/internal/binary"
	"github.com/robert-malhotra/go-matfile/internal/dtype"
	"github.com/robert-malhotra/go-matfile/internal/filter"
	"github.com/robert-malhotra/go-matfile/internal/tag"
)

// Decode parses a complete level-5 MAT-file held in memory. The returned
// arrays do not alias data.
func Decode(data []byte, opts ...ReadOption) (*File, error) {
	o := defaultReadOptions()
	for _, opt := range opts {
		opt(o)
	}

	hdr, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	d := &decoder{order: hdr.ByteOrder, opts: o, log: o.logger}
	arrays, err := d.readBody(binpkg.NewReader(data, hdr.ByteOrder).At(HeaderSize), hdr.SubsystemOffset)
	if err != nil {
		return nil, err
	}
	d.log.Debug().
		Str("byte_order", hdr.ByteOrder.String()).
		Int("arrays", len(arrays)).
		Msg("decoded MAT-file")
	return &File{Header: hdr, Arrays: arrays}, nil
}

type decoder struct {
	order binary.ByteOrder
	opts  *readOptions
	log   zerolog.Logger
}

// readBody reads top-level elements until the data is exhausted.
func (d *decoder) readBody(r *binpkg.Reader, subsys uint64) ([]Array, error) {
	var arrays []Array
	for r.Remaining() > 0 {
		start := r.Pos()
		typ, size, small, err := tag.ReadHeader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: element at offset %d: %w", ErrCorruptData, start, err)
		}
		if small {
			return nil, corrupt("small element %s at top level, offset %d", typ, start)
		}
		payload, err := r.ReadBytes(size)
		if err != nil {
			return nil, fmt.Errorf("%w: element at offset %d: %w", ErrCorruptData, start, err)
		}

		if subsys != 0 && uint64(start) == subsys {
			d.log.Debug().Int("offset", start).Int("size", size).Msg("skipping subsystem data")
			d.skipPadding(r, typ, size)
			continue
		}

		switch typ {
		case tag.Matrix:
			a, err := d.readMatrix(binpkg.NewReader(payload, d.order))
			if err != nil {
				return nil, fmt.Errorf("array at offset %d: %w", start, err)
			}
			arrays = append(arrays, a)
		case tag.Compressed:
			inner, err := d.inflate(payload, start)
			if err != nil {
				return nil, err
			}
			arrays = append(arrays, inner...)
		default:
			return nil, fmt.Errorf("%w: %w: top-level element %s at offset %d",
				ErrUnsupportedArrayType, ErrCorruptData, typ, start)
		}
		d.skipPadding(r, typ, size)
	}
	return arrays, nil
}

// skipPadding skips the alignment after a top-level element. Compressed
// elements carry none.
func (d *decoder) skipPadding(r *binpkg.Reader, typ tag.DataType, size int) {
	if typ == tag.Compressed {
		return
	}
	_ = r.Skip(min(tag.Padding(size, false), r.Remaining()))
}

// inflate decompresses a compressed element and decodes the matrix
// elements inside it.
func (d *decoder) inflate(payload []byte, start int) ([]Array, error) {
	data, err := filter.Decompress(payload)
	var csErr *filter.ChecksumError
	switch {
	case errors.As(err, &csErr):
		if d.opts.checksum == ChecksumStrict {
			return nil, fmt.Errorf("%w: element at offset %d: %w", ErrChecksumMismatch, start, err)
		}
		d.log.Warn().
			Int("offset", start).
			Uint32("stored", csErr.Expected).
			Uint32("computed", csErr.Actual).
			Msg("compressed element checksum mismatch")
	case err != nil:
		return nil, fmt.Errorf("%w: compressed element at offset %d: %w", ErrCorruptData, start, err)
	}

	r := binpkg.NewReader(data, d.order)
	var arrays []Array
	for r.Remaining() > 0 {
		t, err := tag.Read(r)
		if err != nil {
			return nil, fmt.Errorf("%w: compressed element at offset %d: %w", ErrCorruptData, start, err)
		}
		if t.Type != tag.Matrix {
			return nil, fmt.Errorf("%w: %w: compressed element at offset %d holds %s",
				ErrUnsupportedArrayType, ErrCorruptData, start, t.Type)
		}
		a, err := d.readMatrix(binpkg.NewReader(t.Data, d.order))
		if err != nil {
			return nil, fmt.Errorf("compressed array at offset %d: %w", start, err)
		}
		arrays = append(arrays, a)
	}
	return arrays, nil
}

// readNested reads a matrix element embedded in a cell or structure.
func (d *decoder) readNested(r *binpkg.Reader) (Array, error) {
	t, err := tag.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	if t.Type != tag.Matrix {
		return nil, corrupt("nested element is %s, want miMATRIX", t.Type)
	}
	return d.readMatrix(binpkg.NewReader(t.Data, d.order))
}

// readMatrix decodes the payload of a miMATRIX element.
func (d *decoder) readMatrix(r *binpkg.Reader) (Array, error) {
	if r.Len() == 0 {
		return NewEmpty(), nil
	}

	flagsTag, err := tag.Expect(r, "array flags", tag.Uint32)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	if len(flagsTag.Data) != 8 {
		return nil, corrupt("array flags hold %d bytes", len(flagsTag.Data))
	}
	flags := Flags(d.order.Uint32(flagsTag.Data))
	nzmax := int(d.order.Uint32(flagsTag.Data[4:]))

	dimsTag, err := tag.Expect(r, "dimensions", tag.Int32)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	dims32, err := dtype.Decode[int32](dimsTag.Type, d.order, dimsTag.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: dimensions: %w", ErrCorruptData, err)
	}
	dims := make([]int, len(dims32))
	for i, v := range dims32 {
		if v < 0 {
			return nil, corrupt("negative dimension %d", v)
		}
		dims[i] = int(v)
	}

	nameTag, err := tag.Expect(r, "array name", tag.Int8, tag.Uint8, tag.UTF8)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	name := string(nameTag.Data)

	info, err := newArrayInfo(name, dims, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrCorruptData, name, err)
	}

	var a Array
	switch class := flags.Class(); class {
	case ClassDouble:
		a, err = readNumeric[float64](d, r, info)
	case ClassSingle:
		a, err = readNumeric[float32](d, r, info)
	case ClassInt8:
		a, err = readNumeric[int8](d, r, info)
	case ClassUint8:
		a, err = readNumeric[uint8](d, r, info)
	case ClassInt16:
		a, err = readNumeric[int16](d, r, info)
	case ClassUint16:
		a, err = readNumeric[uint16](d, r, info)
	case ClassInt32:
		a, err = readNumeric[int32](d, r, info)
	case ClassUint32:
		a, err = readNumeric[uint32](d, r, info)
	case ClassInt64:
		a, err = readNumeric[int64](d, r, info)
	case ClassUint64:
		a, err = readNumeric[uint64](d, r, info)
	case ClassChar:
		a, err = d.readChar(r, info)
	case ClassCell:
		a, err = d.readCell(r, info)
	case ClassStruct:
		a, err = d.readStruct(r, info)
	case ClassSparse:
		a, err = d.readSparse(r, info, nzmax)
	default:
		return nil, fmt.Errorf("%w: %q has class %s", ErrUnsupportedArrayType, name, class)
	}
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}
	return a, nil
}

// readValues reads a numeric element of exactly n values, converting the
// stored type to T.
func readValues[T Number](d *decoder, r *binpkg.Reader, what string, n int) ([]T, error) {
	t, err := tag.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptData, what, err)
	}
	values, err := dtype.Decode[T](t.Type, d.order, t.Data)
	switch {
	case errors.Is(err, dtype.ErrPartialElement):
		return nil, fmt.Errorf("%w: %s: %w", ErrDimensionMismatch, what, err)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptData, what, err)
	}
	if n >= 0 && len(values) != n {
		return nil, fmt.Errorf("%w: %s holds %d values, want %d", ErrDimensionMismatch, what, len(values), n)
	}
	return values, nil
}

func readNumeric[T Number](d *decoder, r *binpkg.Reader, info arrayInfo) (Array, error) {
	re, err := readValues[T](d, r, "real part", info.count)
	if err != nil {
		return nil, err
	}
	var im []T
	if info.flags.IsComplex() {
		if im, err = readValues[T](d, r, "imaginary part", info.count); err != nil {
			return nil, err
		}
	}
	return &Numeric[T]{arrayInfo: info, real: re, imag: im}, nil
}

func (d *decoder) readChar(r *binpkg.Reader, info arrayInfo) (Array, error) {
	t, err := tag.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: char data: %w", ErrCorruptData, err)
	}
	units, err := dtype.DecodeText(t.Type, d.order, t.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: char data: %w", ErrCorruptData, err)
	}
	if len(units) != info.count {
		return nil, fmt.Errorf("%w: %d code units for %s", ErrDimensionMismatch, len(units), formatDims(info.dims))
	}
	return &Char{arrayInfo: info, data: units}, nil
}

// checkNested rejects element counts the remaining bytes cannot hold, each
// nested element needing at least a tag header.
func checkNested(r *binpkg.Reader, n int) error {
	if n > r.Remaining()/tag.HeaderSize {
		return corrupt("%d nested elements in %d bytes", n, r.Remaining())
	}
	return nil
}

func (d *decoder) readCell(r *binpkg.Reader, info arrayInfo) (Array, error) {
	if err := checkNested(r, info.count); err != nil {
		return nil, err
	}
	cells := make([]Array, info.count)
	for i := range cells {
		a, err := d.readNested(r)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i+1, err)
		}
		cells[i] = a
	}
	return &Cell{arrayInfo: info, cells: cells}, nil
}

func (d *decoder) readStruct(r *binpkg.Reader, info arrayInfo) (Array, error) {
	lens, err := readValues[int32](d, r, "field name length", 1)
	if err != nil {
		return nil, err
	}
	nameLen := int(lens[0])

	namesTag, err := tag.Expect(r, "field names", tag.Int8, tag.Uint8)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	raw := namesTag.Data
	if nameLen <= 0 {
		if len(raw) != 0 {
			return nil, corrupt("field name length %d with %d name bytes", nameLen, len(raw))
		}
		nameLen = 0
	} else if len(raw)%nameLen != 0 {
		return nil, corrupt("%d name bytes are not a multiple of %d", len(raw), nameLen)
	}

	s := &Struct{arrayInfo: info, byName: make(map[string]int), nameLen: nameLen}
	for off := 0; off < len(raw); off += nameLen {
		field := raw[off : off+nameLen]
		if i := bytes.IndexByte(field, 0); i >= 0 {
			field = field[:i]
		}
		name := string(field)
		if _, dup := s.byName[name]; dup || name == "" {
			return nil, corrupt("bad field name %q", name)
		}
		s.byName[name] = len(s.fields)
		s.fields = append(s.fields, name)
	}

	if len(s.fields) == 0 {
		return s, nil
	}
	if err := checkNested(r, info.count); err != nil {
		return nil, err
	}
	if err := checkNested(r, info.count*len(s.fields)); err != nil {
		return nil, err
	}
	s.values = make([][]Array, info.count)
	for e := range s.values {
		s.values[e] = make([]Array, len(s.fields))
		for f, name := range s.fields {
			a, err := d.readNested(r)
			if err != nil {
				return nil, fmt.Errorf("element %d field %q: %w", e+1, name, err)
			}
			s.values[e][f] = a
		}
	}
	return s, nil
}

func (d *decoder) readSparse(r *binpkg.Reader, info arrayInfo, nzmax int) (Array, error) {
	if len(info.dims) != 2 {
		return nil, corrupt("sparse matrix with %d dimensions", len(info.dims))
	}
	ir, err := readValues[int64](d, r, "row indices", -1)
	if err != nil {
		return nil, err
	}
	jc, err := readValues[int64](d, r, "column pointers", info.dims[1]+1)
	if err != nil {
		return nil, err
	}
	nnz := int(jc[len(jc)-1])
	if nnz < 0 || nnz > len(ir) {
		return nil, fmt.Errorf("%w: %d row indices for %d entries", ErrDimensionMismatch, len(ir), nnz)
	}

	var re []float64
	if r.Remaining() == 0 && info.flags.IsLogical() {
		re = make([]float64, nnz)
		for i := range re {
			re[i] = 1
		}
	} else if re, err = readSparseValues(d, r, "real part", nnz); err != nil {
		return nil, err
	}
	var im []float64
	if info.flags.IsComplex() {
		if im, err = readSparseValues(d, r, "imaginary part", nnz); err != nil {
			return nil, err
		}
	}

	s, err := NewSparseCSC(info.name, info.dims, nzmax, toInts(ir[:nnz]), toInts(jc), re, im)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptData, err)
	}
	s.flags = info.flags
	return s, nil
}

// readSparseValues reads at least n values and keeps the first n. Files
// may store nzmax values rather than nnz.
func readSparseValues(d *decoder, r *binpkg.Reader, what string, n int) ([]float64, error) {
	values, err := readValues[float64](d, r, what, -1)
	if err != nil {
		return nil, err
	}
	if len(values) < n {
		return nil, fmt.Errorf("%w: %s holds %d values for %d entries", ErrDimensionMismatch, what, len(values), n)
	}
	return values[:n], nil
}

func toInts(v []int64) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}
