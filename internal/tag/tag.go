// Package tag implements the MAT-file data element framing.
//
// Every data element starts with an 8-byte tag: a 4-byte data type and a
// 4-byte payload size, followed by the payload and zero padding up to the
// next 8-byte boundary. Payloads of 1 to 4 bytes use the small element
// format instead: size and type are packed into one 4-byte word
// (size<<16 | type) and the payload follows inline in the next 4 bytes.
//
// The reader cannot know in advance which form it will meet. It looks at the
// upper 16 bits of the first word: a non-zero value can only be a small
// element size, since no data type code needs more than 16 bits. A long
// element whose type word had stray upper bits would therefore be misread;
// MATLAB never writes one, and the check is kept as is for compatibility.
package tag

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-matfile/internal/binary"
)

// DataType identifies the encoding of a data element payload.
type DataType uint32

// Data type codes from the level-5 MAT-file format.
const (
	Int8       DataType = 1
	Uint8      DataType = 2
	Int16      DataType = 3
	Uint16     DataType = 4
	Int32      DataType = 5
	Uint32     DataType = 6
	Single     DataType = 7
	Double     DataType = 9
	Int64      DataType = 12
	Uint64     DataType = 13
	Matrix     DataType = 14
	Compressed DataType = 15
	UTF8       DataType = 16
	UTF16      DataType = 17
	UTF32      DataType = 18
)

const (
	// HeaderSize is the size of a long-form tag.
	HeaderSize = 8

	// SmallMaxSize is the largest payload stored in a small element.
	SmallMaxSize = 4

	longAlign  = 8
	smallAlign = 4
)

// ErrCorrupt is returned when a tag cannot be decoded.
var ErrCorrupt = errors.New("corrupt data element")

var typeNames = map[DataType]string{
	Int8:       "miINT8",
	Uint8:      "miUINT8",
	Int16:      "miINT16",
	Uint16:     "miUINT16",
	Int32:      "miINT32",
	Uint32:     "miUINT32",
	Single:     "miSINGLE",
	Double:     "miDOUBLE",
	Int64:      "miINT64",
	Uint64:     "miUINT64",
	Matrix:     "miMATRIX",
	Compressed: "miCOMPRESSED",
	UTF8:       "miUTF8",
	UTF16:      "miUTF16",
	UTF32:      "miUTF32",
}

func (t DataType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", uint32(t))
}

// Size returns the width in bytes of one element of t, or 0 for types that
// are not fixed-width (matrix, compressed) or unknown.
func (t DataType) Size() int {
	switch t {
	case Int8, Uint8, UTF8:
		return 1
	case Int16, Uint16, UTF16:
		return 2
	case Int32, Uint32, Single, UTF32:
		return 4
	case Int64, Uint64, Double:
		return 8
	default:
		return 0
	}
}

// IsNumeric reports whether t carries numeric elements.
func (t DataType) IsNumeric() bool {
	switch t {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32, Single, Double, Int64, Uint64:
		return true
	default:
		return false
	}
}

// Tag is a decoded data element.
type Tag struct {
	Type DataType

	// Data aliases the buffer the tag was read from.
	Data []byte

	// Small is true when the element used the small (inline) format.
	Small bool
}

// IsSmall reports whether a payload of size bytes is written in the small
// element format.
func IsSmall(size int) bool {
	return size >= 1 && size <= SmallMaxSize
}

// Padding returns the number of zero bytes that follow a payload of size
// bytes.
func Padding(size int, small bool) int {
	align := longAlign
	if small {
		align = smallAlign
	}
	if rem := size % align; rem != 0 {
		return align - rem
	}
	return 0
}

// EncodedSize returns the total number of bytes Write produces for a payload
// of size bytes.
func EncodedSize(size int) int {
	if IsSmall(size) {
		return smallAlign + size + Padding(size, true)
	}
	return HeaderSize + size + Padding(size, false)
}

// Write encodes a data element, choosing the small format for payloads of
// 1 to 4 bytes.
func Write(w *binary.Writer, typ DataType, data []byte) {
	size := len(data)
	if IsSmall(size) {
		w.WriteUint32(uint32(size)<<16 | uint32(typ)&0xffff)
		w.WriteBytes(data)
		w.WriteZeros(Padding(size, true))
		return
	}
	w.WriteUint32(uint32(typ))
	w.WriteUint32(uint32(size))
	w.WriteBytes(data)
	w.WriteZeros(Padding(size, false))
}

// WriteHeader writes a long-form tag header only. The caller writes the
// payload, and any padding, itself.
func WriteHeader(w *binary.Writer, typ DataType, size int) {
	w.WriteUint32(uint32(typ))
	w.WriteUint32(uint32(size))
}

// ReadHeader decodes a tag header. For small elements the returned size is
// the inline payload size and the reader is left at the payload.
func ReadHeader(r *binary.Reader) (typ DataType, size int, small bool, err error) {
	word, err := r.ReadUint32()
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: tag header: %w", ErrCorrupt, err)
	}

	if n := int(word >> 16); n != 0 {
		typ = DataType(word & 0xffff)
		if n > SmallMaxSize {
			return 0, 0, false, fmt.Errorf("%w: small element of %s declares %d bytes", ErrCorrupt, typ, n)
		}
		if width := typ.Size(); width > 0 && n%width != 0 {
			return 0, 0, false, fmt.Errorf("%w: small element of %s has %d bytes", ErrCorrupt, typ, n)
		}
		return typ, n, true, nil
	}

	length, err := r.ReadUint32()
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: tag size: %w", ErrCorrupt, err)
	}
	if int64(length) > int64(r.Remaining()) {
		return 0, 0, false, fmt.Errorf("%w: %s declares %d bytes, %d remaining",
			ErrCorrupt, DataType(word), length, r.Remaining())
	}
	return DataType(word), int(length), false, nil
}

// Read decodes one complete data element, including its padding.
// Padding missing at the very end of the buffer is tolerated.
func Read(r *binary.Reader) (Tag, error) {
	typ, size, small, err := ReadHeader(r)
	if err != nil {
		return Tag{}, err
	}

	data, err := r.ReadBytes(size)
	if err != nil {
		return Tag{}, fmt.Errorf("%w: %s payload: %w", ErrCorrupt, typ, err)
	}
	if err := r.Skip(min(Padding(size, small), r.Remaining())); err != nil {
		return Tag{}, err
	}
	return Tag{Type: typ, Data: data, Small: small}, nil
}

// Expect reads a data element and checks that its type is one of types.
func Expect(r *binary.Reader, what string, types ...DataType) (Tag, error) {
	t, err := Read(r)
	if err != nil {
		return Tag{}, fmt.Errorf("%s: %w", what, err)
	}
	for _, typ := range types {
		if t.Type == typ {
			return t, nil
		}
	}
	return Tag{}, fmt.Errorf("%w: %s stored as %s", ErrCorrupt, what, t.Type)
}
