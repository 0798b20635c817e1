// Package binary provides the low-level byte cursor used for MAT-file
// parsing and writing.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrOutOfBounds is returned when a read, skip or patch would cross the end
// of the underlying buffer.
var ErrOutOfBounds = errors.New("access out of bounds")

// Reader is a cursor over an in-memory byte slice that decodes fixed-width
// values in a configured byte order.
//
// Slices returned by ReadBytes and Peek alias the underlying buffer.
type Reader struct {
	data  []byte
	order binary.ByteOrder
	pos   int
}

// NewReader creates a reader over data using the given byte order.
func NewReader(data []byte, order binary.ByteOrder) *Reader {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Reader{data: data, order: order}
}

// At returns a new reader over the same data positioned at offset.
func (r *Reader) At(offset int) *Reader {
	return &Reader{data: r.data, order: r.order, pos: offset}
}

// Sub consumes the next n bytes and returns a reader limited to them.
func (r *Reader) Sub(n int) (*Reader, error) {
	buf, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return &Reader{data: buf, order: r.order}, nil
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

// Rewind moves the position back to the start of the buffer.
func (r *Reader) Rewind() {
	r.pos = 0
}

func (r *Reader) check(n int) error {
	if n < 0 || n > r.Remaining() {
		return fmt.Errorf("%w: need %d bytes at offset %d, %d remaining",
			ErrOutOfBounds, n, r.pos, r.Remaining())
	}
	return nil
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.check(n); err != nil {
		return nil, err
	}
	buf := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return buf, nil
}

// Peek returns the next n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	if err := r.check(n); err != nil {
		return nil, err
	}
	return r.data[r.pos : r.pos+n : r.pos+n], nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int) error {
	if err := r.check(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(buf), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(buf), nil
}

// ReadInt8 reads a signed 8-bit integer.
func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

// ReadInt16 reads a signed 16-bit integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads a signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads an IEEE 754 single-precision value.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads an IEEE 754 double-precision value.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// ByteOrder returns the configured byte order.
func (r *Reader) ByteOrder() binary.ByteOrder {
	return r.order
}
