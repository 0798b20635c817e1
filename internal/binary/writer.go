package binary

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer is a growable byte buffer that encodes fixed-width values in a
// configured byte order. Writes never fail; only back-patching is
// bounds-checked.
type Writer struct {
	buf   []byte
	order binary.ByteOrder
}

// NewWriter creates an empty writer using the given byte order.
func NewWriter(order binary.ByteOrder) *Writer {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Writer{order: order}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the written bytes. The slice aliases the writer's buffer
// until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reset discards all written bytes, keeping the allocated capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
}

// Grow ensures room for another n bytes without reallocation.
func (w *Writer) Grow(n int) {
	if n <= 0 || cap(w.buf)-len(w.buf) >= n {
		return
	}
	grown := make([]byte, len(w.buf), 2*cap(w.buf)+n)
	copy(grown, w.buf)
	w.buf = grown
}

// WriteBytes appends data.
func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	w.WriteBytes(p)
	return len(p), nil
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint16 writes an unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	w.order.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt8 writes a signed 8-bit integer.
func (w *Writer) WriteInt8(v int8) { w.WriteUint8(uint8(v)) }

// WriteInt16 writes a signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }

// WriteInt32 writes a signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

// WriteInt64 writes a signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

// WriteFloat32 writes an IEEE 754 single-precision value.
func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }

// WriteFloat64 writes an IEEE 754 double-precision value.
func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

// WriteZeros writes n zero bytes.
func (w *Writer) WriteZeros(n int) {
	for ; n > 0; n-- {
		w.buf = append(w.buf, 0)
	}
}

// PutUint32At overwrites the 4 bytes at offset with v. Used to back-patch
// size fields once a record's length is known.
func (w *Writer) PutUint32At(offset int, v uint32) error {
	if offset < 0 || offset+4 > len(w.buf) {
		return fmt.Errorf("%w: patch 4 bytes at offset %d, length %d",
			ErrOutOfBounds, offset, len(w.buf))
	}
	w.order.PutUint32(w.buf[offset:], v)
	return nil
}

// WriteTo implements io.WriterTo.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf)
	return int64(n), err
}

// ByteOrder returns the configured byte order.
func (w *Writer) ByteOrder() binary.ByteOrder {
	return w.order
}
