package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestReaderReadUint8(t *testing.T) {
	r := NewReader([]byte{0x42, 0xFF, 0x00}, binary.LittleEndian)

	v, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02x", v)
	}

	v, err = r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02x", v)
	}
	if r.Remaining() != 1 {
		t.Errorf("expected 1 byte remaining, got %d", r.Remaining())
	}
}

func TestReaderByteOrder(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}

	le := NewReader(data, binary.LittleEndian)
	v, err := le.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0x04030201 {
		t.Errorf("little-endian: expected 0x04030201, got 0x%08x", v)
	}

	be := NewReader(data, binary.BigEndian)
	v, err = be.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0x01020304 {
		t.Errorf("big-endian: expected 0x01020304, got 0x%08x", v)
	}
}

func TestReaderSignedAndFloat(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, int16(-2))
	binary.Write(&buf, binary.BigEndian, int32(-70000))
	binary.Write(&buf, binary.BigEndian, int64(math.MinInt64))
	binary.Write(&buf, binary.BigEndian, float32(1.5))
	binary.Write(&buf, binary.BigEndian, math.MaxFloat64)
	binary.Write(&buf, binary.BigEndian, int8(-128))

	r := NewReader(buf.Bytes(), binary.BigEndian)

	i16, err := r.ReadInt16()
	if err != nil || i16 != -2 {
		t.Errorf("ReadInt16: got %d, %v", i16, err)
	}
	i32, err := r.ReadInt32()
	if err != nil || i32 != -70000 {
		t.Errorf("ReadInt32: got %d, %v", i32, err)
	}
	i64, err := r.ReadInt64()
	if err != nil || i64 != math.MinInt64 {
		t.Errorf("ReadInt64: got %d, %v", i64, err)
	}
	f32, err := r.ReadFloat32()
	if err != nil || f32 != 1.5 {
		t.Errorf("ReadFloat32: got %v, %v", f32, err)
	}
	f64, err := r.ReadFloat64()
	if err != nil || f64 != math.MaxFloat64 {
		t.Errorf("ReadFloat64: got %v, %v", f64, err)
	}
	i8, err := r.ReadInt8()
	if err != nil || i8 != -128 {
		t.Errorf("ReadInt8: got %d, %v", i8, err)
	}
	if r.Remaining() != 0 {
		t.Errorf("expected reader to be exhausted, %d remaining", r.Remaining())
	}
}

func TestReaderOutOfBounds(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03}, binary.LittleEndian)

	if _, err := r.ReadUint32(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	// A failed read must not move the cursor.
	if r.Pos() != 0 {
		t.Errorf("expected position 0 after failed read, got %d", r.Pos())
	}
	if err := r.Skip(4); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Skip: expected ErrOutOfBounds, got %v", err)
	}
	if _, err := r.Peek(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Peek(-1): expected ErrOutOfBounds, got %v", err)
	}
	if _, err := r.Sub(8); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Sub: expected ErrOutOfBounds, got %v", err)
	}
}

func TestReaderPeekSkipRewind(t *testing.T) {
	r := NewReader([]byte{0x00, 0x01, 0x02, 0x03, 0x04}, binary.LittleEndian)

	peeked, err := r.Peek(2)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if !bytes.Equal(peeked, []byte{0x00, 0x01}) {
		t.Errorf("unexpected peek result %v", peeked)
	}
	if r.Pos() != 0 {
		t.Errorf("Peek moved the cursor to %d", r.Pos())
	}

	if err := r.Skip(3); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	v, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x03 {
		t.Errorf("expected 0x03 after skip, got 0x%02x", v)
	}

	r.Rewind()
	if r.Pos() != 0 || r.Remaining() != 5 {
		t.Errorf("Rewind: pos=%d remaining=%d", r.Pos(), r.Remaining())
	}
}

func TestReaderSub(t *testing.T) {
	r := NewReader([]byte{0xAA, 0x01, 0x00, 0x02, 0x00, 0xBB}, binary.LittleEndian)
	if err := r.Skip(1); err != nil {
		t.Fatalf("Skip failed: %v", err)
	}

	sub, err := r.Sub(4)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if sub.Len() != 4 {
		t.Fatalf("expected sub-reader of 4 bytes, got %d", sub.Len())
	}
	a, _ := sub.ReadUint16()
	b, _ := sub.ReadUint16()
	if a != 1 || b != 2 {
		t.Errorf("sub-reader decoded %d, %d", a, b)
	}
	if _, err := sub.ReadUint8(); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("sub-reader should be bounded, got %v", err)
	}

	last, err := r.ReadUint8()
	if err != nil || last != 0xBB {
		t.Errorf("parent reader after Sub: got 0x%02x, %v", last, err)
	}
}

func TestReaderAt(t *testing.T) {
	r := NewReader([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, binary.LittleEndian)

	r2 := r.At(4)
	v, err := r2.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0x0504 {
		t.Errorf("expected 0x0504, got 0x%04x", v)
	}
	if r.Pos() != 0 {
		t.Errorf("original reader moved to %d", r.Pos())
	}

	be := NewReader([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05}, binary.BigEndian).At(4)
	v, err = be.ReadUint16()
	if err != nil {
		t.Fatalf("ReadUint16 failed: %v", err)
	}
	if v != 0x0405 {
		t.Errorf("expected 0x0405, got 0x%04x", v)
	}
}
