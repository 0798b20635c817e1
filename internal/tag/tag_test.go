package tag

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	binpkg "github.com/robert-malhotra/go-matfile/internal/binary"
)

func TestWriteFormSelection(t *testing.T) {
	tests := []struct {
		size      int
		small     bool
		totalSize int
	}{
		{0, false, 8},
		{1, true, 8},
		{2, true, 8},
		{3, true, 8},
		{4, true, 8},
		{5, false, 16},
		{8, false, 16},
		{9, false, 24},
		{16, false, 24},
	}

	for _, tt := range tests {
		w := binpkg.NewWriter(binary.LittleEndian)
		Write(w, Uint8, bytes.Repeat([]byte{0xAB}, tt.size))

		if w.Len() != tt.totalSize {
			t.Errorf("size %d: expected %d encoded bytes, got %d", tt.size, tt.totalSize, w.Len())
		}
		if EncodedSize(tt.size) != tt.totalSize {
			t.Errorf("size %d: EncodedSize=%d, want %d", tt.size, EncodedSize(tt.size), tt.totalSize)
		}

		word := binary.LittleEndian.Uint32(w.Bytes())
		gotSmall := word>>16 != 0
		if gotSmall != tt.small {
			t.Errorf("size %d: small form = %v, want %v", tt.size, gotSmall, tt.small)
		}
		if IsSmall(tt.size) != tt.small {
			t.Errorf("size %d: IsSmall = %v, want %v", tt.size, IsSmall(tt.size), tt.small)
		}
	}
}

func TestWriteSmallLayout(t *testing.T) {
	w := binpkg.NewWriter(binary.LittleEndian)
	Write(w, Int8, []byte("ab"))

	expected := []byte{
		0x01, 0x00, 0x02, 0x00, // type miINT8, size 2
		'a', 'b', 0x00, 0x00,
	}
	if !bytes.Equal(w.Bytes(), expected) {
		t.Errorf("expected %x, got %x", expected, w.Bytes())
	}
}

func TestWriteLongLayoutBigEndian(t *testing.T) {
	w := binpkg.NewWriter(binary.BigEndian)
	Write(w, Double, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	expected := []byte{
		0x00, 0x00, 0x00, 0x09,
		0x00, 0x00, 0x00, 0x0A,
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		0, 0, 0, 0, 0, 0,
	}
	if !bytes.Equal(w.Bytes(), expected) {
		t.Errorf("expected %x, got %x", expected, w.Bytes())
	}
}

func TestReadRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x01},
		{0x01, 0x02},
		{0x01, 0x02, 0x03},
		{0x01, 0x02, 0x03, 0x04},
		{0x01, 0x02, 0x03, 0x04, 0x05},
		bytes.Repeat([]byte{0x7F}, 64),
	}

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		w := binpkg.NewWriter(order)
		for _, p := range payloads {
			Write(w, Uint8, p)
		}
		Write(w, Int32, []byte{0xFF, 0xFF, 0xFF, 0xFF})

		r := binpkg.NewReader(w.Bytes(), order)
		for i, p := range payloads {
			got, err := Read(r)
			if err != nil {
				t.Fatalf("%s payload %d: Read failed: %v", order, i, err)
			}
			if got.Type != Uint8 {
				t.Errorf("%s payload %d: type %s, want miUINT8", order, i, got.Type)
			}
			if !bytes.Equal(got.Data, p) {
				t.Errorf("%s payload %d: data %x, want %x", order, i, got.Data, p)
			}
			if got.Small != IsSmall(len(p)) {
				t.Errorf("%s payload %d: small %v", order, i, got.Small)
			}
		}

		last, err := Expect(r, "trailer", Int32)
		if err != nil {
			t.Fatalf("%s: Expect failed: %v", order, err)
		}
		if len(last.Data) != 4 {
			t.Errorf("%s: expected 4 bytes, got %d", order, len(last.Data))
		}
		if r.Remaining() != 0 {
			t.Errorf("%s: %d bytes left over", order, r.Remaining())
		}
	}
}

func TestReadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"truncated header", []byte{0x01, 0x00}},
		{"small size too large", []byte{0x02, 0x00, 0x05, 0x00, 0, 0, 0, 0}},
		{"small size not multiple of width", []byte{0x05, 0x00, 0x03, 0x00, 1, 2, 3, 0}},
		{"long size past end", []byte{0x02, 0, 0, 0, 0x20, 0, 0, 0, 1, 2, 3}},
		{"missing long size", []byte{0x02, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := binpkg.NewReader(tt.data, binary.LittleEndian)
			if _, err := Read(r); !errors.Is(err, ErrCorrupt) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestReadToleratesMissingFinalPadding(t *testing.T) {
	data := []byte{0x02, 0, 0, 0, 0x05, 0, 0, 0, 1, 2, 3, 4, 5}
	r := binpkg.NewReader(data, binary.LittleEndian)

	got, err := Read(r)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(got.Data, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("unexpected payload %x", got.Data)
	}
}

func TestExpectWrongType(t *testing.T) {
	w := binpkg.NewWriter(binary.LittleEndian)
	Write(w, Double, make([]byte, 8))

	r := binpkg.NewReader(w.Bytes(), binary.LittleEndian)
	if _, err := Expect(r, "dimensions", Int32); !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}

func TestDataTypeProperties(t *testing.T) {
	if Double.Size() != 8 || Int8.Size() != 1 || Uint16.Size() != 2 || Single.Size() != 4 {
		t.Error("unexpected element widths")
	}
	if Matrix.Size() != 0 || Compressed.Size() != 0 {
		t.Error("matrix and compressed have no element width")
	}
	if !Uint64.IsNumeric() || UTF8.IsNumeric() || Matrix.IsNumeric() {
		t.Error("unexpected IsNumeric result")
	}
	if Matrix.String() != "miMATRIX" {
		t.Errorf("unexpected name %q", Matrix.String())
	}
	if DataType(99).String() != "DataType(99)" {
		t.Errorf("unexpected name %q", DataType(99).String())
	}
}
