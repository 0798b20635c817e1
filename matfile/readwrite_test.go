package matfile

import (
	"encoding/binary"
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/robert-malhotra/go-matfile/internal/tag"
)

// sampleArrays returns one array of every variant, nested where the format
// allows it.
func sampleArrays(t *testing.T) []Array {
	t.Helper()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	double, err := NewNumeric("Double", []int{2, 1}, []float64{math.MaxFloat64, -math.MaxFloat64})
	must(err)
	cplx, err := NewComplex("Z", []int{1, 3}, []int64{math.MinInt64, 0, math.MaxInt64}, []int64{1, -1, 7})
	must(err)
	logical, err := NewLogical("mask", []int{2, 2}, []uint8{1, 0, 0, 1})
	must(err)
	cube, err := NewNumeric("cube", []int{2, 2, 2}, []int16{1, 2, 3, 4, 5, 6, 7, 8})
	must(err)

	names, err := NewCell("Names", []int{5, 1})
	must(err)
	for i, s := range []string{"Hello", "World", "I am", "a", "MAT-file"} {
		must(names.Set(i, NewChar("", s)))
	}

	x, err := NewStruct("X", []int{1, 1})
	must(err)
	must(x.SetField("w", 0, NewScalar("", uint8(1))))
	must(x.SetField("y", 0, NewScalar("", uint8(2))))
	must(x.SetField("z", 0, NewScalar("", uint8(3))))

	arr, err := NewStruct("arr", []int{1, 2})
	must(err)
	must(arr.SetField("a", 0, NewChar("", "first")))
	must(arr.SetField("b", 1, names))

	sparse, err := NewSparse("S", 3, 3, 3)
	must(err)
	must(sparse.Set(0, 0, 1.5))
	must(sparse.Set(1, 1, 2.5))
	must(sparse.Set(2, 2, 3.5))

	csparse, err := NewSparse("CS", 2, 4, 0)
	must(err)
	must(csparse.SetComplex(1, 3, 1, -2))

	holes, err := NewCell("holes", []int{1, 2})
	must(err)

	global := NewScalar("g", float32(math.Pi))
	global.SetGlobal(true)

	return []Array{
		double, cplx, logical, cube, names, x, arr, sparse, csparse, holes, global,
		NewChar("AName", "Hello World v4.0!"),
		NewCharMatrix("rows", "one", "three"),
		NewChar("unicode", "naïve ∑ 世界"),
		NewScalar("i8", int8(math.MinInt8)),
		NewScalar("u16", uint16(math.MaxUint16)),
		NewScalar("i32", int32(math.MinInt32)),
		NewScalar("u32", uint32(math.MaxUint32)),
		NewScalar("u64", uint64(math.MaxUint64)),
		NewScalar("nan", math.NaN()),
	}
}

func TestRoundTripAllVariants(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		for _, compress := range []bool{false, true} {
			name := order.String()
			if compress {
				name += "/compressed"
			}
			t.Run(name, func(t *testing.T) {
				arrays := sampleArrays(t)
				data, err := Encode(arrays, WithByteOrder(order), WithCompression(compress))
				if err != nil {
					t.Fatalf("Encode failed: %v", err)
				}

				f, err := Decode(data)
				if err != nil {
					t.Fatalf("Decode failed: %v", err)
				}
				if f.Header.ByteOrder != order {
					t.Errorf("expected byte order %s, got %s", order, f.Header.ByteOrder)
				}
				if len(f.Arrays) != len(arrays) {
					t.Fatalf("expected %d arrays, got %d", len(arrays), len(f.Arrays))
				}
				for i := range arrays {
					if !Equal(arrays[i], f.Arrays[i]) {
						t.Errorf("array %d (%s) changed:\nwant %s\ngot  %s",
							i, arrays[i].Name(), arrays[i].ContentString(), f.Arrays[i].ContentString())
					}
				}
			})
		}
	}
}

func TestCompressionEquivalence(t *testing.T) {
	arrays := sampleArrays(t)
	plain, err := Encode(arrays)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	packed, err := Encode(arrays, WithCompressionLevel(9))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	a, err := Decode(plain)
	if err != nil {
		t.Fatalf("Decode plain failed: %v", err)
	}
	b, err := Decode(packed)
	if err != nil {
		t.Fatalf("Decode compressed failed: %v", err)
	}
	for i := range a.Arrays {
		if !Equal(a.Arrays[i], b.Arrays[i]) {
			t.Errorf("array %s differs between plain and compressed files", a.Arrays[i].Name())
		}
	}
}

func TestDoubleScenarioLayout(t *testing.T) {
	d, _ := NewNumeric("Double", []int{2, 1}, []float64{math.MaxFloat64, -math.MaxFloat64})
	fixed := func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	data, err := Encode([]Array{d}, withClock(fixed))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	le := binary.LittleEndian
	body := data[HeaderSize:]
	if tag := le.Uint32(body); tag != 14 {
		t.Fatalf("expected miMATRIX, got type %d", tag)
	}
	// flags(16) + dims(16) + name(16) + real(24)
	if size := le.Uint32(body[4:]); size != 72 {
		t.Errorf("expected matrix size 72, got %d", size)
	}
	// The 6-byte name does not fit the small form.
	if le.Uint32(body[40:]) != 1 || le.Uint32(body[44:]) != 6 || string(body[48:54]) != "Double" {
		t.Errorf("unexpected name element % x", body[40:56])
	}
	if len(data) != HeaderSize+8+72 {
		t.Errorf("unexpected file size %d", len(data))
	}
}

func TestCellScenario(t *testing.T) {
	want := []string{"Hello", "World", "I am", "a", "MAT-file"}
	names, _ := NewCell("Names", []int{5, 1})
	for i, s := range want {
		names.Set(i, NewChar("", s))
	}

	data, err := Encode([]Array{names}, WithCompression(true))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	c, ok := f.Arrays[0].(*Cell)
	if !ok {
		t.Fatalf("expected *Cell, got %T", f.Arrays[0])
	}
	for i, s := range want {
		a, _ := c.At(i)
		ch, ok := a.(*Char)
		if !ok || ch.Text() != s {
			t.Errorf("cell %d: expected %q, got %s", i, s, a)
		}
	}
}

func TestSparseScenario(t *testing.T) {
	s, _ := NewSparse("S", 3, 3, 3)
	s.Set(0, 0, 1.5)
	s.Set(1, 1, 2.5)
	s.Set(2, 2, 3.5)

	data, err := Encode([]Array{s})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	got, ok := f.Arrays[0].(*Sparse)
	if !ok {
		t.Fatalf("expected *Sparse, got %T", f.Arrays[0])
	}
	if !slices.Equal(got.IR(), []int{0, 1, 2}) || !slices.Equal(got.JC(), []int{0, 1, 2, 3}) {
		t.Errorf("unexpected structure ir=%v jc=%v", got.IR(), got.JC())
	}
	if !slices.Equal(got.Real(), []float64{1.5, 2.5, 3.5}) {
		t.Errorf("unexpected values %v", got.Real())
	}
}

func TestEmptyFile(t *testing.T) {
	data, err := Encode(nil, WithDescription("nothing here"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(data) != HeaderSize {
		t.Fatalf("expected header only, got %d bytes", len(data))
	}
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(f.Arrays) != 0 || f.Header.Description != "nothing here" {
		t.Errorf("unexpected file %+v", f)
	}
}

func TestEncodeRejectsInvalidArrays(t *testing.T) {
	nils := []struct {
		name string
		a    Array
	}{
		{"nil interface", nil},
		{"nil char", (*Char)(nil)},
		{"nil double", (*Double)(nil)},
		{"nil struct", (*Struct)(nil)},
		{"nil sparse", (*Sparse)(nil)},
	}
	for _, tt := range nils {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode([]Array{tt.a}); !errors.Is(err, ErrUnsupportedArrayType) {
				t.Errorf("expected ErrUnsupportedArrayType, got %v", err)
			}
			if _, err := Encode([]Array{tt.a}, WithCompression(true)); !errors.Is(err, ErrUnsupportedArrayType) {
				t.Errorf("compressed: expected ErrUnsupportedArrayType, got %v", err)
			}
		})
	}

	// Shrink the imaginary part behind the constructor's back.
	z, _ := NewComplex("z", []int{1, 2}, []float64{1, 2}, []float64{3, 4})
	z.imag = z.imag[:1]
	if _, err := Encode([]Array{z}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestStructFieldNameLengthPreserved(t *testing.T) {
	s, _ := NewStruct("s", []int{1, 1})
	s.SetField("a", 0, NewScalar("", 1.0))
	s.nameLen = 32

	data, err := Encode([]Array{s})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := f.Arrays[0].(*Struct).FieldNameLength(); got != 32 {
		t.Errorf("expected field name length 32, got %d", got)
	}
}

func TestTypedNilChildrenStoreEmpty(t *testing.T) {
	c, _ := NewCell("c", []int{1, 2})
	if err := c.Set(0, (*Char)(nil)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	s, _ := NewStruct("s", []int{1, 1})
	if err := s.SetField("f", 0, (*Cell)(nil)); err != nil {
		t.Fatalf("SetField failed: %v", err)
	}

	data, err := Encode([]Array{c, s})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	f, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	child, _ := f.Arrays[0].(*Cell).At(0)
	if _, ok := child.(*Empty); !ok {
		t.Errorf("cell child: expected *Empty, got %T", child)
	}
	field, _ := f.Arrays[1].(*Struct).Field("f", 0)
	if _, ok := field.(*Empty); !ok {
		t.Errorf("struct field: expected *Empty, got %T", field)
	}

	if !Equal((*Char)(nil), nil) || Equal((*Char)(nil), NewChar("x", "y")) {
		t.Error("Equal should treat typed nil as nil")
	}
}

func TestCompressionLevelOutOfRange(t *testing.T) {
	x, _ := NewNumeric("x", []int{1, 3}, []float64{1, 2, 3})
	for _, level := range []int{-3, 10, 42} {
		data, err := Encode([]Array{x}, WithCompressionLevel(level))
		if err != nil {
			t.Fatalf("level %d: Encode failed: %v", level, err)
		}
		if typ := le.Uint32(data[HeaderSize:]); typ != uint32(tag.Compressed) {
			t.Errorf("level %d: first element has type %d, want compressed", level, typ)
		}
		f, err := Decode(data)
		if err != nil || !Equal(f.Arrays[0], x) {
			t.Errorf("level %d: round trip failed: %v", level, err)
		}
	}
	if ValidCompressionLevel(10) || !ValidCompressionLevel(-2) || !ValidCompressionLevel(9) {
		t.Error("ValidCompressionLevel bounds are wrong")
	}
}
