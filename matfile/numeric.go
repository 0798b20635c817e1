package matfile

import (
	"fmt"

	"github.com/robert-malhotra/go-matfile/internal/dtype"
)

// Number is the set of Go element types backing numeric arrays.
type Number = dtype.Number

// Numeric is a dense numeric matrix stored in column-major order. The
// element type selects the class: float64 is double, int8 is int8, and so
// on. Logical arrays are uint8 arrays with the logical flag set.
type Numeric[T Number] struct {
	arrayInfo
	real []T
	imag []T
}

// Aliases for each numeric class.
type (
	Double = Numeric[float64]
	Single = Numeric[float32]
	Int8   = Numeric[int8]
	Uint8  = Numeric[uint8]
	Int16  = Numeric[int16]
	Uint16 = Numeric[uint16]
	Int32  = Numeric[int32]
	Uint32 = Numeric[uint32]
	Int64  = Numeric[int64]
	Uint64 = Numeric[uint64]
)

// ClassOf returns the array class for element type T.
func ClassOf[T Number]() Class {
	var zero T
	switch any(zero).(type) {
	case float64:
		return ClassDouble
	case float32:
		return ClassSingle
	case int8:
		return ClassInt8
	case uint8:
		return ClassUint8
	case int16:
		return ClassInt16
	case uint16:
		return ClassUint16
	case int32:
		return ClassInt32
	case uint32:
		return ClassUint32
	case int64:
		return ClassInt64
	default:
		return ClassUint64
	}
}

// NewNumeric creates a real array. values are in column-major order and
// are retained, not copied. A nil values slice allocates zeros.
func NewNumeric[T Number](name string, dims []int, values []T) (*Numeric[T], error) {
	return newNumeric(name, dims, values, nil, 0)
}

// NewComplex creates a complex array from equal-length real and imaginary
// parts.
func NewComplex[T Number](name string, dims []int, re, im []T) (*Numeric[T], error) {
	if im == nil {
		im = make([]T, len(re))
	}
	return newNumeric(name, dims, re, im, FlagComplex)
}

// NewLogical creates a logical array. Non-zero values are true.
func NewLogical(name string, dims []int, values []uint8) (*Numeric[uint8], error) {
	return newNumeric(name, dims, values, nil, FlagLogical)
}

// NewScalar creates a 1x1 array.
func NewScalar[T Number](name string, v T) *Numeric[T] {
	a, _ := NewNumeric(name, []int{1, 1}, []T{v})
	return a
}

// NewMatrix creates a rows x (len(values)/rows) array from column-major
// values.
func NewMatrix[T Number](name string, values []T, rows int) (*Numeric[T], error) {
	if rows <= 0 || len(values)%rows != 0 {
		return nil, fmt.Errorf("%w: %d values do not fill %d rows", ErrDimensionMismatch, len(values), rows)
	}
	return NewNumeric(name, []int{rows, len(values) / rows}, values)
}

func newNumeric[T Number](name string, dims []int, re, im []T, attrs Flags) (*Numeric[T], error) {
	info, err := newArrayInfo(name, dims, makeFlags(ClassOf[T](), attrs))
	if err != nil {
		return nil, err
	}
	if re == nil {
		re = make([]T, info.count)
	}
	if len(re) != info.count {
		return nil, fmt.Errorf("%w: %d real values for %s", ErrDimensionMismatch, len(re), formatDims(info.dims))
	}
	if info.flags.IsComplex() && len(im) != len(re) {
		return nil, fmt.Errorf("%w: %d imaginary values for %d real values", ErrDimensionMismatch, len(im), len(re))
	}
	return &Numeric[T]{arrayInfo: info, real: re, imag: im}, nil
}

// Real returns the real part. The slice is shared with the array.
func (a *Numeric[T]) Real() []T { return a.real }

// Imag returns the imaginary part, or nil for a real array. The slice is
// shared with the array.
func (a *Numeric[T]) Imag() []T { return a.imag }

// At returns the real value at column-major index i.
func (a *Numeric[T]) At(i int) (T, error) {
	if err := a.checkIndex(i); err != nil {
		var zero T
		return zero, err
	}
	return a.real[i], nil
}

// ImagAt returns the imaginary value at index i, zero for real arrays.
func (a *Numeric[T]) ImagAt(i int) (T, error) {
	var zero T
	if err := a.checkIndex(i); err != nil {
		return zero, err
	}
	if a.imag == nil {
		return zero, nil
	}
	return a.imag[i], nil
}

// AtRC returns the real value at zero-based (row, col).
func (a *Numeric[T]) AtRC(row, col int) (T, error) {
	i, err := a.index(row, col)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.real[i], nil
}

// Set stores a real value at index i.
func (a *Numeric[T]) Set(i int, v T) error {
	if err := a.checkIndex(i); err != nil {
		return err
	}
	a.real[i] = v
	return nil
}

// SetRC stores a real value at zero-based (row, col).
func (a *Numeric[T]) SetRC(row, col int, v T) error {
	i, err := a.index(row, col)
	if err != nil {
		return err
	}
	a.real[i] = v
	return nil
}

// SetComplex stores a complex value at index i. A real array becomes
// complex, with zero imaginary parts elsewhere.
func (a *Numeric[T]) SetComplex(i int, re, im T) error {
	if err := a.checkIndex(i); err != nil {
		return err
	}
	if a.imag == nil {
		a.imag = make([]T, len(a.real))
		a.flags |= FlagComplex
	}
	a.real[i] = re
	a.imag[i] = im
	return nil
}
