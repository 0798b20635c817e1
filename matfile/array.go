package matfile

import (
	"fmt"
	"math"
	"slices"
)

// Array is one MATLAB variable, or one element nested inside a cell or
// structure. The concrete types are *Numeric[T], *Char, *Cell, *Struct,
// *Sparse and *Empty; the set is closed.
type Array interface {
	// Name is the variable name. Nested elements usually have none.
	Name() string

	// Dims returns a copy of the dimensions. It always has at least two
	// entries.
	Dims() []int

	Class() Class
	Flags() Flags
	IsComplex() bool
	IsGlobal() bool
	IsLogical() bool

	// Len is the number of elements, the product of Dims.
	Len() int
	Rows() int
	Cols() int

	// String returns a one-line summary such as "X: [1x1 struct]".
	String() string

	// ContentString renders the values in a MATLAB-like layout.
	ContentString() string

	info() *arrayInfo
}

// arrayInfo holds what every array variant has in common.
type arrayInfo struct {
	name  string
	dims  []int
	flags Flags
	count int
}

func newArrayInfo(name string, dims []int, flags Flags) (arrayInfo, error) {
	switch len(dims) {
	case 0:
		dims = []int{0, 0}
	case 1:
		dims = []int{dims[0], 1}
	default:
		dims = slices.Clone(dims)
	}

	count := 1
	for i, d := range dims {
		if d < 0 || d > math.MaxInt32 {
			return arrayInfo{}, fmt.Errorf("%w: dimension %d is %d", ErrDimensionMismatch, i, d)
		}
		if d != 0 && count > math.MaxInt/d {
			return arrayInfo{}, fmt.Errorf("%w: %v holds too many elements", ErrDimensionMismatch, dims)
		}
		count *= d
	}
	return arrayInfo{name: name, dims: dims, flags: flags, count: count}, nil
}

func (a *arrayInfo) info() *arrayInfo { return a }

func (a *arrayInfo) Name() string    { return a.name }
func (a *arrayInfo) Dims() []int     { return slices.Clone(a.dims) }
func (a *arrayInfo) Class() Class    { return a.flags.Class() }
func (a *arrayInfo) Flags() Flags    { return a.flags }
func (a *arrayInfo) IsComplex() bool { return a.flags.IsComplex() }
func (a *arrayInfo) IsGlobal() bool  { return a.flags.IsGlobal() }
func (a *arrayInfo) IsLogical() bool { return a.flags.IsLogical() }
func (a *arrayInfo) Len() int        { return a.count }
func (a *arrayInfo) Rows() int       { return a.dims[0] }

// Cols returns the number of columns, folding any trailing dimensions in.
func (a *arrayInfo) Cols() int {
	if a.dims[0] == 0 {
		return 0
	}
	return a.count / a.dims[0]
}

// SetGlobal sets or clears the global attribute.
func (a *arrayInfo) SetGlobal(global bool) {
	if global {
		a.flags |= FlagGlobal
	} else {
		a.flags &^= FlagGlobal
	}
}

func (a *arrayInfo) checkIndex(i int) error {
	if i < 0 || i >= a.count {
		return fmt.Errorf("%w: index %d, %d elements", ErrIndexOutOfRange, i, a.count)
	}
	return nil
}

// index converts a zero-based (row, col) pair to a column-major offset.
func (a *arrayInfo) index(row, col int) (int, error) {
	if row < 0 || row >= a.Rows() || col < 0 || col >= a.Cols() {
		return 0, fmt.Errorf("%w: (%d,%d) in %s", ErrIndexOutOfRange, row, col, formatDims(a.dims))
	}
	return row + col*a.Rows(), nil
}
