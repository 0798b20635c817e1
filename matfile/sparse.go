package matfile

import (
	"fmt"
	"slices"
)

// Sparse is a two-dimensional double matrix in compressed sparse column
// form. Column c holds entries jc[c] through jc[c+1]-1, with row indices in
// ir and values in real (and imag when complex).
type Sparse struct {
	arrayInfo
	nzmax int
	ir    []int
	jc    []int
	real  []float64
	imag  []float64
}

// NewSparse creates an all-zero rows x cols sparse matrix with room for
// nzmax entries.
func NewSparse(name string, rows, cols, nzmax int) (*Sparse, error) {
	info, err := newArrayInfo(name, []int{rows, cols}, makeFlags(ClassSparse, 0))
	if err != nil {
		return nil, err
	}
	if nzmax < 0 {
		return nil, fmt.Errorf("%w: nzmax %d", ErrDimensionMismatch, nzmax)
	}
	return &Sparse{
		arrayInfo: info,
		nzmax:     nzmax,
		ir:        make([]int, 0, nzmax),
		jc:        make([]int, cols+1),
		real:      make([]float64, 0, nzmax),
	}, nil
}

// NewSparseCSC creates a sparse matrix from compressed sparse column
// arrays. im may be nil for a real matrix. The slices are retained.
func NewSparseCSC(name string, dims []int, nzmax int, ir, jc []int, re, im []float64) (*Sparse, error) {
	if len(dims) != 2 {
		return nil, fmt.Errorf("%w: sparse matrices are two-dimensional, got %s", ErrDimensionMismatch, formatDims(dims))
	}
	var attrs Flags
	if im != nil {
		attrs = FlagComplex
	}
	info, err := newArrayInfo(name, dims, makeFlags(ClassSparse, attrs))
	if err != nil {
		return nil, err
	}

	rows, cols := dims[0], dims[1]
	if len(jc) != cols+1 {
		return nil, fmt.Errorf("%w: %d column pointers for %d columns", ErrDimensionMismatch, len(jc), cols)
	}
	nnz := jc[cols]
	if len(ir) != nnz || len(re) != nnz {
		return nil, fmt.Errorf("%w: %d row indices and %d values for %d entries", ErrDimensionMismatch, len(ir), len(re), nnz)
	}
	if im != nil && len(im) != nnz {
		return nil, fmt.Errorf("%w: %d imaginary values for %d entries", ErrDimensionMismatch, len(im), nnz)
	}
	if jc[0] != 0 {
		return nil, fmt.Errorf("%w: first column pointer is %d", ErrIndexOutOfRange, jc[0])
	}
	for c := range cols {
		if jc[c+1] < jc[c] {
			return nil, fmt.Errorf("%w: column pointers decrease at column %d", ErrIndexOutOfRange, c)
		}
	}
	for k, r := range ir {
		if r < 0 || r >= rows {
			return nil, fmt.Errorf("%w: row index %d at entry %d, %d rows", ErrIndexOutOfRange, r, k, rows)
		}
	}

	return &Sparse{
		arrayInfo: info,
		nzmax:     max(nzmax, nnz),
		ir:        ir,
		jc:        jc,
		real:      re,
		imag:      im,
	}, nil
}

// NZMax returns the allocated entry capacity recorded in the file.
func (s *Sparse) NZMax() int { return s.nzmax }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return s.jc[len(s.jc)-1] }

// IR returns a copy of the row indices.
func (s *Sparse) IR() []int { return slices.Clone(s.ir) }

// JC returns a copy of the column pointers.
func (s *Sparse) JC() []int { return slices.Clone(s.jc) }

// Real returns a copy of the stored real values.
func (s *Sparse) Real() []float64 { return slices.Clone(s.real) }

// Imag returns a copy of the stored imaginary values, nil when real.
func (s *Sparse) Imag() []float64 { return slices.Clone(s.imag) }

// find returns the entry position of (row, col) and whether it is stored.
// When absent, pos is where the entry would be inserted.
func (s *Sparse) find(row, col int) (pos int, ok bool) {
	for k := s.jc[col]; k < s.jc[col+1]; k++ {
		switch {
		case s.ir[k] == row:
			return k, true
		case s.ir[k] > row:
			return k, false
		}
	}
	return s.jc[col+1], false
}

// At returns the real value at zero-based (row, col).
func (s *Sparse) At(row, col int) (float64, error) {
	if _, err := s.index(row, col); err != nil {
		return 0, err
	}
	if k, ok := s.find(row, col); ok {
		return s.real[k], nil
	}
	return 0, nil
}

// ImagAt returns the imaginary value at zero-based (row, col).
func (s *Sparse) ImagAt(row, col int) (float64, error) {
	if _, err := s.index(row, col); err != nil {
		return 0, err
	}
	if k, ok := s.find(row, col); ok && s.imag != nil {
		return s.imag[k], nil
	}
	return 0, nil
}

// Set stores a real value at zero-based (row, col), inserting an entry
// when none exists. Rows within a column stay sorted.
func (s *Sparse) Set(row, col int, v float64) error {
	return s.set(row, col, v, 0, false)
}

// SetComplex stores a complex value at (row, col). A real matrix becomes
// complex.
func (s *Sparse) SetComplex(row, col int, re, im float64) error {
	return s.set(row, col, re, im, true)
}

func (s *Sparse) set(row, col int, re, im float64, complexValue bool) error {
	if _, err := s.index(row, col); err != nil {
		return err
	}
	if complexValue && s.imag == nil {
		s.imag = make([]float64, len(s.real))
		s.flags |= FlagComplex
	}

	k, ok := s.find(row, col)
	if ok {
		s.real[k] = re
		if s.imag != nil {
			s.imag[k] = im
		}
		return nil
	}

	s.ir = slices.Insert(s.ir, k, row)
	s.real = slices.Insert(s.real, k, re)
	if s.imag != nil {
		s.imag = slices.Insert(s.imag, k, im)
	}
	for c := col + 1; c < len(s.jc); c++ {
		s.jc[c]++
	}
	s.nzmax = max(s.nzmax, s.NNZ())
	return nil
}
