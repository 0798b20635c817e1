package matfile

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// Char is a character matrix of UTF-16 code units in column-major order.
type Char struct {
	arrayInfo
	data []uint16
}

// NewChar creates a 1xN char array holding s. The empty string gives a
// 0x0 array, as MATLAB's '' does.
func NewChar(name, s string) *Char {
	units := utf16.Encode([]rune(s))
	dims := []int{1, len(units)}
	if len(units) == 0 {
		dims = []int{0, 0}
	}
	info, _ := newArrayInfo(name, dims, makeFlags(ClassChar, 0))
	return &Char{arrayInfo: info, data: units}
}

// NewCharMatrix creates a char matrix with one row per string. Shorter
// rows are padded with spaces.
func NewCharMatrix(name string, rows ...string) *Char {
	encoded := make([][]uint16, len(rows))
	width := 0
	for i, r := range rows {
		encoded[i] = utf16.Encode([]rune(r))
		width = max(width, len(encoded[i]))
	}

	n := len(rows)
	data := make([]uint16, n*width)
	for r, units := range encoded {
		for c := range width {
			v := uint16(' ')
			if c < len(units) {
				v = units[c]
			}
			data[r+c*n] = v
		}
	}
	info, _ := newArrayInfo(name, []int{n, width}, makeFlags(ClassChar, 0))
	return &Char{arrayInfo: info, data: data}
}

// NewCharUnits creates a char array from column-major UTF-16 code units.
func NewCharUnits(name string, dims []int, units []uint16) (*Char, error) {
	info, err := newArrayInfo(name, dims, makeFlags(ClassChar, 0))
	if err != nil {
		return nil, err
	}
	if len(units) != info.count {
		return nil, fmt.Errorf("%w: %d code units for %s", ErrDimensionMismatch, len(units), formatDims(info.dims))
	}
	return &Char{arrayInfo: info, data: units}, nil
}

// Units returns the code units in column-major order. The slice is shared
// with the array.
func (c *Char) Units() []uint16 { return c.data }

// Row returns row r as a string.
func (c *Char) Row(r int) (string, error) {
	if r < 0 || r >= c.Rows() {
		return "", fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, r, c.Rows())
	}
	n, cols := c.Rows(), c.Cols()
	units := make([]uint16, cols)
	for col := range cols {
		units[col] = c.data[r+col*n]
	}
	return string(utf16.Decode(units)), nil
}

// Text returns the rows joined by newlines.
func (c *Char) Text() string {
	rows := make([]string, c.Rows())
	for r := range rows {
		rows[r], _ = c.Row(r)
	}
	return strings.Join(rows, "\n")
}
