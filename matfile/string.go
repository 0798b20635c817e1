package matfile

import (
	"fmt"
	"strconv"
	"strings"
)

func formatDims(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}

// shape renders the bracketed description MATLAB's whos shows, e.g.
// "[2x1 double (complex)]".
func shape(a Array) string {
	class := a.Class().String()
	var attrs []string
	if a.Class() == ClassSparse {
		class = "double"
		attrs = append(attrs, "sparse")
	}
	if a.IsLogical() {
		class = "logical"
	}
	if a.IsComplex() {
		attrs = append(attrs, "complex")
	}
	if a.IsGlobal() {
		attrs = append(attrs, "global")
	}

	s := "[" + formatDims(a.info().dims) + " " + class
	if len(attrs) > 0 {
		s += " (" + strings.Join(attrs, ", ") + ")"
	}
	return s + "]"
}

func summary(a Array) string {
	if a.Name() == "" {
		return shape(a)
	}
	return a.Name() + ": " + shape(a)
}

func heading(a Array) string {
	if a.Name() == "" {
		return ""
	}
	return a.Name() + " = \n"
}

func formatValue[T Number](v T) string {
	switch x := any(v).(type) {
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

func formatComplex[T Number](re, im T) string {
	s := formatValue(im)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return formatValue(re) + s + "i"
}

func (a *Numeric[T]) String() string { return summary(a) }

// ContentString renders one line per row, columns separated by tabs.
func (a *Numeric[T]) ContentString() string {
	var b strings.Builder
	b.WriteString(heading(a))
	rows, cols := a.Rows(), a.Cols()
	for r := range rows {
		for c := range cols {
			i := r + c*rows
			b.WriteByte('\t')
			if a.imag != nil {
				b.WriteString(formatComplex(a.real[i], a.imag[i]))
			} else {
				b.WriteString(formatValue(a.real[i]))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Char) String() string { return summary(c) }

// ContentString renders each row quoted on its own line.
func (c *Char) ContentString() string {
	var b strings.Builder
	b.WriteString(heading(c))
	for r := range c.Rows() {
		row, _ := c.Row(r)
		b.WriteString("'" + row + "'\n")
	}
	return b.String()
}

// inline renders a nested element on a single line.
func inline(a Array) string {
	if ch, ok := a.(*Char); ok && ch.Rows() == 1 {
		return "'" + ch.Text() + "'"
	}
	if n, ok := a.(*Numeric[float64]); ok && n.Len() == 1 && !n.IsComplex() {
		return formatValue(n.real[0])
	}
	return shape(a)
}

func (c *Cell) String() string { return summary(c) }

// ContentString renders one line per row of cells.
func (c *Cell) ContentString() string {
	var b strings.Builder
	b.WriteString(heading(c))
	rows, cols := c.Rows(), c.Cols()
	for r := range rows {
		for col := range cols {
			b.WriteByte('\t')
			b.WriteString(inline(c.cells[r+col*rows]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *Struct) String() string { return summary(s) }

// ContentString lists field values for a scalar structure, or the field
// names for a structure array.
func (s *Struct) ContentString() string {
	var b strings.Builder
	b.WriteString(heading(s))
	if s.Len() != 1 {
		b.WriteString(shape(s) + " array with fields:\n")
		for _, f := range s.fields {
			b.WriteString("\t" + f + "\n")
		}
		return b.String()
	}
	for i, f := range s.fields {
		b.WriteString("\t" + f + ": " + inline(s.values[0][i]) + "\n")
	}
	return b.String()
}

func (s *Sparse) String() string { return summary(s) }

// ContentString lists the stored entries as 1-based (row,col) pairs.
func (s *Sparse) ContentString() string {
	var b strings.Builder
	b.WriteString(heading(s))
	for c := 0; c+1 < len(s.jc); c++ {
		for k := s.jc[c]; k < s.jc[c+1]; k++ {
			v := formatValue(s.real[k])
			if s.imag != nil {
				v = formatComplex(s.real[k], s.imag[k])
			}
			fmt.Fprintf(&b, "\t(%d,%d)\t%s\n", s.ir[k]+1, c+1, v)
		}
	}
	return b.String()
}

func (e *Empty) String() string { return summary(e) }

// ContentString renders the empty matrix literal.
func (e *Empty) ContentString() string { return heading(e) + "[]\n" }
