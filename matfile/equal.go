package matfile

import "slices"

// Equal reports whether a and b have the same variant, name, dimensions,
// flags and contents. NaN values compare equal to NaN.
func Equal(a, b Array) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Name() != b.Name() || a.Flags() != b.Flags() || !slices.Equal(a.info().dims, b.info().dims) {
		return false
	}

	switch x := a.(type) {
	case *Numeric[float64]:
		return numericEqual(x, b)
	case *Numeric[float32]:
		return numericEqual(x, b)
	case *Numeric[int8]:
		return numericEqual(x, b)
	case *Numeric[uint8]:
		return numericEqual(x, b)
	case *Numeric[int16]:
		return numericEqual(x, b)
	case *Numeric[uint16]:
		return numericEqual(x, b)
	case *Numeric[int32]:
		return numericEqual(x, b)
	case *Numeric[uint32]:
		return numericEqual(x, b)
	case *Numeric[int64]:
		return numericEqual(x, b)
	case *Numeric[uint64]:
		return numericEqual(x, b)
	case *Char:
		y, ok := b.(*Char)
		return ok && slices.Equal(x.data, y.data)
	case *Cell:
		y, ok := b.(*Cell)
		return ok && slices.EqualFunc(x.cells, y.cells, Equal)
	case *Struct:
		y, ok := b.(*Struct)
		if !ok || !slices.Equal(x.fields, y.fields) {
			return false
		}
		for e := range x.values {
			if !slices.EqualFunc(x.values[e], y.values[e], Equal) {
				return false
			}
		}
		return true
	case *Sparse:
		y, ok := b.(*Sparse)
		return ok && x.nzmax == y.nzmax &&
			slices.Equal(x.ir, y.ir) && slices.Equal(x.jc, y.jc) &&
			sameValues(x.real, y.real) && sameValues(x.imag, y.imag)
	case *Empty:
		_, ok := b.(*Empty)
		return ok
	}
	return false
}

func numericEqual[T Number](x *Numeric[T], b Array) bool {
	y, ok := b.(*Numeric[T])
	return ok && sameValues(x.real, y.real) && sameValues(x.imag, y.imag)
}

// sameValues compares element-wise, treating NaN as equal to NaN.
func sameValues[T Number](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		// v == v is false only for NaN.
		if a[i] != b[i] && (a[i] == a[i] || b[i] == b[i]) {
			return false
		}
	}
	return true
}
