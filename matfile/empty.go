package matfile

import "reflect"

// Empty is the placeholder for an unset cell or structure field. It is
// written as a zero-length matrix element and reads back as Empty.
type Empty struct {
	arrayInfo
}

// NewEmpty returns an unnamed 0x0 placeholder.
func NewEmpty() *Empty {
	info, _ := newArrayInfo("", []int{0, 0}, makeFlags(ClassDouble, 0))
	return &Empty{arrayInfo: info}
}

func orEmpty(a Array) Array {
	if isNil(a) {
		return NewEmpty()
	}
	return a
}

// isNil reports whether a is nil or a nil pointer such as (*Char)(nil).
func isNil(a Array) bool {
	if a == nil {
		return true
	}
	v := reflect.ValueOf(a)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
