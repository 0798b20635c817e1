package dtype

import (
	"github.com/robert-malhotra/go-matfile/internal/tag"
)

// Number is the set of element types a numeric MAT-file array can hold.
type Number interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

// TypeOf returns the data type used to store elements of type T.
func TypeOf[T Number]() tag.DataType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return tag.Int8
	case uint8:
		return tag.Uint8
	case int16:
		return tag.Int16
	case uint16:
		return tag.Uint16
	case int32:
		return tag.Int32
	case uint32:
		return tag.Uint32
	case int64:
		return tag.Int64
	case uint64:
		return tag.Uint64
	case float32:
		return tag.Single
	default:
		return tag.Double
	}
}

// SizeOf returns the width in bytes of one element of type T.
func SizeOf[T Number]() int {
	return TypeOf[T]().Size()
}
