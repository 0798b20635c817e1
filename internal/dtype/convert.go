package dtype

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/robert-malhotra/go-matfile/internal/tag"
)

var (
	// ErrNotNumeric is returned when a payload's data type holds no numbers.
	ErrNotNumeric = errors.New("data type is not numeric")

	// ErrPartialElement is returned when a payload is not a whole number of
	// elements.
	ErrPartialElement = errors.New("payload is not a whole number of elements")
)

// Count returns the number of elements of type typ held in size bytes.
func Count(typ tag.DataType, size int) (int, error) {
	width := typ.Size()
	if width == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotNumeric, typ)
	}
	if size%width != 0 {
		return 0, fmt.Errorf("%w: %d bytes of %s", ErrPartialElement, size, typ)
	}
	return size / width, nil
}

// Decode converts a payload stored as typ into a freshly allocated []T.
// Values are converted with Go's numeric conversion rules, so narrowing
// only happens when the file stores wider values than the array's class,
// which MATLAB never does.
func Decode[T Number](typ tag.DataType, order binary.ByteOrder, data []byte) ([]T, error) {
	if !typ.IsNumeric() {
		return nil, fmt.Errorf("%w: %s", ErrNotNumeric, typ)
	}
	n, err := Count(typ, len(data))
	if err != nil {
		return nil, err
	}

	out := make([]T, n)
	switch typ {
	case tag.Int8:
		for i := range out {
			out[i] = T(int8(data[i]))
		}
	case tag.Uint8:
		for i := range out {
			out[i] = T(data[i])
		}
	case tag.Int16:
		for i := range out {
			out[i] = T(int16(order.Uint16(data[2*i:])))
		}
	case tag.Uint16:
		for i := range out {
			out[i] = T(order.Uint16(data[2*i:]))
		}
	case tag.Int32:
		for i := range out {
			out[i] = T(int32(order.Uint32(data[4*i:])))
		}
	case tag.Uint32:
		for i := range out {
			out[i] = T(order.Uint32(data[4*i:]))
		}
	case tag.Int64:
		for i := range out {
			out[i] = T(int64(order.Uint64(data[8*i:])))
		}
	case tag.Uint64:
		for i := range out {
			out[i] = T(order.Uint64(data[8*i:]))
		}
	case tag.Single:
		for i := range out {
			out[i] = T(math.Float32frombits(order.Uint32(data[4*i:])))
		}
	case tag.Double:
		for i := range out {
			out[i] = T(math.Float64frombits(order.Uint64(data[8*i:])))
		}
	}
	return out, nil
}
