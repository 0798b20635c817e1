package dtype

import (
	"encoding/binary"
	"math"
)

// Encode converts values to their on-disk representation in the data type
// returned by TypeOf[T].
func Encode[T Number](order binary.ByteOrder, values []T) []byte {
	out := make([]byte, len(values)*SizeOf[T]())

	switch src := any(values).(type) {
	case []int8:
		for i, v := range src {
			out[i] = byte(v)
		}
	case []uint8:
		copy(out, src)
	case []int16:
		for i, v := range src {
			order.PutUint16(out[2*i:], uint16(v))
		}
	case []uint16:
		for i, v := range src {
			order.PutUint16(out[2*i:], v)
		}
	case []int32:
		for i, v := range src {
			order.PutUint32(out[4*i:], uint32(v))
		}
	case []uint32:
		for i, v := range src {
			order.PutUint32(out[4*i:], v)
		}
	case []int64:
		for i, v := range src {
			order.PutUint64(out[8*i:], uint64(v))
		}
	case []uint64:
		for i, v := range src {
			order.PutUint64(out[8*i:], v)
		}
	case []float32:
		for i, v := range src {
			order.PutUint32(out[4*i:], math.Float32bits(v))
		}
	case []float64:
		for i, v := range src {
			order.PutUint64(out[8*i:], math.Float64bits(v))
		}
	}
	return out
}
