package dtype

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/robert-malhotra/go-matfile/internal/tag"
)

// DecodeText converts a char array payload into UTF-16 code units.
//
// MATLAB writes char data as miUINT16 but also produces miUTF8 (in
// compressed files), miUINT8/miINT8 (older writers) and occasionally
// miUTF16 or miUTF32.
func DecodeText(typ tag.DataType, order binary.ByteOrder, data []byte) ([]uint16, error) {
	switch typ {
	case tag.Uint16, tag.UTF16, tag.Int16:
		units, err := Count(tag.Uint16, len(data))
		if err != nil {
			return nil, err
		}
		out := make([]uint16, units)
		for i := range out {
			out[i] = order.Uint16(data[2*i:])
		}
		return out, nil
	case tag.Uint8, tag.Int8:
		out := make([]uint16, len(data))
		for i, b := range data {
			out[i] = uint16(b)
		}
		return out, nil
	case tag.UTF8:
		if !utf8.Valid(data) {
			return nil, errors.New("invalid UTF-8 char data")
		}
		return utf16.Encode([]rune(string(data))), nil
	case tag.UTF32:
		n, err := Count(tag.UTF32, len(data))
		if err != nil {
			return nil, err
		}
		runes := make([]rune, n)
		for i := range runes {
			runes[i] = rune(order.Uint32(data[4*i:]))
		}
		return utf16.Encode(runes), nil
	default:
		return nil, fmt.Errorf("%w: %s cannot hold char data", ErrNotNumeric, typ)
	}
}
