package matfile

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned while reading or writing a file
// wraps at least one of these, so callers can classify failures with
// errors.Is. Accessor errors such as ErrIndexOutOfRange stand alone.
var (
	ErrIO                   = errors.New("i/o error")
	ErrCorruptData          = errors.New("corrupt data")
	ErrDimensionMismatch    = errors.New("dimension mismatch")
	ErrUnsupportedArrayType = errors.New("unsupported array type")
)

// Refinements of the categories above.
var (
	ErrInvalidHeader      = fmt.Errorf("%w: not a level-5 MAT-file header", ErrCorruptData)
	ErrChecksumMismatch   = fmt.Errorf("%w: compressed element checksum mismatch", ErrCorruptData)
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported MAT-file version", ErrCorruptData)
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrInvalidFieldName   = errors.New("invalid field name")
	ErrNotFound           = errors.New("array not found")
)

// MaxFieldNameLength is the longest structure field name MATLAB accepts.
const MaxFieldNameLength = 63

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptData, fmt.Sprintf(format, args...))
}
