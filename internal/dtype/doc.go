// Package dtype converts between MAT-file element payloads and Go values.
//
// MATLAB often stores an array's values in a narrower type than its class:
// a double array holding small integers may be written as miUINT8 to save
// space. Reading therefore decodes the stored type named by the data
// element and converts each value to the array's Go element type, while
// writing always uses the element's own type.
//
// # Type Mapping
//
//	MAT-file type | Go type
//	--------------|--------
//	miINT8        | int8
//	miUINT8       | uint8
//	miINT16       | int16
//	miUINT16      | uint16
//	miINT32       | int32
//	miUINT32      | uint32
//	miINT64       | int64
//	miUINT64      | uint64
//	miSINGLE      | float32
//	miDOUBLE      | float64
//
// Character data is held as UTF-16 code units; [DecodeText] accepts the
// integer and UTF encodings MATLAB uses for char arrays.
//
// # Key Functions
//
//   - [TypeOf]: the data type written for a Go element type
//   - [Decode]: stored bytes of any numeric type to []T
//   - [Encode]: []T to bytes of T's own data type
//   - [DecodeText]: char payload to UTF-16 code units
package dtype
