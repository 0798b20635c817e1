// Package filter implements the zlib wrapping used by compressed MAT-file
// data elements (miCOMPRESSED).
//
// A compressed element holds an RFC 1950 stream: the two-byte header
// 0x78 0x9C, a raw DEFLATE stream of one complete data element, and the
// big-endian Adler-32 checksum of the uncompressed bytes. DEFLATE itself is
// provided by github.com/klauspost/compress/flate; the header and the
// checksum are handled here so that a checksum mismatch can be reported
// separately from a broken stream and the caller can decide whether to
// keep the inflated data.
//
// # Key Functions
//
//   - [Compress]: wrap a buffer
//   - [Decompress]: unwrap a buffer and verify its checksum
//   - [ChecksumError]: returned alongside the data when verification fails
package filter
