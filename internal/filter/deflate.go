package filter

import (
	"bytes"
	encbinary "encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/robert-malhotra/go-matfile/internal/binary"
)

const (
	zlibCMF = 0x78 // deflate, 32K window
	zlibFLG = 0x9C // default compression, no dictionary

	zlibHeaderSize  = 2
	zlibTrailerSize = 4
)

// DefaultLevel is the compression level used when none is configured.
const DefaultLevel = flate.DefaultCompression

var (
	// ErrBadHeader is returned when a stream does not start with a zlib
	// header this package can decode.
	ErrBadHeader = errors.New("invalid zlib header")

	// ErrInflate is returned when the DEFLATE stream itself is broken.
	ErrInflate = errors.New("inflate failed")
)

// ChecksumError reports an Adler-32 mismatch. Decompress returns it together
// with the inflated data.
type ChecksumError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("adler-32 mismatch: stored 0x%08x, computed 0x%08x", e.Expected, e.Actual)
}

// Compress wraps data in a zlib stream at the given flate level (-2..9).
func Compress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + zlibHeaderSize + zlibTrailerSize + 64)
	buf.WriteByte(zlibCMF)
	buf.WriteByte(zlibFLG)

	fw, err := flate.NewWriter(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("deflate writer: %w", err)
	}

	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("deflate close: %w", err)
	}

	var trailer [zlibTrailerSize]byte
	encbinary.BigEndian.PutUint32(trailer[:], binary.Adler32Checksum(data))
	buf.Write(trailer[:])

	return buf.Bytes(), nil
}

// Decompress unwraps a zlib stream. The last four bytes of data are the
// stored checksum. On a checksum mismatch the inflated bytes are returned
// together with a *ChecksumError.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < zlibHeaderSize+zlibTrailerSize {
		return nil, fmt.Errorf("%w: %d bytes is too short", ErrBadHeader, len(data))
	}

	cmf, flg := data[0], data[1]
	if cmf&0x0F != 8 || cmf>>4 > 7 {
		return nil, fmt.Errorf("%w: compression method 0x%02x", ErrBadHeader, cmf)
	}
	if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return nil, fmt.Errorf("%w: header check bits 0x%02x%02x", ErrBadHeader, cmf, flg)
	}
	if flg&0x20 != 0 {
		return nil, fmt.Errorf("%w: preset dictionary not supported", ErrBadHeader)
	}

	body := data[zlibHeaderSize : len(data)-zlibTrailerSize]
	expected := encbinary.BigEndian.Uint32(data[len(data)-zlibTrailerSize:])

	fr := flate.NewReader(bytes.NewReader(body))
	defer fr.Close()

	var out bytes.Buffer
	out.Grow(2 * len(body))
	sum := binary.NewAdler32()
	if _, err := io.Copy(io.MultiWriter(&out, sum), fr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInflate, err)
	}

	if actual := sum.Sum32(); actual != expected {
		return out.Bytes(), &ChecksumError{Expected: expected, Actual: actual}
	}
	return out.Bytes(), nil
}
