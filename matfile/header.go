package matfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// HeaderSize is the size of the fixed file header.
const HeaderSize = 128

const (
	descriptionSize = 116
	subsysOffset    = 116
	versionOffset   = 124
	endianOffset    = 126

	// Version5 is the only version word this package reads and writes.
	Version5 uint16 = 0x0100

	// version73 marks HDF5-based files, which share the header text but
	// not the body format.
	version73 uint16 = 0x0200

	// endianMark is "MI" when written in the file's own byte order.
	endianMark uint16 = 'M'<<8 | 'I'

	// allSpaces is how MATLAB leaves an unused subsystem offset.
	allSpaces uint64 = 0x2020202020202020
)

// Header is the 128-byte preamble of a level-5 MAT-file.
type Header struct {
	// Description is the human-readable text, without trailing padding.
	Description string

	// SubsystemOffset is the file offset of subsystem data, or 0 when
	// there is none.
	SubsystemOffset uint64

	Version   uint16
	ByteOrder binary.ByteOrder
}

// DefaultDescription returns the description written when none is given.
func DefaultDescription(now time.Time) string {
	return fmt.Sprintf("MATLAB 5.0 MAT-file, Platform: %s, Created on: %s",
		runtime.GOOS, now.Format("Mon Jan _2 15:04:05 2006"))
}

// encode renders the header in its byte order. Descriptions longer than
// 116 bytes are truncated.
func (h Header) encode() []byte {
	order := h.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}
	version := h.Version
	if version == 0 {
		version = Version5
	}

	buf := make([]byte, HeaderSize)
	n := copy(buf[:descriptionSize], h.Description)
	copy(buf[n:descriptionSize], bytes.Repeat([]byte{' '}, descriptionSize-n))
	order.PutUint64(buf[subsysOffset:], h.SubsystemOffset)
	order.PutUint16(buf[versionOffset:], version)
	order.PutUint16(buf[endianOffset:], endianMark)
	return buf
}

// decodeHeader parses and validates the first 128 bytes of data.
func decodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: file is %d bytes", ErrInvalidHeader, len(data))
	}

	var order binary.ByteOrder
	switch string(data[endianOffset:HeaderSize]) {
	case "IM":
		order = binary.LittleEndian
	case "MI":
		order = binary.BigEndian
	default:
		return Header{}, fmt.Errorf("%w: endian indicator %q", ErrInvalidHeader, data[endianOffset:HeaderSize])
	}

	version := order.Uint16(data[versionOffset:])
	switch version {
	case Version5:
	case version73:
		return Header{}, fmt.Errorf("%w: 0x%04x (HDF5-based v7.3 file)", ErrUnsupportedVersion, version)
	default:
		return Header{}, fmt.Errorf("%w: version 0x%04x", ErrInvalidHeader, version)
	}

	subsys := order.Uint64(data[subsysOffset:])
	if subsys == allSpaces {
		subsys = 0
	}

	return Header{
		Description:     strings.TrimRight(string(data[:descriptionSize]), " \x00"),
		SubsystemOffset: subsys,
		Version:         version,
		ByteOrder:       order,
	}, nil
}
