package matfile

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/robert-malhotra/go-matfile/internal/filter"
)

// ChecksumPolicy selects how a compressed element whose Adler-32 trailer
// does not match its contents is handled.
type ChecksumPolicy int

const (
	// ChecksumStrict fails the read with ErrChecksumMismatch.
	ChecksumStrict ChecksumPolicy = iota

	// ChecksumWarn logs the mismatch and keeps the inflated data.
	ChecksumWarn
)

func (p ChecksumPolicy) String() string {
	if p == ChecksumWarn {
		return "warn"
	}
	return "strict"
}

// ParseChecksumPolicy parses "strict" or "warn".
func ParseChecksumPolicy(s string) (ChecksumPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return ChecksumStrict, nil
	case "warn":
		return ChecksumWarn, nil
	default:
		return 0, fmt.Errorf("unknown checksum policy %q", s)
	}
}

// ReadOption configures decoding.
type ReadOption func(*readOptions)

type readOptions struct {
	checksum ChecksumPolicy
	logger   zerolog.Logger
}

func defaultReadOptions() *readOptions {
	return &readOptions{
		checksum: ChecksumStrict,
		logger:   zerolog.Nop(),
	}
}

// WithChecksumPolicy sets the checksum policy. The default is strict.
func WithChecksumPolicy(p ChecksumPolicy) ReadOption {
	return func(o *readOptions) {
		o.checksum = p
	}
}

// WithReadLogger sets the logger used for warnings and debug output.
func WithReadLogger(l zerolog.Logger) ReadOption {
	return func(o *readOptions) {
		o.logger = l
	}
}

// WriteOption configures encoding.
type WriteOption func(*writeOptions)

type writeOptions struct {
	compress    bool
	level       int
	order       binary.ByteOrder
	description string
	now         func() time.Time
	logger      zerolog.Logger
}

func defaultWriteOptions() *writeOptions {
	return &writeOptions{
		level:  filter.DefaultLevel,
		order:  binary.LittleEndian,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
}

// WithCompression wraps every top-level array in a compressed element.
func WithCompression(enabled bool) WriteOption {
	return func(o *writeOptions) {
		o.compress = enabled
	}
}

// WithCompressionLevel enables compression at a flate level (-2 to 9).
// Levels outside that range keep the default level.
func WithCompressionLevel(level int) WriteOption {
	return func(o *writeOptions) {
		o.compress = true
		if ValidCompressionLevel(level) {
			o.level = level
		}
	}
}

// ValidCompressionLevel reports whether level is a flate level accepted by
// WithCompressionLevel.
func ValidCompressionLevel(level int) bool {
	return level >= -2 && level <= 9
}

// WithByteOrder sets the byte order of the file. The default is little
// endian.
func WithByteOrder(order binary.ByteOrder) WriteOption {
	return func(o *writeOptions) {
		if order != nil {
			o.order = order
		}
	}
}

// WithDescription replaces the header text.
func WithDescription(s string) WriteOption {
	return func(o *writeOptions) {
		o.description = s
	}
}

// WithWriteLogger sets the logger used for debug output.
func WithWriteLogger(l zerolog.Logger) WriteOption {
	return func(o *writeOptions) {
		o.logger = l
	}
}

func withClock(now func() time.Time) WriteOption {
	return func(o *writeOptions) {
		o.now = now
	}
}
