package binary

import (
	"bytes"
	"hash/adler32"
	"testing"
)

func TestAdler32KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected uint32
	}{
		{"empty", []byte{}, 0x00000001},
		{"a", []byte("a"), 0x00620062},
		{"abc", []byte("abc"), 0x024d0127},
		{"Wikipedia", []byte("Wikipedia"), 0x11E60398},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Adler32Checksum(tt.input); got != tt.expected {
				t.Errorf("expected 0x%08x, got 0x%08x", tt.expected, got)
			}
		})
	}
}

func TestAdler32MatchesStdlib(t *testing.T) {
	// Large enough that s1 and s2 wrap the modulus many times.
	data := bytes.Repeat([]byte{0xFF, 0x00, 0x7F, 0x80}, 20000)

	if got, want := Adler32Checksum(data), adler32.Checksum(data); got != want {
		t.Errorf("expected 0x%08x, got 0x%08x", want, got)
	}
}

func TestAdler32Incremental(t *testing.T) {
	data := []byte("Hello, World! This is incremental checksum data.")

	a := NewAdler32()
	for i := 0; i < len(data); i += 7 {
		end := min(i+7, len(data))
		a.Write(data[i:end])
	}
	if got, want := a.Sum32(), Adler32Checksum(data); got != want {
		t.Errorf("incremental 0x%08x != one-shot 0x%08x", got, want)
	}

	sum := a.Sum(nil)
	want := a.Sum32()
	if len(sum) != 4 || uint32(sum[0])<<24|uint32(sum[1])<<16|uint32(sum[2])<<8|uint32(sum[3]) != want {
		t.Errorf("Sum should append big-endian checksum, got %x", sum)
	}

	a.Reset()
	if a.Sum32() != 1 {
		t.Errorf("expected seed value 1 after Reset, got 0x%08x", a.Sum32())
	}
}
