package matfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileOpen(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.mat")

	arrays := sampleArrays(t)
	if err := WriteFile(testFile, arrays, WithCompression(true), WithByteOrder(binary.BigEndian)); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := Open(testFile)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if f.Header.ByteOrder != binary.BigEndian {
		t.Errorf("expected big-endian file, got %s", f.Header.ByteOrder)
	}
	for i := range arrays {
		if !Equal(arrays[i], f.Arrays[i]) {
			t.Errorf("array %s changed on disk", arrays[i].Name())
		}
	}

	a, err := f.Lookup("AName")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if a.(*Char).Text() != "Hello World v4.0!" {
		t.Errorf("unexpected text %q", a.(*Char).Text())
	}
	if _, err := f.Lookup("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteFileRemovesPartialFile(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "partial.mat")

	good := NewScalar("ok", 1.0)
	err := WriteFile(testFile, []Array{good, nil})
	if !errors.Is(err, ErrUnsupportedArrayType) {
		t.Fatalf("expected ErrUnsupportedArrayType, got %v", err)
	}
	if _, err := os.Stat(testFile); !os.IsNotExist(err) {
		t.Error("partial file was left behind")
	}
}

func TestOpenErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Open(filepath.Join(tmpDir, "nope.mat")); !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO for a missing file, got %v", err)
	}

	emptyFile := filepath.Join(tmpDir, "empty.mat")
	if err := os.WriteFile(emptyFile, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(emptyFile); !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("expected ErrInvalidHeader for an empty file, got %v", err)
	}

	if err := WriteFile(filepath.Join(tmpDir, "missing-dir", "x.mat"), nil); !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

func TestWriteMatchesEncode(t *testing.T) {
	arrays := sampleArrays(t)
	encoded, err := Encode(arrays, WithDescription("same"))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, arrays, WithDescription("same")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), encoded) {
		t.Error("Write and Encode produced different bytes")
	}

	f, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(f.Arrays) != len(arrays) {
		t.Errorf("expected %d arrays, got %d", len(arrays), len(f.Arrays))
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportsIOErrors(t *testing.T) {
	if err := Write(failingWriter{}, []Array{NewScalar("x", 1.0)}); !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}
