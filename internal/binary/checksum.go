package binary

import "hash"

// adlerMod is the largest prime below 2^16.
const adlerMod = 65521

// Adler32 computes the Adler-32 checksum that trails every zlib stream
// stored in a compressed MAT-file element.
//
// The state is accumulated byte by byte, seeded with s1=1 and s2=0.
// Adler32 implements hash.Hash32.
type Adler32 struct {
	s1, s2 uint32
}

var _ hash.Hash32 = (*Adler32)(nil)

// NewAdler32 returns a freshly seeded Adler-32 accumulator.
func NewAdler32() *Adler32 {
	return &Adler32{s1: 1}
}

// Write folds p into the checksum. It never returns an error.
func (a *Adler32) Write(p []byte) (int, error) {
	s1, s2 := a.s1, a.s2
	for _, b := range p {
		s1 = (s1 + uint32(b)) % adlerMod
		s2 = (s2 + s1) % adlerMod
	}
	a.s1, a.s2 = s1, s2
	return len(p), nil
}

// Sum32 returns the current checksum.
func (a *Adler32) Sum32() uint32 {
	return a.s2<<16 | a.s1
}

// Sum appends the big-endian checksum to b.
func (a *Adler32) Sum(b []byte) []byte {
	s := a.Sum32()
	return append(b, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// Reset restores the initial seed.
func (a *Adler32) Reset() {
	a.s1, a.s2 = 1, 0
}

// Size returns the checksum length in bytes.
func (a *Adler32) Size() int { return 4 }

// BlockSize returns the preferred write size.
func (a *Adler32) BlockSize() int { return 4 }

// Adler32Checksum computes the Adler-32 checksum of data in one call.
func Adler32Checksum(data []byte) uint32 {
	a := NewAdler32()
	a.Write(data)
	return a.Sum32()
}
