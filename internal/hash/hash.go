// Package hash implements the rolling byte hash used for build-cache keys.
//
// The function is a djb2 variant folding one byte at a time:
//
//	h = (h << 5) + (h ^ b)
//
// It is order-sensitive, so hashing the concatenation of two inputs is the
// same as feeding them to one Digest in sequence. The on-disk cache record
// stores these 32-bit values, so the function must never change.
package hash

// Seed is the initial digest value.
const Seed uint32 = 5381

// Digest is a rolling hash state. The zero value is not valid; use New.
type Digest struct {
	h uint32
}

// New returns a Digest initialized with Seed.
func New() *Digest {
	return &Digest{h: Seed}
}

// Write folds p into the digest. It implements io.Writer and never fails.
func (d *Digest) Write(p []byte) (int, error) {
	h := d.h
	for _, b := range p {
		h = (h << 5) + (h ^ uint32(b))
	}
	d.h = h
	return len(p), nil
}

// WriteString folds s into the digest.
func (d *Digest) WriteString(s string) {
	h := d.h
	for i := 0; i < len(s); i++ {
		h = (h << 5) + (h ^ uint32(s[i]))
	}
	d.h = h
}

// WriteUint32 folds the four little-endian bytes of v into the digest.
func (d *Digest) WriteUint32(v uint32) {
	d.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// WriteUint64 folds the eight little-endian bytes of v into the digest.
func (d *Digest) WriteUint64(v uint64) {
	d.WriteUint32(uint32(v))
	d.WriteUint32(uint32(v >> 32))
}

// Sum32 returns the current digest value.
func (d *Digest) Sum32() uint32 {
	return d.h
}

// Sum returns the hash of p in one call.
func Sum(p []byte) uint32 {
	d := New()
	d.Write(p)
	return d.Sum32()
}

// SumString returns the hash of s in one call.
func SumString(s string) uint32 {
	d := New()
	d.WriteString(s)
	return d.Sum32()
}
