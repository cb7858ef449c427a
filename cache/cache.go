// Package cache persists the build-cache record between runs.
//
// The record carries two independent gates. InputHash covers the raw
// bytes of the input tables: when it matches, the whole build is skipped.
// GlyphHash covers the canonically sorted set of glyph identities the
// build used: when it matches (but InputHash does not), the atlas bake is
// skipped and the stored UV entries are reused. Entries are stored in the
// same canonical (face, gid) order the glyph hash is computed over, which
// is what makes reuse sound without storing identities.
//
// Layout, all little-endian: input hash u32, glyph hash u32, entry count
// u32, then per entry u0, v0, u1, v1 as f32.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
)

// ErrCorrupt means the record file exists but cannot be decoded. Callers
// treat this as a cache miss.
var ErrCorrupt = errors.New("cache: corrupt record")

// Record is one persisted build record.
type Record struct {
	InputHash uint32
	GlyphHash uint32

	// Entries holds u0, v0, u1, v1 per glyph, in the canonical sorted
	// order of the glyph set hashed into GlyphHash.
	Entries [][4]float32
}

const headerLen = 12

// Load reads the record at path. A missing file is not an error: it
// returns (nil, nil). A file that exists but does not decode returns
// ErrCorrupt.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache: %w", err)
	}
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorrupt, len(data))
	}
	r := &Record{
		InputHash: binary.LittleEndian.Uint32(data[0:]),
		GlyphHash: binary.LittleEndian.Uint32(data[4:]),
	}
	count := binary.LittleEndian.Uint32(data[8:])
	if len(data) != headerLen+int(count)*16 {
		return nil, fmt.Errorf("%w: %d bytes for %d entries", ErrCorrupt, len(data), count)
	}
	r.Entries = make([][4]float32, count)
	off := headerLen
	for i := range r.Entries {
		for j := 0; j < 4; j++ {
			r.Entries[i][j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
	}
	return r, nil
}

// Store writes the record to path, replacing any previous record.
func (r *Record) Store(path string) error {
	data := make([]byte, headerLen, headerLen+len(r.Entries)*16)
	binary.LittleEndian.PutUint32(data[0:], r.InputHash)
	binary.LittleEndian.PutUint32(data[4:], r.GlyphHash)
	binary.LittleEndian.PutUint32(data[8:], uint32(len(r.Entries)))
	var b [4]byte
	for _, e := range r.Entries {
		for _, f := range e {
			binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
			data = append(data, b[:]...)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}
