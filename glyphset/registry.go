// Package glyphset tracks the distinct glyph identities used by a build.
//
// A glyph identity is the pair (face name, glyph id). Identities carry a
// stable 64-bit UID derived only from that pair, so the same glyph maps to
// the same UID in every build regardless of discovery order.
package glyphset

import (
	"sort"

	"github.com/gogpu/textc/internal/hash"
)

// UID is a stable glyph identity: hash of the face name in the high 32
// bits, the glyph id in the low 32 bits.
type UID uint64

// MakeUID derives the UID for a face name and glyph id.
func MakeUID(face string, gid uint32) UID {
	return UID(uint64(hash.SumString(face))<<32 | uint64(gid))
}

// Face returns the face-name hash component.
func (u UID) Face() uint32 { return uint32(u >> 32) }

// GID returns the glyph id component.
func (u UID) GID() uint32 { return uint32(u) }

// Entry is one registered glyph identity.
type Entry struct {
	Face string
	GID  uint32
	UID  UID
}

type entryKey struct {
	face string
	gid  uint32
}

// Registry deduplicates glyph identities in insertion order.
type Registry struct {
	entries []Entry
	index   map[entryKey]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[entryKey]int)}
}

// LookupOrInsert returns the UID for (face, gid), registering the identity
// on first sight. Existing identities keep their position.
func (r *Registry) LookupOrInsert(face string, gid uint32) UID {
	k := entryKey{face, gid}
	if i, ok := r.index[k]; ok {
		return r.entries[i].UID
	}
	e := Entry{Face: face, GID: gid, UID: MakeUID(face, gid)}
	r.index[k] = len(r.entries)
	r.entries = append(r.entries, e)
	return e.UID
}

// Len returns the number of distinct identities.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns the identities in insertion order. The slice is shared;
// callers must not modify it.
func (r *Registry) Entries() []Entry { return r.entries }

// Sorted returns a copy of the identities ordered by face name, then glyph
// id. This order is canonical: both the glyph-set hash and the persisted
// atlas entry table use it, which is what lets a cached atlas be reused
// when the same set is reached in a different insertion order.
func (r *Registry) Sorted() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Face != out[j].Face {
			return out[i].Face < out[j].Face
		}
		return out[i].GID < out[j].GID
	})
	return out
}

// Hash returns the glyph-set hash: the rolling hash over the little-endian
// UID bytes of the canonically sorted identity set.
func (r *Registry) Hash() uint32 {
	d := hash.New()
	for _, e := range r.Sorted() {
		d.WriteUint64(uint64(e.UID))
	}
	return d.Sum32()
}
