// Package atlas bakes rasterized glyphs into a single square texture.
//
// The bake pipeline: rasterize every distinct glyph identity once, crop
// each to its padded ink bounds, sort by height, pack onto shelves of a
// power-of-two canvas that doubles until everything fits, and hand back
// normalized UV entries with the padding inset so samples never bleed
// into a neighbor.
package atlas

import (
	"image"

	"github.com/gogpu/textc/glyphset"
)

// Bitmap is one rasterized glyph at the working resolution. Ink is the
// padded ink bounding box within the bitmap; only that region is copied
// into the atlas.
type Bitmap struct {
	// Pix is RGBA data, 4 bytes per pixel, row-major.
	Pix []byte

	// Size is the bitmap width and height in pixels.
	Size int

	// Ink is the region to pack, already padded.
	Ink image.Rectangle
}

// Rasterizer renders one glyph identity at the working resolution. It is
// the boundary to the distance-field generator; implementations must be
// safe for concurrent use, the bake fans out.
type Rasterizer interface {
	Rasterize(face string, gid uint32) (*Bitmap, error)
}

// Entry locates one glyph in the baked atlas. UVs are normalized to
// [0, 1] and inset by the padding, so they bound ink, not padding.
type Entry struct {
	UID glyphset.UID

	U0, V0, U1, V1 float32
}

// Atlas is a finished bake.
type Atlas struct {
	// Image is the composited texture, Size x Size.
	Image *image.NRGBA

	// Entries holds one UV entry per input identity, in input order.
	Entries []Entry

	// Size is the canvas edge in pixels, a power of two.
	Size int
}
