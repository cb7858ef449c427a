// Package shape turns compiled markup pages into placed glyphs.
//
// The Shaper interface is the boundary to the text shaping engine: it
// yields raw glyph occurrences with ink boxes and source offsets. The
// Adapter consumes that stream, filters what cannot render (tofu,
// sub-pixel ink), resolves glyph identities, and rewrites user tag spans
// from text offsets into glyph-index space.
package shape

import (
	"iter"

	"github.com/gogpu/textc/fontcat"
)

// Box is the target layout box in pixels. A zero Width means no line
// wrapping; a zero Height means no vertical clipping.
type Box struct {
	Width  int
	Height int
}

// StyleSpan is a run of request text shaped with one resolved style.
// Start and End are byte offsets; spans must cover the text contiguously.
type StyleSpan struct {
	Start int
	End   int

	Font       *fontcat.Font
	Size       float64 // pixels per em
	LineHeight float64 // baseline advance multiplier on Size
}

// Request is one page of text to shape.
type Request struct {
	Text  string
	Spans []StyleSpan
	Box   Box
}

// Glyph is one shaped glyph occurrence. The ink box is in page pixels,
// y down, origin at the top-left of the layout box. Source is the byte
// offset of the originating cluster in the request text.
type Glyph struct {
	Face string
	GID  uint32

	X0, Y0, X1, Y1 float32

	Source int
	Tofu   bool
}

// Shaper is the text shaping engine contract. The returned sequence is
// lazy, finite and single-use; it is only valid until the next Shape
// call on the same shaper.
type Shaper interface {
	Shape(req Request) (iter.Seq[Glyph], error)
}
