package atlas

import "errors"

var (
	// ErrAtlasOverflow means the glyph set cannot fit even the largest
	// supported canvas.
	ErrAtlasOverflow = errors.New("atlas: glyph set exceeds maximum canvas")
	// ErrNoOutline means a glyph has no vector outline to rasterize.
	ErrNoOutline = errors.New("atlas: glyph has no outline")
)
