package shape

import "errors"

var (
	// ErrBadSpans means the request spans do not partition the text.
	ErrBadSpans = errors.New("shape: invalid style spans")
	// ErrNoFace means a span has no resolved font face.
	ErrNoFace = errors.New("shape: span has no face")
	// ErrUnknownStyle means a page references a style missing from the
	// style table.
	ErrUnknownStyle = errors.New("shape: unknown style")
)
