package encode

import "errors"

var (
	// ErrBadMagic means the file does not start with the mesh magic.
	ErrBadMagic = errors.New("encode: bad magic")
	// ErrBadVersion means the container version is unsupported.
	ErrBadVersion = errors.New("encode: unsupported version")
	// ErrTruncated means the file ended inside a record.
	ErrTruncated = errors.New("encode: truncated file")
)
