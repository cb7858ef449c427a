package fontcat

import (
	"fmt"
	"strings"
)

// ResolveError reports an unknown face name, or a font directory with no
// usable fonts when Face is empty.
type ResolveError struct {
	Face  string
	Dir   string
	Known []string
}

func (e *ResolveError) Error() string {
	if e.Face == "" {
		return fmt.Sprintf("fontcat: no .ttf fonts in %s", e.Dir)
	}
	return fmt.Sprintf("fontcat: unknown face %q (have %s)", e.Face, strings.Join(e.Known, ", "))
}
