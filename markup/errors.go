package markup

import (
	"errors"
	"fmt"
)

// ErrNoStyles is returned by Compile when the style list is empty.
var ErrNoStyles = errors.New("markup: no styles defined")

// SyntaxError reports a "[" with no closing "]" in the source.
type SyntaxError struct {
	Offset int
	Token  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("markup: unterminated token %q at byte %d", e.Token, e.Offset)
}

// TagError reports a user tag still open when a page ends.
type TagError struct {
	Value string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("markup: tag %q not closed before end of page", e.Value)
}
