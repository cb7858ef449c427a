package table

import (
	"fmt"
	"strings"
)

// FormatError reports a malformed table row or header.
type FormatError struct {
	File   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("table: %s line %d: %s", e.File, e.Line, e.Reason)
}

// LanguageError reports a language key that matches no table column.
type LanguageError struct {
	Key   string
	Known []string
}

func (e *LanguageError) Error() string {
	return fmt.Sprintf("table: no language column matches %q (have %s)", e.Key, strings.Join(e.Known, ", "))
}
