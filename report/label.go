package report

import (
	"fmt"

	"golang.org/x/text/unicode/runenames"
)

// GlyphLabel returns "U+0048 LATIN CAPITAL LETTER H" style labels.
func GlyphLabel(r rune) string {
	name := runenames.Name(r)
	if name == "" {
		return FileStem(r)
	}
	return FileStem(r) + " " + name
}

// FileStem returns a file-system safe stem for r, such as "U+0048".
func FileStem(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}
