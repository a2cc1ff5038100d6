package glyph

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParseSet converts glyph-set entries into runes. Each entry is normalized
// to NFC first, so a base letter followed by a combining mark counts as one
// character when a precomposed form exists. Duplicates are dropped, keeping
// the first occurrence.
func ParseSet(entries []string) ([]rune, error) {
	seen := make(map[rune]bool, len(entries))
	out := make([]rune, 0, len(entries))
	for _, e := range entries {
		rs := []rune(norm.NFC.String(e))
		if len(rs) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidGlyphSet, e)
		}
		if seen[rs[0]] {
			continue
		}
		seen[rs[0]] = true
		out = append(out, rs[0])
	}
	return out, nil
}

// SplitSet splits a compact glyph string such as "HOno" into entries,
// one per normalized character.
func SplitSet(s string) []string {
	s = norm.NFC.String(strings.TrimSpace(s))
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
