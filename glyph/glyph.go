// Package glyph turns recognized text into the ordered units that are laid
// out one per worksheet cell.
package glyph

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Unit is one printable glyph. Index is its position in the unit sequence
// (the order cells are filled in); Offset is the byte offset of the unit in
// the raw input text.
type Unit struct {
	Value  string `json:"value"`
	Index  int    `json:"index"`
	Offset int    `json:"offset"`
}

// Normalize splits raw text into printable units, one per extended
// grapheme cluster, so a base character keeps its combining marks and
// variation selectors. The text is not rewritten: each unit holds the
// original bytes. Clusters that are empty after trimming whitespace and
// invisible format runes are dropped.
func Normalize(raw string) []Unit {
	if raw == "" {
		return nil
	}
	var units []Unit
	g := uniseg.NewGraphemes(raw)
	for g.Next() {
		seg := g.Str()
		if strings.TrimFunc(seg, isBlank) == "" {
			continue
		}
		start, _ := g.Positions()
		units = append(units, Unit{Value: seg, Index: len(units), Offset: start})
	}
	return units
}

// Join concatenates the unit values back into a string.
func Join(units []Unit) string {
	var b strings.Builder
	for _, u := range units {
		b.WriteString(u.Value)
	}
	return b.String()
}

// Values returns the unit values in order.
func Values(units []Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Value
	}
	return out
}

// isBlank reports runes that never produce ink: whitespace, control
// characters and format characters such as BOM or zero-width space.
func isBlank(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}
