// ABOUTME: Width-aware line truncation for chooser and progress rows
// ABOUTME: Counts grapheme clusters so emoji and CJK model names align

package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// truncate shortens s to at most maxWidth display columns, replacing the cut
// tail with an ellipsis. Operates on plain text; styling is applied after.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}

	var b strings.Builder
	col := 0
	target := maxWidth - 1 // room for the ellipsis
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, tail, _, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		cw := graphemeWidth(cluster)
		if col+cw > target {
			break
		}
		b.WriteString(cluster)
		col += cw
		rest = tail
		state = newState
	}
	b.WriteString("…")
	return b.String()
}

// visibleWidth returns the display width of plain (unstyled) text.
func visibleWidth(s string) int {
	w := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		w += graphemeWidth(cluster)
		s = rest
		state = newState
	}
	return w
}

// graphemeWidth returns the display width of a single grapheme cluster,
// keyed off its first rune.
func graphemeWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(cluster)
	return runewidth.RuneWidth(r)
}
