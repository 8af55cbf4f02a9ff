// ABOUTME: Terminal markdown rendering for boost output behind the --render flag
// ABOUTME: Falls back to the raw text whenever glamour cannot render

package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const maxRenderWidth = 100

// renderMarkdown returns the terminal-styled rendering of text, wrapped to
// the terminal width capped at maxRenderWidth. Any render problem returns
// the raw text so output is never lost to styling.
func renderMarkdown(text string) string {
	width := maxRenderWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}

	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}

	// Trim trailing whitespace that glamour adds
	return strings.TrimRight(rendered, "\n ")
}
