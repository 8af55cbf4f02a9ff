// ABOUTME: YAML frontmatter extraction for instruction document display
// ABOUTME: Parses optional --- delimited metadata with CRLF normalization

package instructions

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// Meta is optional display metadata carried in instruction file frontmatter.
// The boost request always sends the full document; the frontmatter split is
// for display only.
type Meta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseMeta extracts YAML frontmatter from an instruction document.
// It returns the metadata, the body after the closing delimiter, and any
// error. Content without frontmatter returns a zero Meta and the original
// content. An opening delimiter without a closing one is an error.
func ParseMeta(content string) (Meta, string, error) {
	// Normalize CRLF to LF.
	normalized := strings.ReplaceAll(content, "\r\n", "\n")

	if !strings.HasPrefix(normalized, frontmatterDelimiter+"\n") {
		return Meta{}, content, nil
	}

	rest := normalized[len(frontmatterDelimiter)+1:]

	var yamlContent string
	var afterClosing string

	if strings.HasPrefix(rest, frontmatterDelimiter+"\n") || rest == frontmatterDelimiter {
		// Empty frontmatter: closing delimiter immediately follows opening.
		yamlContent = ""
		afterClosing = rest[len(frontmatterDelimiter):]
	} else {
		before, after, ok := strings.Cut(rest, "\n"+frontmatterDelimiter)
		if !ok {
			return Meta{}, "", errors.New("unterminated frontmatter: missing closing ---")
		}
		yamlContent = before
		afterClosing = after
	}

	body := strings.TrimPrefix(afterClosing, "\n")

	var meta Meta
	if err := yaml.Unmarshal([]byte(yamlContent), &meta); err != nil {
		return Meta{}, "", fmt.Errorf("parse frontmatter YAML: %w", err)
	}

	return meta, body, nil
}
