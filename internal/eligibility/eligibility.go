// ABOUTME: Glob-based eligibility check gating which files get the boost action
// ABOUTME: Matches base names against shell glob patterns; absent patterns match everything

package eligibility

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Eligible reports whether a file should be offered the boost action.
// Only the base name is considered (the segment after the last slash or
// backslash). A nil or empty pattern list, or a literal "*" entry, matches
// everything. Matching is case-sensitive standard glob; a malformed pattern
// counts as no-match for that pattern only.
func Eligible(fileName string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if p == "*" {
			return true
		}
	}

	// NFC-normalize both sides. macOS file names arrive NFD-decomposed and
	// would miss byte-wise against NFC patterns typed into settings.
	name := norm.NFC.String(baseName(fileName))
	for _, p := range patterns {
		if matched, err := filepath.Match(norm.NFC.String(p), name); err == nil && matched {
			return true
		}
	}
	return false
}

// baseName returns the final path segment. Both separators are accepted so
// Windows-style paths from the host work on any platform.
func baseName(fileName string) string {
	if i := strings.LastIndexAny(fileName, `/\`); i >= 0 {
		return fileName[i+1:]
	}
	return fileName
}
