// ABOUTME: Editable enhancement instruction document with compiled-in default
// ABOUTME: Ensures boost.prompt.md exists on disk and reads it fresh per request

package instructions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the instruction document name inside the storage directory.
const FileName = "boost.prompt.md"

// Path returns the instruction file location inside storageDir.
func Path(storageDir string) string {
	return filepath.Join(storageDir, FileName)
}

// EnsureExists creates storageDir and writes the default template when the
// instruction file is absent. Repeated calls after the file exists are no-ops
// and never overwrite user edits.
func EnsureExists(storageDir string) error {
	if err := os.MkdirAll(storageDir, 0o700); err != nil {
		return fmt.Errorf("creating instructions dir: %w", err)
	}
	path := Path(storageDir)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(defaultTemplate), 0o644); err != nil {
		return fmt.Errorf("writing default instructions: %w", err)
	}
	return nil
}

// Read returns the instruction document content. Missing, unreadable, or
// blank files fall back to the compiled-in default so the returned text is
// always non-empty.
func Read(storageDir string) string {
	data, err := os.ReadFile(Path(storageDir))
	if err != nil || strings.TrimSpace(string(data)) == "" {
		return defaultTemplate
	}
	return string(data)
}

// Reset rewrites the instruction file with the compiled-in default,
// discarding user edits.
func Reset(storageDir string) error {
	if err := os.MkdirAll(storageDir, 0o700); err != nil {
		return fmt.Errorf("creating instructions dir: %w", err)
	}
	if err := os.WriteFile(Path(storageDir), []byte(defaultTemplate), 0o644); err != nil {
		return fmt.Errorf("resetting instructions: %w", err)
	}
	return nil
}

// Default returns the compiled-in template.
func Default() string {
	return defaultTemplate
}
