// ABOUTME: Tests for the instruction document store: creation, read fallback, reset
// ABOUTME: Uses temp directories; verifies idempotence and user-edit preservation

package instructions

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureExists_CreatesDirAndFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "storage")
	if err := EnsureExists(dir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != defaultTemplate {
		t.Error("created file should contain the default template verbatim")
	}
}

func TestEnsureExists_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := EnsureExists(dir); err != nil {
		t.Fatal(err)
	}

	// A user edit must survive repeated EnsureExists calls.
	edited := "my custom instructions\n"
	if err := os.WriteFile(Path(dir), []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}

	for range 3 {
		if err := EnsureExists(dir); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != edited {
		t.Errorf("EnsureExists overwrote user edits: %q", string(data))
	}
}

func TestRead_ReturnsFileContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := "custom enhancement rules\n"
	if err := os.WriteFile(Path(dir), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Read(dir); got != content {
		t.Errorf("Read = %q, want %q", got, content)
	}
}

func TestRead_MissingFileFallsBack(t *testing.T) {
	t.Parallel()

	got := Read(filepath.Join(t.TempDir(), "never-created"))
	if got != defaultTemplate {
		t.Error("Read should return the compiled-in default for a missing file")
	}
	if strings.TrimSpace(got) == "" {
		t.Error("default template must be non-empty")
	}
}

func TestRead_BlankFileFallsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("  \n\t\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Read(dir); got != defaultTemplate {
		t.Error("Read should fall back to the default for a blank file")
	}
}

func TestReset_RestoresDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("edited"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Reset(dir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != defaultTemplate {
		t.Error("Reset should restore the default template")
	}
}

func TestDefault_MentionsWrapperContract(t *testing.T) {
	t.Parallel()

	// The template must reference the wrapper tag the workflow emits and
	// forbid echoing it back.
	if !strings.Contains(defaultTemplate, "<original_prompt>") {
		t.Error("default template should reference the original_prompt wrapper")
	}
	if strings.TrimSpace(defaultTemplate) == "" {
		t.Error("default template must be non-empty")
	}
}
