// ABOUTME: Tests for editor resolution and launch error handling
// ABOUTME: Uses t.Setenv to control $EDITOR and $VISUAL

package editor

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestCommand_EditorWins(t *testing.T) {
	t.Setenv("EDITOR", "nano")
	t.Setenv("VISUAL", "emacs")

	if got := command(); got != "nano" {
		t.Errorf("command() = %q, want nano", got)
	}
}

func TestCommand_VisualFallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "emacs")

	if got := command(); got != "emacs" {
		t.Errorf("command() = %q, want emacs", got)
	}
}

func TestCommand_DefaultVi(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	if got := command(); got != "vi" {
		t.Errorf("command() = %q, want vi", got)
	}
}

func TestOpen_EditorExits(t *testing.T) {
	t.Setenv("EDITOR", "true")

	if err := Open(filepath.Join(t.TempDir(), "boost.prompt.md")); err != nil {
		t.Errorf("Open with no-op editor: %v", err)
	}
}

func TestOpen_MissingEditor(t *testing.T) {
	t.Setenv("EDITOR", "definitely-not-an-editor-binary")

	err := Open(filepath.Join(t.TempDir(), "boost.prompt.md"))
	if err == nil {
		t.Fatal("expected error for missing editor binary")
	}
	if !strings.Contains(err.Error(), "definitely-not-an-editor-binary") {
		t.Errorf("error %q does not name the editor", err)
	}
}
