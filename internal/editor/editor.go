// ABOUTME: Launches the user's editor on a file and blocks until it exits
// ABOUTME: Resolves the editor from $EDITOR, then $VISUAL, then vi

package editor

import (
	"fmt"
	"os"
	"os/exec"
)

// Open launches the user's editor on path with the terminal attached and
// waits for it to exit.
func Open(path string) error {
	ed := command()

	cmd := exec.Command(ed, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running editor %s: %w", ed, err)
	}
	return nil
}

func command() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	return "vi"
}
