// ABOUTME: Interactive Confirm/Pick surface backing endpoint resolution
// ABOUTME: Runs transient Bubble Tea programs on stderr; stdout stays clean

package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/promptboost/promptboost/pkg/ai"
)

// InteractiveUI satisfies the registry's resolution surface with terminal
// prompts.
type InteractiveUI struct{}

// Confirm asks a yes/no question and reports the answer.
func (InteractiveUI) Confirm(ctx context.Context, question string) (bool, error) {
	p := tea.NewProgram(newConfirmModel(question), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	out, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirm prompt: %w", err)
	}
	return out.(confirmModel).answer, nil
}

// Pick opens the fuzzy chooser over models and returns the selection, or nil
// when the chooser was dismissed.
func (InteractiveUI) Pick(ctx context.Context, models []ai.Model) (*ai.Model, error) {
	p := tea.NewProgram(newChooserModel(models), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	out, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("model chooser: %w", err)
	}
	return out.(chooserModel).choice, nil
}

// IsInteractive reports whether stdin and stderr are both terminals, i.e.
// whether prompts can be shown at all.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}
