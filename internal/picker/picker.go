// Package picker asks the operator to choose one name from a list.
package picker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	// ErrAborted is returned when the operator quits without choosing.
	ErrAborted = errors.New("selection aborted")
	// ErrNoOptions is returned when there is nothing to choose from.
	ErrNoOptions = errors.New("nothing to select")
)

// Picker runs selections on a terminal.
type Picker struct {
	Input  io.Reader
	Output io.Writer
	// AltScreen draws the list on the alternate screen buffer.
	AltScreen bool
}

// New returns a Picker on stdin and stderr, leaving stdout to the session.
func New() *Picker {
	return &Picker{Input: os.Stdin, Output: os.Stderr, AltScreen: true}
}

// Select shows prompt above options and returns the chosen one.
func (p *Picker) Select(ctx context.Context, prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoOptions
	}

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(p.Input),
		tea.WithOutput(p.Output),
	}
	if p.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(newModel(prompt, options), opts...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("selection failed: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.aborted || m.chosen == "" {
		return "", ErrAborted
	}
	return m.chosen, nil
}
