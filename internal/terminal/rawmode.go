package terminal

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/term"
)

// Console toggles the local terminal between raw and cooked mode.
type Console interface {
	MakeRaw() error
	Restore() error
}

// FDConsole is a Console for the terminal behind a file descriptor,
// normally stdin.
type FDConsole struct {
	FD int

	mu    sync.Mutex
	state *term.State
}

// MakeRaw puts the terminal into raw mode and remembers the previous state.
// A descriptor that is not a terminal (piped input) is left untouched.
func (c *FDConsole) MakeRaw() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != nil {
		return errors.New("terminal is already in raw mode")
	}
	if !isTerminal(c.FD) {
		return nil
	}
	state, err := term.MakeRaw(c.FD)
	if err != nil {
		return fmt.Errorf("failed to set terminal to raw mode: %w", err)
	}
	c.state = state
	return nil
}

// Restore returns the terminal to the state saved by MakeRaw.
func (c *FDConsole) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return nil
	}
	state := c.state
	c.state = nil
	return term.Restore(c.FD, state)
}

var isTerminal = term.IsTerminal

// RawGuard holds raw mode for the lifetime of one session. Release may be
// called from any number of exit paths; the console is restored only once.
type RawGuard struct {
	console Console
	once    sync.Once
	err     error
}

// AcquireRaw enables raw mode on c and returns the guard that undoes it.
func AcquireRaw(c Console) (*RawGuard, error) {
	if err := c.MakeRaw(); err != nil {
		return nil, err
	}
	return &RawGuard{console: c}, nil
}

// Release restores cooked mode. Subsequent calls return the first result.
func (g *RawGuard) Release() error {
	g.once.Do(func() {
		if err := g.console.Restore(); err != nil {
			g.err = &RestoreError{Err: err}
		}
	})
	return g.err
}
