package session

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"podshell/internal/terminal"
	"podshell/pkg/logging"
)

// State is the lifecycle position of a Multiplexer.
type State int32

const (
	StateStarting State = iota // raw mode not yet enabled
	StateAttached              // event loop running, raw mode on
	StateClosing               // loop ended, releasing resources
	StateClosed                // terminal restored, handles released
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateAttached:
		return "attached"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DefaultWatcherGrace bounds how long teardown waits for the resize watcher.
const DefaultWatcherGrace = 2 * time.Second

// Config wires a Multiplexer to the local terminal.
type Config struct {
	// Input is the local keyboard. If it has a Cancel method (see
	// terminal.Input) it is cancelled at teardown.
	Input io.Reader
	// Output is the local display.
	Output io.Writer
	// Console owns raw mode for the duration of the session.
	Console terminal.Console
	// Sampler reads the local geometry for the resize watcher.
	Sampler terminal.Sampler
	// WindowChanges subscribes to geometry change notifications. Defaults to
	// terminal.WindowChanges.
	WindowChanges func() (<-chan struct{}, func())
	InputMode     InputMode
	WatcherGrace  time.Duration
}

// Multiplexer runs one interactive session: it forwards local input to the
// remote, remote output to the local display, and local geometry changes to
// the remote pseudo-terminal, until any of them ends.
type Multiplexer struct {
	cfg   Config
	state atomic.Int32
}

type canceler interface {
	Cancel() bool
}

// New creates a Multiplexer for a single Run.
func New(cfg Config) *Multiplexer {
	if cfg.InputMode == "" {
		cfg.InputMode = InputModeRaw
	}
	if cfg.WatcherGrace <= 0 {
		cfg.WatcherGrace = DefaultWatcherGrace
	}
	if cfg.WindowChanges == nil {
		cfg.WindowChanges = terminal.WindowChanges
	}
	return &Multiplexer{cfg: cfg}
}

// State returns the current lifecycle state.
func (m *Multiplexer) State() State {
	return State(m.state.Load())
}

func (m *Multiplexer) setState(s State) {
	m.state.Store(int32(s))
}

// Run enables raw mode, runs the event loop until the first source ends,
// then tears the session down. Cancelling ctx stops the resize watcher,
// which ends the session. Terminal mode is restored exactly once on every
// path out of Run; a restore failure is returned as *terminal.RestoreError.
func (m *Multiplexer) Run(ctx context.Context, t Transport) (err error) {
	if !m.state.CompareAndSwap(int32(StateStarting), int32(StateAttached)) {
		return ErrAlreadyRun
	}

	guard, err := terminal.AcquireRaw(m.cfg.Console)
	if err != nil {
		m.setState(StateClosed)
		_ = t.Close()
		return err
	}

	watchCtx, stopWatcher := context.WithCancel(ctx)
	changes, unsubscribe := m.cfg.WindowChanges()
	watcher := &Watcher{Sampler: m.cfg.Sampler, Changes: changes, Sink: t}
	watcherDone := make(chan error, 1)
	go func() {
		watcherDone <- watcher.Run(watchCtx)
	}()

	done := make(chan struct{})
	local := newPump(m.cfg.Input, done)
	remote := newPump(t.Output(), done)

	watcherFinished := false
	defer func() {
		m.setState(StateClosing)
		stopWatcher()
		unsubscribe()
		close(done)
		if c, ok := m.cfg.Input.(canceler); ok {
			c.Cancel()
		}
		if cerr := t.Close(); cerr != nil {
			logging.Debug("Multiplexer", "Closing transport: %v", cerr)
		}
		if !watcherFinished {
			m.awaitWatcher(watcherDone)
		}
		if rerr := guard.Release(); rerr != nil {
			err = errors.Join(err, rerr)
		}
		m.setState(StateClosed)
	}()

	local.request()
	remote.request()
	for {
		select {
		case c := <-local.out:
			if payload := m.cfg.InputMode.encode(c.data); payload != nil {
				if werr := writeAndFlush(t.Input(), payload); werr != nil {
					return &TransportError{Op: "write to remote input", Err: werr}
				}
			}
			if c.err != nil {
				if errors.Is(c.err, io.EOF) || terminal.IsCanceled(c.err) {
					logging.Debug("Multiplexer", "Local input closed")
					return nil
				}
				return &TransportError{Op: "read local input", Err: c.err}
			}
			local.request()

		case c := <-remote.out:
			if len(c.data) > 0 {
				if werr := writeAndFlush(m.cfg.Output, c.data); werr != nil {
					return &TransportError{Op: "write to local output", Err: werr}
				}
			}
			if c.err != nil {
				if errors.Is(c.err, io.EOF) {
					logging.Debug("Multiplexer", "Remote output closed")
					return nil
				}
				return &TransportError{Op: "read remote output", Err: c.err}
			}
			remote.request()

		case werr := <-watcherDone:
			watcherFinished = true
			logging.Debug("Multiplexer", "Resize watcher finished")
			return werr
		}
	}
}

func (m *Multiplexer) awaitWatcher(watcherDone <-chan error) {
	select {
	case werr := <-watcherDone:
		if werr != nil {
			logging.Debug("Multiplexer", "Resize watcher ended with: %v", werr)
		}
	case <-time.After(m.cfg.WatcherGrace):
		logging.Warn("Multiplexer", "Resize watcher did not stop within %s", m.cfg.WatcherGrace)
	}
}
