package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"podshell/internal/terminal"
)

// ResizeSink receives terminal geometry updates for the remote
// pseudo-terminal.
type ResizeSink interface {
	Resize(ctx context.Context, g terminal.Geometry) error
}

// Transport is an open interactive channel to a remote process.
type Transport interface {
	ResizeSink

	// Input is the remote process stdin.
	Input() io.Writer
	// Output is the remote process stdout. It returns io.EOF once the remote
	// process has exited.
	Output() io.Reader
	// Close releases all three handles. It is safe to call more than once.
	Close() error
}

// ErrAlreadyRun is returned when Run is called on a Multiplexer that has
// already been started. Every session needs a fresh Multiplexer.
var ErrAlreadyRun = errors.New("session multiplexer has already run")

// TransportError is a read or write failure on one of the session streams.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type flusher interface {
	Flush() error
}

// writeAndFlush writes p in full and flushes w when it buffers.
func writeAndFlush(w io.Writer, p []byte) error {
	if _, err := w.Write(p); err != nil {
		return err
	}
	if f, ok := w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
