package kube

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"k8s.io/client-go/tools/remotecommand"

	"podshell/internal/terminal"
	"podshell/pkg/logging"
)

// Session is a running exec stream with a TTY. It satisfies
// session.Transport.
type Session struct {
	Namespace string
	Pod       string
	Container string

	stdinR  *io.PipeReader
	stdinW  *io.PipeWriter
	stdoutR *io.PipeReader
	stdoutW *io.PipeWriter
	sizes   *sizeQueue

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

// countingWriter records whether anything was written through it.
type countingWriter struct {
	w io.Writer
	n atomic.Int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n.Add(int64(n))
	return n, err
}

func startSession(ctx context.Context, exec remotecommand.Executor, namespace, pod, container string) *Session {
	streamCtx, cancel := context.WithCancel(ctx)
	s := &Session{
		Namespace: namespace,
		Pod:       pod,
		Container: container,
		sizes:     newSizeQueue(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	s.stdinR, s.stdinW = io.Pipe()
	s.stdoutR, s.stdoutW = io.Pipe()

	go s.stream(streamCtx, exec)
	return s
}

func (s *Session) stream(ctx context.Context, exec remotecommand.Executor) {
	defer close(s.done)

	out := &countingWriter{w: s.stdoutW}
	err := exec.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdin:             s.stdinR,
		Stdout:            out,
		Tty:               true,
		TerminalSizeQueue: s.sizes,
	})
	if err != nil {
		logging.Debug("Kube", "Exec stream for %s/%s ended: %v", s.Namespace, s.Pod, err)
		if out.n.Load() == 0 && ctx.Err() == nil {
			err = &AttachError{
				Namespace: s.Namespace,
				Pod:       s.Pod,
				Reason:    "interactive session rejected",
				Err:       err,
			}
		}
	}

	// Unblock writers still waiting on a stream that no longer reads.
	_ = s.stdinR.Close()
	// A nil error closes the output with io.EOF.
	_ = s.stdoutW.CloseWithError(err)
}

// Input is the remote process's stdin.
func (s *Session) Input() io.Writer { return s.stdinW }

// Output is the remote terminal's output.
func (s *Session) Output() io.Reader { return s.stdoutR }

// Resize sends a new terminal size to the remote pseudo-terminal.
func (s *Session) Resize(ctx context.Context, g terminal.Geometry) error {
	return s.sizes.push(ctx, remotecommand.TerminalSize{Width: g.Width, Height: g.Height})
}

// Done is closed when the exec stream has returned.
func (s *Session) Done() <-chan struct{} { return s.done }

// Close ends the stream. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		_ = s.stdinW.Close()
		s.cancel()
		s.sizes.close()
		_ = s.stdoutR.Close()
	})
	return nil
}
