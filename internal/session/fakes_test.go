package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"podshell/internal/terminal"
)

// syncBuffer is a goroutine-safe write recorder.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
	err error
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return 0, b.err
	}
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeTransport struct {
	input  syncBuffer
	output io.Reader

	mu         sync.Mutex
	resizes    []terminal.Geometry
	resizeErr  error
	closeCalls int
	onClose    func()
}

func (f *fakeTransport) Input() io.Writer  { return &f.input }
func (f *fakeTransport) Output() io.Reader { return f.output }

func (f *fakeTransport) Resize(ctx context.Context, g terminal.Geometry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resizeErr != nil {
		return f.resizeErr
	}
	f.resizes = append(f.resizes, g)
	return nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	f.closeCalls++
	onClose := f.onClose
	f.mu.Unlock()
	if onClose != nil {
		onClose()
	}
	return nil
}

func (f *fakeTransport) resizeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.resizes)
}

func (f *fakeTransport) closes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeCalls
}

// pipeTransport returns a transport whose remote output is fed through the
// returned writer.
func pipeTransport() (*fakeTransport, *io.PipeWriter) {
	pr, pw := io.Pipe()
	return &fakeTransport{
		output:  pr,
		onClose: func() { _ = pr.Close() },
	}, pw
}

// blockingInput behaves like a cancelable stdin: Read blocks until data is
// pushed or Cancel is called.
type blockingInput struct {
	data     chan []byte
	canceled chan struct{}
	once     sync.Once
}

var errCanceled = errors.New("read canceled")

func newBlockingInput() *blockingInput {
	return &blockingInput{data: make(chan []byte, 4), canceled: make(chan struct{})}
}

func (b *blockingInput) push(p string) { b.data <- []byte(p) }

func (b *blockingInput) Read(p []byte) (int, error) {
	select {
	case d := <-b.data:
		return copy(p, d), nil
	case <-b.canceled:
		return 0, errCanceled
	}
}

func (b *blockingInput) Cancel() bool {
	b.once.Do(func() { close(b.canceled) })
	return true
}

func (b *blockingInput) wasCanceled() bool {
	select {
	case <-b.canceled:
		return true
	default:
		return false
	}
}

type countingConsole struct {
	mu           sync.Mutex
	makeRawCalls int
	restoreCalls int
	makeRawErr   error
	restoreErr   error
}

func (c *countingConsole) MakeRaw() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.makeRawCalls++
	return c.makeRawErr
}

func (c *countingConsole) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.restoreCalls++
	return c.restoreErr
}

func (c *countingConsole) restores() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restoreCalls
}

// sequenceSampler returns the given geometries in order, repeating the last.
type sequenceSampler struct {
	mu    sync.Mutex
	sizes []terminal.Geometry
	err   error
	calls int
}

func (s *sequenceSampler) Sample() (terminal.Geometry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return terminal.Geometry{}, &terminal.GeometryError{Err: s.err}
	}
	i := s.calls - 1
	if i >= len(s.sizes) {
		i = len(s.sizes) - 1
	}
	return s.sizes[i], nil
}

// noChanges simulates a platform without resize notifications.
func noChanges() (<-chan struct{}, func()) {
	return nil, func() {}
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }
