package terminal

import (
	"errors"
	"io"
	"os"

	"github.com/muesli/cancelreader"
)

// Input is a local input source whose pending Read can be interrupted.
// A finished session cancels it so it does not swallow keystrokes meant for
// the next prompt.
type Input interface {
	io.Reader
	Cancel() bool
	Close() error
}

// NewInput wraps f (normally os.Stdin) in a cancelable reader.
func NewInput(f *os.File) (Input, error) {
	return cancelreader.NewReader(f)
}

// IsCanceled reports whether err comes from a canceled Input.
func IsCanceled(err error) bool {
	return errors.Is(err, cancelreader.ErrCanceled)
}
