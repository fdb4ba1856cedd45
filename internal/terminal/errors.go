package terminal

import "fmt"

// GeometryError reports that the local terminal size could not be sampled,
// typically because the output is not a terminal.
type GeometryError struct {
	Err error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("failed to sample terminal geometry: %v", e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

// RestoreError reports that the terminal could not be returned to cooked
// mode. Callers treat it as fatal for the process.
type RestoreError struct {
	Err error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("failed to restore terminal mode: %v", e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }
