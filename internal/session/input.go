package session

import (
	"bytes"
	"fmt"
)

// InputMode selects how local input chunks are forwarded to the remote.
type InputMode string

const (
	// InputModeLine forwards only the first line of every chunk, terminated
	// with a carriage return. Anything after the first newline in the same
	// chunk is dropped, so pasted multi-line text loses all but its first
	// line.
	InputModeLine InputMode = "line"
	// InputModeRaw forwards every byte unchanged.
	InputModeRaw InputMode = "raw"
)

// ParseInputMode validates a mode name. An empty name selects raw mode.
func ParseInputMode(s string) (InputMode, error) {
	switch InputMode(s) {
	case "", InputModeRaw:
		return InputModeRaw, nil
	case InputModeLine:
		return InputModeLine, nil
	default:
		return "", fmt.Errorf("unknown input mode %q (want %q or %q)", s, InputModeLine, InputModeRaw)
	}
}

// encode returns the bytes to send to the remote for one local chunk, or
// nil when nothing should be sent.
func (m InputMode) encode(chunk []byte) []byte {
	if len(chunk) == 0 {
		return nil
	}
	if m == InputModeRaw {
		return chunk
	}
	line := chunk
	if i := bytes.IndexByte(chunk, '\n'); i >= 0 {
		line = chunk[:i]
	}
	line = bytes.TrimSuffix(line, []byte{'\r'})

	out := make([]byte, 0, len(line)+1)
	out = append(out, line...)
	return append(out, '\r')
}
