// Package session implements the interactive shell session that runs once
// a pod has been selected.
//
// A Multiplexer owns one session from start to finish. It waits on three
// independent sources and takes whichever is ready first:
//
//   - a chunk of local input, forwarded to the remote process stdin
//   - a chunk of remote output, written to the local display
//   - completion of the resize Watcher
//
// The Watcher runs in its own goroutine and sends geometry updates straight
// to the transport. Its completion (interrupt, closed notifications or a
// sampling failure) ends the session like the other two sources do.
//
// The first source to end stops the loop. Nothing left in the other sources
// is drained. Teardown happens in one place: the watcher is cancelled and
// awaited for a bounded time, the transport is closed and the terminal is
// restored from raw mode exactly once.
//
// # Input modes
//
// InputModeRaw forwards keystrokes byte for byte and is the default.
// InputModeLine forwards only the first line of each chunk followed by a
// carriage return, dropping the rest of the chunk. It only makes sense for
// line-buffered input.
package session
