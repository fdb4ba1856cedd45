//go:build windows

package terminal

// WindowChanges returns a nil channel: windows consoles have no resize
// signal, so watchers only send the initial geometry.
func WindowChanges() (<-chan struct{}, func()) {
	return nil, func() {}
}
