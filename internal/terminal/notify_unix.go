//go:build !windows

package terminal

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// WindowChanges subscribes to SIGWINCH. Each signal produces one value on
// the returned channel; stop unsubscribes and closes it.
func WindowChanges() (<-chan struct{}, func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	changes := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(changes)
		for {
			select {
			case <-done:
				return
			case <-sigCh:
				select {
				case changes <- struct{}{}:
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
		})
	}
	return changes, stop
}
