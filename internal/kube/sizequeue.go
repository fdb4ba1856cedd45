package kube

import (
	"context"
	"errors"
	"sync"

	"k8s.io/client-go/tools/remotecommand"
)

// ErrResizeClosed is returned by Session.Resize after the session closed.
var ErrResizeClosed = errors.New("resize channel closed")

// sizeQueue feeds remotecommand with terminal sizes. It holds at most one
// pending size; a newer one replaces it before the stream picks it up.
type sizeQueue struct {
	sizes chan remotecommand.TerminalSize
	done  chan struct{}
	once  sync.Once
}

var _ remotecommand.TerminalSizeQueue = (*sizeQueue)(nil)

func newSizeQueue() *sizeQueue {
	return &sizeQueue{
		sizes: make(chan remotecommand.TerminalSize, 1),
		done:  make(chan struct{}),
	}
}

// push queues size, discarding any size the stream has not consumed yet.
// It never blocks on the stream.
func (q *sizeQueue) push(ctx context.Context, size remotecommand.TerminalSize) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-q.done:
		return ErrResizeClosed
	default:
	}
	for {
		select {
		case q.sizes <- size:
			return nil
		default:
		}
		select {
		case <-q.sizes:
		default:
		}
	}
}

// Next blocks until a size is queued or the queue is closed. A nil return
// tells remotecommand to stop watching for resizes.
func (q *sizeQueue) Next() *remotecommand.TerminalSize {
	select {
	case size := <-q.sizes:
		return &size
	case <-q.done:
		return nil
	}
}

func (q *sizeQueue) close() {
	q.once.Do(func() { close(q.done) })
}
