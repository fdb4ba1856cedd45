package session

import (
	"context"
	"fmt"

	"podshell/internal/terminal"
	"podshell/pkg/logging"
)

// Watcher propagates local terminal geometry to a ResizeSink.
//
// Run emits the current geometry once, then once per window-change
// notification whose geometry differs from the last one sent. A nil Changes
// channel means the platform has no change notifications; Run then only
// sends the initial geometry and waits for ctx to be cancelled.
type Watcher struct {
	Sampler terminal.Sampler
	Changes <-chan struct{}
	Sink    ResizeSink
}

// Run blocks until ctx is cancelled, Changes is closed, sampling fails or
// the sink rejects a value. The first two are a normal end and return nil.
func (w *Watcher) Run(ctx context.Context) error {
	last, err := w.emitCurrent(ctx, nil)
	if err != nil || ctx.Err() != nil {
		return err
	}

	if w.Changes == nil {
		<-ctx.Done()
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Changes:
			if !ok {
				logging.Debug("ResizeWatcher", "Window change notifications closed")
				return nil
			}
			last, err = w.emitCurrent(ctx, last)
			if err != nil {
				return err
			}
		}
	}
}

// emitCurrent samples the terminal and sends the geometry unless it equals
// prev. It returns the geometry that is now current on the remote side.
func (w *Watcher) emitCurrent(ctx context.Context, prev *terminal.Geometry) (*terminal.Geometry, error) {
	g, err := w.Sampler.Sample()
	if err != nil {
		return prev, err
	}
	if prev != nil && *prev == g {
		return prev, nil
	}
	if err := w.Sink.Resize(ctx, g); err != nil {
		if ctx.Err() != nil {
			return prev, nil
		}
		return prev, fmt.Errorf("failed to send terminal size %s: %w", g, err)
	}
	logging.Debug("ResizeWatcher", "Sent terminal size %s", g)
	return &g, nil
}
