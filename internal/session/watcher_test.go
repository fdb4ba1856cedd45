package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podshell/internal/terminal"
)

func runWatcher(ctx context.Context, w *Watcher) <-chan error {
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return done
}

func waitErr(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
		return nil
	}
}

func TestWatcherEmitsInitialGeometryFirst(t *testing.T) {
	sink := &fakeTransport{}
	changes := make(chan struct{})
	w := &Watcher{
		Sampler: &sequenceSampler{sizes: []terminal.Geometry{{Width: 80, Height: 24}, {Width: 100, Height: 30}}},
		Changes: changes,
		Sink:    sink,
	}

	done := runWatcher(context.Background(), w)
	require.Eventually(t, func() bool { return sink.resizeCount() == 1 }, time.Second, 5*time.Millisecond)

	changes <- struct{}{}
	require.Eventually(t, func() bool { return sink.resizeCount() == 2 }, time.Second, 5*time.Millisecond)

	close(changes)
	require.NoError(t, waitErr(t, done))

	assert.Equal(t, []terminal.Geometry{{Width: 80, Height: 24}, {Width: 100, Height: 30}}, sink.resizes)
}

func TestWatcherSkipsUnchangedGeometry(t *testing.T) {
	sink := &fakeTransport{}
	changes := make(chan struct{})
	sampler := &sequenceSampler{sizes: []terminal.Geometry{
		{Width: 80, Height: 24},
		{Width: 80, Height: 24},
		{Width: 90, Height: 24},
		{Width: 90, Height: 24},
		{Width: 80, Height: 24},
	}}
	w := &Watcher{Sampler: sampler, Changes: changes, Sink: sink}

	done := runWatcher(context.Background(), w)
	for i := 0; i < 4; i++ {
		changes <- struct{}{}
	}
	close(changes)
	require.NoError(t, waitErr(t, done))

	assert.Equal(t, 5, sampler.calls)
	assert.Equal(t, []terminal.Geometry{
		{Width: 80, Height: 24},
		{Width: 90, Height: 24},
		{Width: 80, Height: 24},
	}, sink.resizes)
}

func TestWatcherWithoutNotificationsWaitsForInterrupt(t *testing.T) {
	sink := &fakeTransport{}
	w := &Watcher{
		Sampler: &sequenceSampler{sizes: []terminal.Geometry{{Width: 132, Height: 43}}},
		Sink:    sink,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runWatcher(ctx, w)

	require.Eventually(t, func() bool { return sink.resizeCount() == 1 }, time.Second, 5*time.Millisecond)
	select {
	case err := <-done:
		t.Fatalf("watcher ended before interrupt: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	require.NoError(t, waitErr(t, done))
	assert.Equal(t, 1, sink.resizeCount())
}

func TestWatcherSamplingFailure(t *testing.T) {
	w := &Watcher{
		Sampler: &sequenceSampler{err: errors.New("not a terminal")},
		Changes: make(chan struct{}),
		Sink:    &fakeTransport{},
	}

	err := waitErr(t, runWatcher(context.Background(), w))
	var geomErr *terminal.GeometryError
	require.ErrorAs(t, err, &geomErr)
}

func TestWatcherSinkFailure(t *testing.T) {
	closedErr := errors.New("resize channel closed")
	w := &Watcher{
		Sampler: &sequenceSampler{sizes: []terminal.Geometry{{Width: 80, Height: 24}}},
		Changes: make(chan struct{}),
		Sink:    &fakeTransport{resizeErr: closedErr},
	}

	err := waitErr(t, runWatcher(context.Background(), w))
	require.ErrorIs(t, err, closedErr)
	assert.Contains(t, err.Error(), "80x24")
}

func TestWatcherSinkFailureAfterCancelIsQuiet(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &Watcher{
		Sampler: &sequenceSampler{sizes: []terminal.Geometry{{Width: 80, Height: 24}}},
		Changes: make(chan struct{}),
		Sink:    &fakeTransport{resizeErr: context.Canceled},
	}

	assert.NoError(t, waitErr(t, runWatcher(ctx, w)))
}
