package app

import (
	"context"
	"errors"
	"fmt"

	"podshell/internal/picker"
	"podshell/internal/terminal"
	"podshell/pkg/logging"
)

// errNoNamespaces ends the program: there is nothing to select and retrying
// would not change that.
var errNoNamespaces = errors.New("no namespaces available")

// Run repeats namespace selection, pod selection and an interactive session
// until the operator aborts a selection or ctx is cancelled. Session and pod
// listing failures are reported on stderr and the loop starts over. It
// returns an error only when the program cannot continue: the namespace list
// is unavailable or the terminal could not be restored.
func (a *Application) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		err := a.runOnce(ctx)
		var restoreErr *terminal.RestoreError
		switch {
		case err == nil:
		case errors.Is(err, picker.ErrAborted):
			logging.Debug("App", "Selection aborted, exiting")
			return nil
		case errors.As(err, &restoreErr):
			logging.Error("App", err, "Terminal could not be restored")
			return err
		case errors.Is(err, errNoNamespaces), isNamespaceListing(err):
			return err
		case ctx.Err() != nil:
			return nil
		default:
			logging.Error("App", err, "Session ended with an error")
			fmt.Fprintf(a.stderr, "Error: %v\n", err)
		}
	}
}

// runOnce performs one pass: namespace, pod, session.
func (a *Application) runOnce(ctx context.Context) error {
	namespaces, err := a.cluster.ListNamespaces(ctx)
	if err != nil {
		return &namespaceListingError{err: err}
	}
	namespace, err := a.selector.Select(ctx, "Namespace", namespaces)
	if errors.Is(err, picker.ErrNoOptions) {
		return errNoNamespaces
	}
	if err != nil {
		return err
	}

	pods, err := a.cluster.ListPods(ctx, namespace)
	if err != nil {
		return err
	}
	pod, err := a.selector.Select(ctx, fmt.Sprintf("Pod in %s", namespace), pods.Names)
	if errors.Is(err, picker.ErrNoOptions) {
		return fmt.Errorf("no pods in namespace %s", namespace)
	}
	if err != nil {
		return err
	}

	sessionCtx, stop := a.interrupts(ctx)
	defer stop()

	transport, err := a.cluster.OpenSession(sessionCtx, pods.Scope, pod)
	if err != nil {
		return err
	}

	m, release, err := a.sessions.NewSession()
	if err != nil {
		_ = transport.Close()
		return err
	}
	defer release()

	logging.Info("App", "Session to %s/%s started", namespace, pod)
	err = m.Run(sessionCtx, transport)
	logging.Info("App", "Session to %s/%s ended", namespace, pod)
	return err
}

// namespaceListingError marks a failure to list namespaces, which ends the
// program instead of looping straight back into the same failure.
type namespaceListingError struct {
	err error
}

func (e *namespaceListingError) Error() string { return e.err.Error() }
func (e *namespaceListingError) Unwrap() error { return e.err }

func isNamespaceListing(err error) bool {
	var nsErr *namespaceListingError
	return errors.As(err, &nsErr)
}
