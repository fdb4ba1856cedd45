package app

import (
	"context"
	"fmt"
	"os"

	"podshell/internal/config"
	"podshell/internal/kube"
	"podshell/internal/session"
	"podshell/internal/terminal"
)

// Cluster is the Kubernetes side of the loop.
type Cluster interface {
	ListNamespaces(ctx context.Context) ([]string, error)
	ListPods(ctx context.Context, namespace string) (*kube.PodList, error)
	OpenSession(ctx context.Context, scope kube.Scope, pod string) (session.Transport, error)
}

// Selector asks the operator to pick one of options.
type Selector interface {
	Select(ctx context.Context, prompt string, options []string) (string, error)
}

// SessionFactory prepares a Multiplexer bound to the local terminal. The
// returned release func is called after the session has ended.
type SessionFactory interface {
	NewSession() (*session.Multiplexer, func(), error)
}

// kubeCluster adapts *kube.Client to Cluster.
type kubeCluster struct {
	client *kube.Client
}

func (c kubeCluster) ListNamespaces(ctx context.Context) ([]string, error) {
	return c.client.ListNamespaces(ctx)
}

func (c kubeCluster) ListPods(ctx context.Context, namespace string) (*kube.PodList, error) {
	return c.client.ListPods(ctx, namespace)
}

func (c kubeCluster) OpenSession(ctx context.Context, scope kube.Scope, pod string) (session.Transport, error) {
	s, err := c.client.OpenSession(ctx, scope, pod)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// newKubeCluster builds the client from the kube, discovery and session
// sections of the configuration.
func newKubeCluster(cfg *config.PodshellConfig) (Cluster, error) {
	client, err := kube.NewClient(cfg.Kube.Kubeconfig, cfg.Kube.Context, kube.Options{
		ExcludeNamespaces: cfg.Discovery.ExcludeNamespaces,
		LabelSelector:     cfg.Discovery.LabelSelector,
		RunningOnly:       cfg.Discovery.RunningOnly,
		Container:         cfg.Session.Container,
		Command:           cfg.Session.Command,
	})
	if err != nil {
		return nil, err
	}
	return kubeCluster{client: client}, nil
}

// stdioSessions binds sessions to the process's stdin and stdout.
type stdioSessions struct {
	cfg config.SessionConfig
}

func (s stdioSessions) NewSession() (*session.Multiplexer, func(), error) {
	mode, err := session.ParseInputMode(s.cfg.InputMode)
	if err != nil {
		return nil, nil, err
	}

	// A fresh reader per session: the previous one was cancelled at teardown.
	input, err := terminal.NewInput(os.Stdin)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open terminal input: %w", err)
	}

	fd := int(os.Stdin.Fd())
	m := session.New(session.Config{
		Input:        input,
		Output:       os.Stdout,
		Console:      &terminal.FDConsole{FD: fd},
		Sampler:      terminal.FDSampler{FD: int(os.Stdout.Fd())},
		InputMode:    mode,
		WatcherGrace: s.cfg.WatcherGrace,
	})
	return m, func() { _ = input.Close() }, nil
}
