package kube

import (
	"fmt"
	"time"

	"k8s.io/client-go/kubernetes"
	_ "k8s.io/client-go/plugin/pkg/client/auth" // auth provider plugins
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"podshell/pkg/logging"
)

// Options tune discovery and session behaviour.
type Options struct {
	// ExcludeNamespaces are never offered for selection.
	ExcludeNamespaces []string
	// LabelSelector restricts the pods listed in a namespace.
	LabelSelector string
	// RunningOnly hides pods that are not in the Running phase.
	RunningOnly bool
	// Container overrides the container the shell is started in.
	Container string
	// Command overrides the exec command. Empty uses DefaultCommand.
	Command []string
}

// Client talks to one cluster.
type Client struct {
	Clientset  kubernetes.Interface
	RestConfig *rest.Config
	Options    Options

	// coreREST builds exec URLs. It is the core/v1 REST client of Clientset
	// unless a test substitutes one.
	coreREST rest.Interface
}

// requestTimeout bounds discovery calls. It does not apply to exec streams.
const requestTimeout = 30 * time.Second

// loadRESTConfig resolves kubeconfig. Mockable for tests.
var loadRESTConfig = func(kubeconfig, kubeContext string) (*rest.Config, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		loadingRules.ExplicitPath = kubeconfig
	}
	configOverrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)
	return kubeConfig.ClientConfig()
}

// NewClient builds a Client from kubeconfig. An empty kubeconfig path uses
// the default loading rules; an empty kubeContext keeps the current context.
func NewClient(kubeconfig, kubeContext string, opts Options) (*Client, error) {
	restConfig, err := loadRESTConfig(kubeconfig, kubeContext)
	if err != nil {
		if kubeContext != "" {
			return nil, fmt.Errorf("failed to get REST config for context %q: %w", kubeContext, err)
		}
		return nil, fmt.Errorf("failed to get REST config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes clientset: %w", err)
	}
	logging.Debug("Kube", "Using API server %s", restConfig.Host)

	return &Client{
		Clientset:  clientset,
		RestConfig: restConfig,
		Options:    opts,
		coreREST:   clientset.CoreV1().RESTClient(),
	}, nil
}

func (c *Client) restClient() rest.Interface {
	if c.coreREST != nil {
		return c.coreREST
	}
	return c.Clientset.CoreV1().RESTClient()
}
