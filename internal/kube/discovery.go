package kube

import (
	"context"
	"slices"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	typedcorev1 "k8s.io/client-go/kubernetes/typed/core/v1"

	"podshell/pkg/logging"
)

// Scope is a namespace together with the pod API handle for it.
type Scope struct {
	Namespace string
	Pods      typedcorev1.PodInterface
}

// PodList is the result of ListPods.
type PodList struct {
	Scope Scope
	Names []string
}

// ListNamespaces returns the sorted names of all namespaces not excluded by
// Options.ExcludeNamespaces.
func (c *Client) ListNamespaces(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	list, err := c.Clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &DiscoveryError{Op: "list namespaces", Err: err}
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		if slices.Contains(c.Options.ExcludeNamespaces, ns.Name) {
			continue
		}
		names = append(names, ns.Name)
	}
	slices.Sort(names)
	logging.Debug("Kube", "Found %d namespaces", len(names))
	return names, nil
}

// ListPods returns the sorted pod names in namespace, filtered by
// Options.LabelSelector and Options.RunningOnly.
func (c *Client) ListPods(ctx context.Context, namespace string) (*PodList, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	pods := c.Clientset.CoreV1().Pods(namespace)
	list, err := pods.List(ctx, metav1.ListOptions{LabelSelector: c.Options.LabelSelector})
	if err != nil {
		return nil, &DiscoveryError{Op: "list pods", Namespace: namespace, Err: err}
	}

	names := make([]string, 0, len(list.Items))
	for _, pod := range list.Items {
		if c.Options.RunningOnly && pod.Status.Phase != corev1.PodRunning {
			continue
		}
		names = append(names, pod.Name)
	}
	slices.Sort(names)
	logging.Debug("Kube", "Found %d pods in namespace %s", len(names), namespace)

	return &PodList{
		Scope: Scope{Namespace: namespace, Pods: pods},
		Names: names,
	}, nil
}
