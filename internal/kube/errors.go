package kube

import "fmt"

// DiscoveryError is returned when namespaces or pods cannot be listed.
type DiscoveryError struct {
	Op        string // "list namespaces" or "list pods"
	Namespace string // empty for namespace listing
	Err       error
}

func (e *DiscoveryError) Error() string {
	if e.Namespace == "" {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s in namespace %q: %v", e.Op, e.Namespace, e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// AttachError is returned when an interactive session cannot be opened.
type AttachError struct {
	Namespace string
	Pod       string
	Reason    string
	Err       error
}

func (e *AttachError) Error() string {
	msg := fmt.Sprintf("cannot attach to pod %s/%s: %s", e.Namespace, e.Pod, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AttachError) Unwrap() error { return e.Err }
