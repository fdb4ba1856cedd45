// Package kube provides the Kubernetes side of podshell.
//
// It covers three things: loading a client from kubeconfig, discovering
// namespaces and pods, and opening an interactive exec stream into a pod.
//
// # Client
//
// NewClient resolves kubeconfig the same way kubectl does (KUBECONFIG, then
// ~/.kube/config) unless an explicit path is given, and optionally overrides
// the current context.
//
// # Discovery
//
// ListNamespaces returns sorted namespace names. ListPods returns the sorted
// pod names of one namespace together with a Scope, the namespaced handle
// the session is later opened through.
//
// # Sessions
//
// OpenSession checks that the pod is running, picks the container and starts
// an exec stream with a TTY. The websocket protocol is tried first and SPDY
// is used when the upgrade is refused, the same pair kubectl uses. The
// returned Session exposes the stream as a writer (remote input), a reader
// (remote output) and a resize sink, which is what the session multiplexer
// consumes.
//
// # Error Handling
//
// Discovery failures are *DiscoveryError and session setup failures are
// *AttachError. A stream that fails before it produced any output is
// reported through the output reader as an *AttachError as well, since in
// practice that means the pod rejected the interactive request.
package kube
