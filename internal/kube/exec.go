package kube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/httpstream"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"

	"podshell/pkg/logging"
)

// DefaultContainerAnnotation names the container kubectl picks by default.
const DefaultContainerAnnotation = "kubectl.kubernetes.io/default-container"

// DefaultCommand starts bash when the image has it and sh otherwise.
var DefaultCommand = []string{
	"/bin/sh", "-c",
	"if command -v bash >/dev/null 2>&1; then exec bash; else exec sh; fi",
}

// newExecutor creates the stream executor for an exec URL. Mockable for
// tests.
var newExecutor = func(config *rest.Config, execURL *url.URL) (remotecommand.Executor, error) {
	spdyExec, err := remotecommand.NewSPDYExecutor(config, http.MethodPost, execURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SPDY executor: %w", err)
	}
	wsExec, err := remotecommand.NewWebSocketExecutor(config, http.MethodGet, execURL.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create websocket executor: %w", err)
	}
	return remotecommand.NewFallbackExecutor(wsExec, spdyExec, func(err error) bool {
		return httpstream.IsUpgradeFailure(err) || httpstream.IsHTTPSProxyError(err)
	})
}

// OpenSession starts an interactive shell in pod. The pod must be running.
// The stream keeps running until the returned Session is closed or the
// remote shell exits.
func (c *Client) OpenSession(ctx context.Context, scope Scope, pod string) (*Session, error) {
	attachErr := func(reason string, err error) error {
		return &AttachError{Namespace: scope.Namespace, Pod: pod, Reason: reason, Err: err}
	}

	getCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	p, err := scope.Pods.Get(getCtx, pod, metav1.GetOptions{})
	cancel()
	if err != nil {
		return nil, attachErr("failed to get pod", err)
	}
	if p.Status.Phase != corev1.PodRunning {
		return nil, attachErr(fmt.Sprintf("pod is %s, not Running", phaseName(p.Status.Phase)), nil)
	}

	container, err := c.pickContainer(p)
	if err != nil {
		return nil, attachErr("no usable container", err)
	}

	command := c.Options.Command
	if len(command) == 0 {
		command = DefaultCommand
	}

	execURL := c.execURL(scope.Namespace, pod, container, command)
	exec, err := newExecutor(c.RestConfig, execURL)
	if err != nil {
		return nil, attachErr("failed to set up exec stream", err)
	}

	logging.Info("Kube", "Opening shell in %s/%s (container %s)", scope.Namespace, pod, container)
	return startSession(ctx, exec, scope.Namespace, pod, container), nil
}

// pickContainer returns Options.Container, the default-container
// annotation, or the first container, in that order.
func (c *Client) pickContainer(pod *corev1.Pod) (string, error) {
	if len(pod.Spec.Containers) == 0 {
		return "", fmt.Errorf("pod %s has no containers", pod.Name)
	}

	want := c.Options.Container
	if want == "" {
		want = pod.Annotations[DefaultContainerAnnotation]
		if want == "" {
			return pod.Spec.Containers[0].Name, nil
		}
	}
	for _, ct := range pod.Spec.Containers {
		if ct.Name == want {
			return want, nil
		}
	}
	return "", fmt.Errorf("container %q not found in pod %s", want, pod.Name)
}

// execURL builds POST .../namespaces/<ns>/pods/<pod>/exec with a TTY on
// stdin and stdout.
func (c *Client) execURL(namespace, pod, container string, command []string) *url.URL {
	return c.restClient().Post().
		Resource("pods").
		Namespace(namespace).
		Name(pod).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: container,
			Command:   command,
			Stdin:     true,
			Stdout:    true,
			TTY:       true,
		}, scheme.ParameterCodec).
		URL()
}

func phaseName(phase corev1.PodPhase) string {
	if phase == "" {
		return "Unknown"
	}
	return string(phase)
}
