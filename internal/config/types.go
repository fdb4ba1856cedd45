package config

import (
	"time"
)

// PodshellConfig is the top-level configuration structure for podshell.
type PodshellConfig struct {
	Kube      KubeConfig      `yaml:"kube"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Session   SessionConfig   `yaml:"session"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// KubeConfig selects the cluster.
type KubeConfig struct {
	Kubeconfig string `yaml:"kubeconfig,omitempty"` // Explicit kubeconfig path; empty uses KUBECONFIG / ~/.kube/config
	Context    string `yaml:"context,omitempty"`    // Context override; empty keeps current-context
}

// DiscoveryConfig controls what is offered for selection.
type DiscoveryConfig struct {
	ExcludeNamespaces []string `yaml:"excludeNamespaces,omitempty"`
	LabelSelector     string   `yaml:"labelSelector,omitempty"`
	RunningOnly       bool     `yaml:"runningOnly"`
}

// SessionConfig controls the interactive session.
type SessionConfig struct {
	Command      []string      `yaml:"command,omitempty"`   // Exec command; empty starts bash or sh
	Container    string        `yaml:"container,omitempty"` // Container override
	InputMode    string        `yaml:"inputMode"`           // "raw" or "line"
	WatcherGrace time.Duration `yaml:"watcherGrace"`        // Teardown wait for the resize watcher
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `yaml:"level"`          // debug, info, warn or error
	File  string `yaml:"file,omitempty"` // Log file; empty logs to stderr
}
