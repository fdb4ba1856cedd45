// Package config provides configuration management for podshell.
//
// Configuration is loaded from multiple YAML sources and merged in order,
// with later sources overriding earlier ones:
//
//  1. Default configuration (built in)
//  2. User configuration (~/.config/podshell/config.yaml)
//  3. Project configuration (./.podshell/config.yaml)
//
// Command line flags are applied on top by the cmd package. Any file may be
// absent. Within a file only the keys present override the layer below;
// lists replace rather than append.
//
// # Configuration Structure
//
//	kube:
//	  kubeconfig: ""          # explicit kubeconfig path
//	  context: ""             # kubeconfig context override
//	discovery:
//	  excludeNamespaces: []   # hidden from namespace selection
//	  labelSelector: ""       # pod label selector
//	  runningOnly: false      # hide pods that are not Running
//	session:
//	  command: []             # exec command; empty starts bash or sh
//	  container: ""           # container name override
//	  inputMode: raw          # raw | line
//	  watcherGrace: 2s
//	logging:
//	  level: warn
//	  file: ""
//
// Unknown keys are rejected so that typos do not go unnoticed. The merged
// result is checked with Validate before it is returned.
package config
